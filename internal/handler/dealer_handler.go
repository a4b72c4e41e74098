package handler

import (
	"net/http"

	"inventory-service/internal/model"
	"inventory-service/internal/query"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DealerRequest defines the structure for dealer creation/update requests
type DealerRequest struct {
	Name          string `json:"name" validate:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

// ListDealers handles retrieving all dealers with pagination and search
func ListDealers(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing dealers")

	params := query.Parse(c)
	db := database.GetDB().Model(&model.Dealer{})

	var dealers []model.Dealer
	result := params.Apply(db,
		[]string{"name", "contact_person", "email"},
		[]string{"name", "created_at"},
	).Find(&dealers)
	if result.Error != nil {
		log.Error("Failed to list dealers", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve dealers",
		})
	}

	return c.JSON(http.StatusOK, dealers)
}

// GetDealer handles retrieving a single dealer by ID
func GetDealer(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var dealer model.Dealer
	result := database.GetDB().First(&dealer, id)
	if result.Error != nil {
		log.Error("Dealer not found", zap.String("dealer_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Dealer not found",
		})
	}

	return c.JSON(http.StatusOK, dealer)
}

// CreateDealer handles creating a new dealer
func CreateDealer(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new dealer")

	var req DealerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Dealer name is required",
		})
	}

	// Dealer names are unique
	var count int64
	database.GetDB().Model(&model.Dealer{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		log.Warn("Dealer with this name already exists", zap.String("name", req.Name))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Dealer with this name already exists",
		})
	}

	dealer := model.Dealer{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
	}

	result := database.GetDB().Create(&dealer)
	if result.Error != nil {
		log.Error("Failed to create dealer", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create dealer",
		})
	}

	log.Info("Dealer created successfully",
		zap.Uint("dealer_id", dealer.ID),
		zap.String("name", dealer.Name))
	return c.JSON(http.StatusCreated, dealer)
}

// UpdateDealer handles updating an existing dealer
func UpdateDealer(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Updating dealer", zap.String("dealer_id", id))

	var req DealerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("dealer_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	var dealer model.Dealer
	result := database.GetDB().First(&dealer, id)
	if result.Error != nil {
		log.Error("Dealer not found for update", zap.String("dealer_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Dealer not found",
		})
	}

	// Check if name is changed and if new name already exists
	if req.Name != dealer.Name {
		var count int64
		database.GetDB().Model(&model.Dealer{}).Where("name = ? AND id != ?", req.Name, id).Count(&count)
		if count > 0 {
			log.Warn("Dealer with this name already exists", zap.String("name", req.Name))
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Dealer with this name already exists",
			})
		}
	}

	dealer.Name = req.Name
	dealer.ContactPerson = req.ContactPerson
	dealer.Phone = req.Phone
	dealer.Email = req.Email
	dealer.Address = req.Address

	result = database.GetDB().Save(&dealer)
	if result.Error != nil {
		log.Error("Failed to update dealer", zap.String("dealer_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update dealer",
		})
	}

	log.Info("Dealer updated successfully",
		zap.String("dealer_id", id),
		zap.String("name", dealer.Name))
	return c.JSON(http.StatusOK, dealer)
}

// DeleteDealer handles deleting a dealer (soft delete)
func DeleteDealer(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting dealer", zap.String("dealer_id", id))

	result := database.GetDB().Delete(&model.Dealer{}, id)
	if result.Error != nil {
		log.Error("Failed to delete dealer", zap.String("dealer_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete dealer",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Dealer not found for deletion", zap.String("dealer_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Dealer not found",
		})
	}

	log.Info("Dealer deleted successfully", zap.String("dealer_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Dealer deleted successfully",
	})
}
