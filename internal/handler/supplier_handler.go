package handler

import (
	"net/http"
	"time"

	mid "inventory-service/internal/middleware"
	"inventory-service/internal/model"
	"inventory-service/internal/query"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SupplierRequest defines the structure for supplier creation/update requests
type SupplierRequest struct {
	Name           string  `json:"name" validate:"required"`
	ContactPerson  string  `json:"contact_person"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	OpeningBalance float64 `json:"opening_balance"`
	PaymentTerms   string  `json:"payment_terms"`
	Notes          string  `json:"notes"`
	IsActive       bool    `json:"is_active"`
}

// ListSuppliers handles retrieving all suppliers with pagination and search
func ListSuppliers(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing suppliers")

	params := query.Parse(c)
	db := database.GetDB().Model(&model.Supplier{})

	var suppliers []model.Supplier
	result := params.Apply(db,
		[]string{"name", "contact_person", "city", "email"},
		[]string{"name", "city", "created_at"},
	).Find(&suppliers)
	if result.Error != nil {
		log.Error("Failed to list suppliers", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve suppliers",
		})
	}

	log.Info("Suppliers retrieved successfully", zap.Int("count", len(suppliers)))
	return c.JSON(http.StatusOK, suppliers)
}

// GetSupplier handles retrieving a single supplier by ID
func GetSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var supplier model.Supplier
	result := database.GetDB().First(&supplier, id)
	if result.Error != nil {
		log.Error("Supplier not found", zap.String("supplier_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Supplier not found",
		})
	}

	return c.JSON(http.StatusOK, supplier)
}

// CreateSupplier handles creating a new supplier
func CreateSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new supplier")

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Supplier name is required",
		})
	}

	if req.PaymentTerms == "" {
		req.PaymentTerms = model.PaymentTermsImmediate
	}
	if !model.ValidPaymentTerms(req.PaymentTerms) {
		log.Warn("Invalid payment terms", zap.String("payment_terms", req.PaymentTerms))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid payment terms",
		})
	}

	userID := mid.GetUserIDFromContext(c)

	supplier := model.Supplier{
		Name:           req.Name,
		ContactPerson:  req.ContactPerson,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		City:           req.City,
		OpeningBalance: req.OpeningBalance,
		PaymentTerms:   req.PaymentTerms,
		Notes:          req.Notes,
		IsActive:       req.IsActive,
		CreatedBy:      userID,
		UpdatedBy:      userID,
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("insert")(time.Now())

	result := database.GetDB().Create(&supplier)
	if result.Error != nil {
		log.Error("Failed to create supplier", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create supplier",
		})
	}

	log.Info("Supplier created successfully",
		zap.Uint("supplier_id", supplier.ID),
		zap.String("name", supplier.Name))
	return c.JSON(http.StatusCreated, supplier)
}

// UpdateSupplier handles updating an existing supplier
func UpdateSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Updating supplier", zap.String("supplier_id", id))

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("supplier_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	var supplier model.Supplier
	result := database.GetDB().First(&supplier, id)
	if result.Error != nil {
		log.Error("Supplier not found for update", zap.String("supplier_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Supplier not found",
		})
	}

	if req.PaymentTerms != "" && !model.ValidPaymentTerms(req.PaymentTerms) {
		log.Warn("Invalid payment terms", zap.String("payment_terms", req.PaymentTerms))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid payment terms",
		})
	}

	// Update fields
	supplier.Name = req.Name
	supplier.ContactPerson = req.ContactPerson
	supplier.Phone = req.Phone
	supplier.Email = req.Email
	supplier.Address = req.Address
	supplier.City = req.City
	supplier.OpeningBalance = req.OpeningBalance
	if req.PaymentTerms != "" {
		supplier.PaymentTerms = req.PaymentTerms
	}
	supplier.Notes = req.Notes
	supplier.IsActive = req.IsActive
	supplier.UpdatedBy = mid.GetUserIDFromContext(c)

	defer prometheus.TrackDBOperation("update")(time.Now())

	result = database.GetDB().Save(&supplier)
	if result.Error != nil {
		log.Error("Failed to update supplier", zap.String("supplier_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update supplier",
		})
	}

	log.Info("Supplier updated successfully",
		zap.String("supplier_id", id),
		zap.String("name", supplier.Name))
	return c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier handles deleting a supplier (soft delete)
func DeleteSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting supplier", zap.String("supplier_id", id))

	result := database.GetDB().Delete(&model.Supplier{}, id)
	if result.Error != nil {
		log.Error("Failed to delete supplier", zap.String("supplier_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete supplier",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Supplier not found for deletion", zap.String("supplier_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Supplier not found",
		})
	}

	log.Info("Supplier deleted successfully", zap.String("supplier_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Supplier deleted successfully",
	})
}
