package handler

import (
	"net/http"

	mid "inventory-service/internal/middleware"
	"inventory-service/internal/model"
	"inventory-service/internal/query"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// WarehouseRequest defines the structure for warehouse creation/update requests
type WarehouseRequest struct {
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Notes    string `json:"notes"`
	IsActive bool   `json:"is_active"`
}

// ListWarehouses handles retrieving all warehouses with pagination and search
func ListWarehouses(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing warehouses")

	params := query.Parse(c)
	db := database.GetDB().Model(&model.Warehouse{})

	var warehouses []model.Warehouse
	result := params.Apply(db,
		[]string{"name", "city"},
		[]string{"name", "city", "created_at"},
	).Find(&warehouses)
	if result.Error != nil {
		log.Error("Failed to list warehouses", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve warehouses",
		})
	}

	return c.JSON(http.StatusOK, warehouses)
}

// GetWarehouse handles retrieving a single warehouse by ID
func GetWarehouse(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var warehouse model.Warehouse
	result := database.GetDB().First(&warehouse, id)
	if result.Error != nil {
		log.Error("Warehouse not found", zap.String("warehouse_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Warehouse not found",
		})
	}

	return c.JSON(http.StatusOK, warehouse)
}

// CreateWarehouse handles creating a new warehouse
func CreateWarehouse(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new warehouse")

	var req WarehouseRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Warehouse name is required",
		})
	}

	userID := mid.GetUserIDFromContext(c)

	warehouse := model.Warehouse{
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		Notes:     req.Notes,
		IsActive:  req.IsActive,
		CreatedBy: userID,
		UpdatedBy: userID,
	}

	result := database.GetDB().Create(&warehouse)
	if result.Error != nil {
		log.Error("Failed to create warehouse", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create warehouse",
		})
	}

	log.Info("Warehouse created successfully",
		zap.Uint("warehouse_id", warehouse.ID),
		zap.String("name", warehouse.Name))
	return c.JSON(http.StatusCreated, warehouse)
}

// UpdateWarehouse handles updating an existing warehouse
func UpdateWarehouse(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Updating warehouse", zap.String("warehouse_id", id))

	var req WarehouseRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("warehouse_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	var warehouse model.Warehouse
	result := database.GetDB().First(&warehouse, id)
	if result.Error != nil {
		log.Error("Warehouse not found for update", zap.String("warehouse_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Warehouse not found",
		})
	}

	warehouse.Name = req.Name
	warehouse.Address = req.Address
	warehouse.City = req.City
	warehouse.Notes = req.Notes
	warehouse.IsActive = req.IsActive
	warehouse.UpdatedBy = mid.GetUserIDFromContext(c)

	result = database.GetDB().Save(&warehouse)
	if result.Error != nil {
		log.Error("Failed to update warehouse", zap.String("warehouse_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update warehouse",
		})
	}

	log.Info("Warehouse updated successfully",
		zap.String("warehouse_id", id),
		zap.String("name", warehouse.Name))
	return c.JSON(http.StatusOK, warehouse)
}

// DeleteWarehouse handles deleting a warehouse (soft delete)
func DeleteWarehouse(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting warehouse", zap.String("warehouse_id", id))

	result := database.GetDB().Delete(&model.Warehouse{}, id)
	if result.Error != nil {
		log.Error("Failed to delete warehouse", zap.String("warehouse_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete warehouse",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Warehouse not found for deletion", zap.String("warehouse_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Warehouse not found",
		})
	}

	log.Info("Warehouse deleted successfully", zap.String("warehouse_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Warehouse deleted successfully",
	})
}
