package handler

import (
	"net/http"
	"strconv"
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

// InventoryRequest defines the structure for inventory creation/update requests
type InventoryRequest struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note,omitempty"` // Free-text note recorded in the audit log
}

// ListInventories handles retrieving all inventory rows
func ListInventories(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing inventories")

	params := query.Parse(c)
	db := database.GetDB().Model(&model.Inventory{}).Preload("Product")

	var inventories []model.Inventory
	result := params.Apply(db, nil, []string{"quantity", "updated_at"}).Find(&inventories)
	if result.Error != nil {
		log.Error("Failed to list inventories", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve inventories",
		})
	}

	return c.JSON(http.StatusOK, inventories)
}

// GetInventory handles retrieving a single inventory row by ID
func GetInventory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var inventory model.Inventory
	result := database.GetDB().Preload("Product").First(&inventory, id)
	if result.Error != nil {
		log.Error("Inventory not found", zap.String("inventory_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Inventory not found",
		})
	}

	return c.JSON(http.StatusOK, inventory)
}

// CreateInventory handles creating the inventory row for a product
func CreateInventory(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating inventory")

	var req InventoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.Quantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Quantity can not be negative",
		})
	}

	// Verify the product exists
	var product model.Product
	if result := database.GetDB().First(&product, req.ProductID); result.Error != nil {
		log.Warn("Product not found for inventory", zap.Uint("product_id", req.ProductID))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Product not found",
		})
	}

	// One inventory row per product
	var count int64
	database.GetDB().Model(&model.Inventory{}).Where("product_id = ?", req.ProductID).Count(&count)
	if count > 0 {
		log.Warn("Inventory already exists for product", zap.Uint("product_id", req.ProductID))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Inventory already exists for this product",
		})
	}

	inventory := model.Inventory{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}

	result := database.GetDB().Create(&inventory)
	if result.Error != nil {
		log.Error("Failed to create inventory", zap.Uint("product_id", req.ProductID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create inventory",
		})
	}

	prometheus.UpdateInventoryQuantity(
		strconv.FormatUint(uint64(product.ID), 10), product.Name, float64(inventory.Quantity))

	log.Info("Inventory created successfully",
		zap.Uint("inventory_id", inventory.ID),
		zap.Uint("product_id", inventory.ProductID),
		zap.Int("quantity", inventory.Quantity))
	return c.JSON(http.StatusCreated, inventory)
}

// UpdateInventory handles updating an inventory row's quantity. Every update
// through this endpoint appends an InventoryAudit record with the quantity
// before and after and the acting user. The audit write is an observer: its
// failure is logged but never blocks the update.
func UpdateInventory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Updating inventory", zap.String("inventory_id", id))

	var req InventoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("inventory_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.Quantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Quantity can not be negative",
		})
	}

	var inventory model.Inventory
	result := database.GetDB().Preload("Product").First(&inventory, id)
	if result.Error != nil {
		log.Error("Inventory not found for update", zap.String("inventory_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Inventory not found",
		})
	}

	oldQuantity := inventory.Quantity
	inventory.Quantity = req.Quantity

	defer prometheus.TrackDBOperation("update")(time.Now())

	result = database.GetDB().Save(&inventory)
	if result.Error != nil {
		log.Error("Failed to update inventory", zap.String("inventory_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update inventory",
		})
	}

	// Append the audit record tagged with the acting user, if any
	audit := model.InventoryAudit{
		ProductID:   inventory.ProductID,
		UserID:      mid.GetUserIDFromContext(c),
		OldQuantity: oldQuantity,
		NewQuantity: inventory.Quantity,
		Note:        req.Note,
	}
	if result := database.GetDB().Create(&audit); result.Error != nil {
		log.Warn("Failed to create inventory audit record", zap.Error(result.Error))
	}

	if inventory.Product != nil {
		prometheus.UpdateInventoryQuantity(
			strconv.FormatUint(uint64(inventory.ProductID), 10),
			inventory.Product.Name,
			float64(inventory.Quantity))
	}

	log.Info("Inventory updated successfully",
		zap.String("inventory_id", id),
		zap.Int("old_quantity", oldQuantity),
		zap.Int("new_quantity", inventory.Quantity))
	return c.JSON(http.StatusOK, inventory)
}

// DeleteInventory handles deleting an inventory row
func DeleteInventory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting inventory", zap.String("inventory_id", id))

	result := database.GetDB().Delete(&model.Inventory{}, id)
	if result.Error != nil {
		log.Error("Failed to delete inventory", zap.String("inventory_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete inventory",
		})
	}

	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Inventory not found",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Inventory deleted successfully",
	})
}

// ListInventoryAudits handles retrieving the audit trail, optionally filtered by product
func ListInventoryAudits(c echo.Context) error {
	log := logger.FromContext(c)

	db := database.GetDB().Model(&model.InventoryAudit{}).Preload("Product").Order("created_at DESC")

	productID := c.QueryParam("product_id")
	if productID != "" {
		db = db.Where("product_id = ?", productID)
	}

	params := query.Parse(c)

	var audits []model.InventoryAudit
	result := params.Apply(db, nil, []string{"created_at"}).Find(&audits)
	if result.Error != nil {
		log.Error("Failed to list inventory audits", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve inventory audits",
		})
	}

	return c.JSON(http.StatusOK, audits)
}
