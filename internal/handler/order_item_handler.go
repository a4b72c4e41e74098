package handler

import (
	"net/http"
	"strconv"

	"inventory-service/internal/model"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// parseID parses the :id path parameter
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

// OrderItemRequest defines the structure for order item creation requests
type OrderItemRequest struct {
	OrderID   uint    `json:"order_id" validate:"required"`
	ProductID uint    `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"required,gt=0"`
}

// ListOrderItems handles retrieving order items, optionally filtered by order
func ListOrderItems(c echo.Context) error {
	log := logger.FromContext(c)

	db := database.GetDB().Model(&model.OrderItem{}).Preload("Product")

	orderID := c.QueryParam("order_id")
	if orderID != "" {
		db = db.Where("order_id = ?", orderID)
	}

	var items []model.OrderItem
	result := db.Find(&items)
	if result.Error != nil {
		log.Error("Failed to list order items", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve order items",
		})
	}

	return c.JSON(http.StatusOK, items)
}

// GetOrderItem handles retrieving a single order item by ID
func GetOrderItem(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var item model.OrderItem
	result := database.GetDB().Preload("Product").First(&item, id)
	if result.Error != nil {
		log.Error("Order item not found", zap.String("order_item_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Order item not found",
		})
	}

	return c.JSON(http.StatusOK, item)
}

// CreateOrderItem handles adding a line item to a draft order
func CreateOrderItem(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating order item")

	var req OrderItemRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Item quantity must be positive",
		})
	}

	// Items can only be added to draft orders
	var order model.Order
	if result := database.GetDB().First(&order, req.OrderID); result.Error != nil {
		log.Warn("Order not found for item", zap.Uint("order_id", req.OrderID))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Order not found",
		})
	}
	if order.Status != model.OrderStatusDraft {
		log.Warn("Attempted to add item to non-draft order",
			zap.Uint("order_id", req.OrderID),
			zap.String("status", order.Status))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Items can only be added to draft orders",
		})
	}

	var product model.Product
	if result := database.GetDB().First(&product, req.ProductID); result.Error != nil {
		log.Warn("Product not found for item", zap.Uint("product_id", req.ProductID))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Product not found",
		})
	}

	item := model.OrderItem{
		OrderID:   req.OrderID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	}

	result := database.GetDB().Create(&item)
	if result.Error != nil {
		log.Error("Failed to create order item", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create order item",
		})
	}

	log.Info("Order item created successfully",
		zap.Uint("order_item_id", item.ID),
		zap.Uint("order_id", item.OrderID),
		zap.Float64("line_total", item.LineTotal))
	return c.JSON(http.StatusCreated, item)
}

// DeleteOrderItem handles removing a line item from a draft order
func DeleteOrderItem(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting order item", zap.String("order_item_id", id))

	var item model.OrderItem
	if result := database.GetDB().First(&item, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Order item not found",
		})
	}

	// Items are immutable once the order leaves draft
	var order model.Order
	if result := database.GetDB().First(&order, item.OrderID); result.Error == nil {
		if order.Status != model.OrderStatusDraft {
			log.Warn("Attempted to remove item from non-draft order",
				zap.Uint("order_id", order.ID),
				zap.String("status", order.Status))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Items can only be removed from draft orders",
			})
		}
	}

	result := database.GetDB().Delete(&model.OrderItem{}, id)
	if result.Error != nil {
		log.Error("Failed to delete order item", zap.String("order_item_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete order item",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Order item deleted successfully",
	})
}
