package handler

import (
	"errors"
	"net/http"
	"time"

	"inventory-service/internal/fulfillment"
	"inventory-service/internal/model"
	"inventory-service/internal/query"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// OrderItemInput defines one line item within an order creation request
type OrderItemInput struct {
	ProductID uint    `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"required,gt=0"`
}

// OrderRequest defines the structure for order creation requests
type OrderRequest struct {
	DealerID    uint             `json:"dealer_id" validate:"required"`
	TotalAmount float64          `json:"total_amount"`
	Items       []OrderItemInput `json:"items,omitempty"`
}

// ListOrders handles retrieving all orders with optional status filtering
func ListOrders(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing orders")

	db := database.GetDB().Model(&model.Order{}).Preload("Dealer").Preload("Items")

	status := c.QueryParam("status")
	if status != "" {
		db = db.Where("status = ?", status)
		log.Info("Filtering orders by status", zap.String("status", status))
	}

	dealerID := c.QueryParam("dealer_id")
	if dealerID != "" {
		db = db.Where("dealer_id = ?", dealerID)
	}

	params := query.Parse(c)

	var orders []model.Order
	result := params.Apply(db,
		[]string{"order_number"},
		[]string{"order_number", "status", "total_amount", "created_at"},
	).Find(&orders)
	if result.Error != nil {
		log.Error("Failed to list orders", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve orders",
		})
	}

	log.Info("Orders retrieved successfully", zap.Int("count", len(orders)))
	return c.JSON(http.StatusOK, orders)
}

// GetOrder handles retrieving a single order with its items
func GetOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var order model.Order
	result := database.GetDB().Preload("Dealer").Preload("Items.Product").First(&order, id)
	if result.Error != nil {
		log.Error("Order not found", zap.String("order_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Order not found",
		})
	}

	return c.JSON(http.StatusOK, order)
}

// CreateOrder handles creating a new draft order, optionally with line items
func CreateOrder(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new order")
	prometheus.RecordOrderOperation("create")

	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	// Verify the dealer exists
	var dealer model.Dealer
	if result := database.GetDB().First(&dealer, req.DealerID); result.Error != nil {
		log.Warn("Dealer not found for order", zap.Uint("dealer_id", req.DealerID))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Dealer not found",
		})
	}

	order := model.Order{
		DealerID:    req.DealerID,
		Status:      model.OrderStatusDraft,
		TotalAmount: req.TotalAmount,
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Item quantity must be positive",
			})
		}
		order.Items = append(order.Items, model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	result := database.GetDB().Create(&order)
	if result.Error != nil {
		log.Error("Failed to create order", zap.Uint("dealer_id", req.DealerID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create order",
		})
	}

	log.Info("Order created successfully",
		zap.Uint("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.Int("item_count", len(order.Items)))
	return c.JSON(http.StatusCreated, order)
}

// UpdateOrder handles updating a draft order's total amount
func UpdateOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Updating order", zap.String("order_id", id))

	var req struct {
		TotalAmount float64 `json:"total_amount"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("order_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	var order model.Order
	result := database.GetDB().First(&order, id)
	if result.Error != nil {
		log.Error("Order not found for update", zap.String("order_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Order not found",
		})
	}

	// Status is only mutated by the confirm and deliver operations
	order.TotalAmount = req.TotalAmount

	result = database.GetDB().Save(&order)
	if result.Error != nil {
		log.Error("Failed to update order", zap.String("order_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update order",
		})
	}

	return c.JSON(http.StatusOK, order)
}

// DeleteOrder handles deleting an order (soft delete)
func DeleteOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting order", zap.String("order_id", id))

	result := database.GetDB().Delete(&model.Order{}, id)
	if result.Error != nil {
		log.Error("Failed to delete order", zap.String("order_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete order",
		})
	}

	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Order not found",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Order deleted successfully",
	})
}

// ConfirmOrder handles the draft -> confirmed transition. The stock check and
// all inventory decrements run as one atomic unit inside the fulfillment core.
func ConfirmOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Confirming order", zap.String("order_id", id))
	prometheus.RecordOrderOperation("confirm")

	orderID, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid order ID"})
	}

	defer prometheus.TrackDBOperation("transaction")(time.Now())

	err = fulfillment.Confirm(database.GetDB(), orderID)
	if err != nil {
		var stockErr *fulfillment.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			log.Warn("Order confirmation rejected: insufficient stock",
				zap.String("order_id", id),
				zap.Int("shortfall_count", len(stockErr.Details)))
			prometheus.RecordOrderConfirmation("insufficient_stock")
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":   stockErr.Error(),
				"details": stockErr.Details,
			})
		case errors.Is(err, fulfillment.ErrNotDraft):
			log.Warn("Order confirmation rejected: not a draft", zap.String("order_id", id))
			prometheus.RecordOrderConfirmation("invalid_status")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, fulfillment.ErrOrderNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
		default:
			log.Error("Order confirmation failed", zap.String("order_id", id), zap.Error(err))
			prometheus.RecordOrderConfirmation("error")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to confirm order"})
		}
	}

	log.Info("Order confirmed", zap.String("order_id", id))
	prometheus.RecordOrderConfirmation("confirmed")
	return c.JSON(http.StatusOK, echo.Map{"status": "order confirmed"})
}

// DeliverOrder handles the confirmed -> delivered transition
func DeliverOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Delivering order", zap.String("order_id", id))
	prometheus.RecordOrderOperation("deliver")

	orderID, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid order ID"})
	}

	err = fulfillment.Deliver(database.GetDB(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, fulfillment.ErrNotConfirmed):
			log.Warn("Order delivery rejected: not confirmed", zap.String("order_id", id))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, fulfillment.ErrOrderNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
		default:
			log.Error("Order delivery failed", zap.String("order_id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to deliver order"})
		}
	}

	log.Info("Order delivered", zap.String("order_id", id))
	return c.JSON(http.StatusOK, echo.Map{"status": "order delivered"})
}

// OrderSummary returns a denormalized view of all orders with dealer name,
// status, total and line items. Admin only.
func OrderSummary(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Building order summary")

	var orders []model.Order
	result := database.GetDB().Preload("Dealer").Preload("Items.Product").Find(&orders)
	if result.Error != nil {
		log.Error("Failed to load orders for summary", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve order summary",
		})
	}

	summary := make([]echo.Map, 0, len(orders))
	for _, order := range orders {
		items := make([]echo.Map, 0, len(order.Items))
		for _, item := range order.Items {
			productName := ""
			if item.Product != nil {
				productName = item.Product.Name
			}
			items = append(items, echo.Map{
				"product":    productName,
				"quantity":   item.Quantity,
				"line_total": item.LineTotal,
			})
		}

		dealerName := ""
		if order.Dealer != nil {
			dealerName = order.Dealer.Name
		}

		summary = append(summary, echo.Map{
			"order_number": order.OrderNumber,
			"dealer":       dealerName,
			"status":       order.Status,
			"total_amount": order.TotalAmount,
			"created_at":   order.CreatedAt,
			"items":        items,
		})
	}

	return c.JSON(http.StatusOK, summary)
}
