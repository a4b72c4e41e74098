package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"

	"inventory-service/internal/handler"
	"inventory-service/internal/model"
	"inventory-service/pkg/config"
	"inventory-service/pkg/database"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	prometheus.InitMetrics(cfg)
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := database.NewTestDB(t)
	database.SetDB(db)
	t.Cleanup(func() { database.SetDB(nil) })
	return db
}

func newJSONContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func seedOrder(t *testing.T, db *gorm.DB, productName string, quantity int, requested int) model.Order {
	t.Helper()

	product := model.Product{
		Name:          productName,
		PurchasePrice: 400,
		SellingPrice:  500,
		Stock:         quantity,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, db.Create(&model.Inventory{ProductID: product.ID, Quantity: quantity}).Error)

	dealer := model.Dealer{Name: "Test Dealer " + productName, Phone: "1234567890"}
	require.NoError(t, db.Create(&dealer).Error)

	order := model.Order{DealerID: dealer.ID, Status: model.OrderStatusDraft}
	require.NoError(t, db.Create(&order).Error)
	require.NoError(t, db.Create(&model.OrderItem{
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  requested,
		UnitPrice: 500,
	}).Error)

	return order
}

func confirmOrder(t *testing.T, orderID uint) *httptest.ResponseRecorder {
	t.Helper()
	c, rec := newJSONContext(t, http.MethodPost, "/", "")
	c.SetPath("/api/orders/:id/confirm")
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(orderID), 10))
	require.NoError(t, handler.ConfirmOrder(c))
	return rec
}

func deliverOrder(t *testing.T, orderID uint) *httptest.ResponseRecorder {
	t.Helper()
	c, rec := newJSONContext(t, http.MethodPost, "/", "")
	c.SetPath("/api/orders/:id/deliver")
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(orderID), 10))
	require.NoError(t, handler.DeliverOrder(c))
	return rec
}

func TestConfirmOrderInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, "Brake Pad", 5, 10)

	rec := confirmOrder(t, order.ID)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error   string `json:"error"`
		Details []struct {
			Product   string `json:"product"`
			Available int    `json:"available"`
			Requested int    `json:"requested"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Insufficient stock for some products.", body.Error)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "Brake Pad", body.Details[0].Product)
	assert.Equal(t, 5, body.Details[0].Available)
	assert.Equal(t, 10, body.Details[0].Requested)

	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, model.OrderStatusDraft, reloaded.Status)
}

func TestConfirmAndDeliverOrder(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, "Brake Pad", 100, 10)

	rec := confirmOrder(t, order.ID)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "order confirmed")

	var inventory model.Inventory
	require.NoError(t, db.First(&inventory).Error)
	assert.Equal(t, 90, inventory.Quantity)

	rec = deliverOrder(t, order.ID)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "order delivered")

	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, model.OrderStatusDelivered, reloaded.Status)
}

func TestConfirmOrderRejectsNonDraft(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, "Brake Pad", 100, 10)

	rec := confirmOrder(t, order.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = confirmOrder(t, order.ID)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Only draft orders can be confirmed.")
}

func TestDeliverOrderRejectsDraft(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, "Brake Pad", 100, 10)

	rec := deliverOrder(t, order.ID)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Only confirmed orders can be delivered.")

	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, model.OrderStatusDraft, reloaded.Status)
}

func TestConfirmOrderNotFound(t *testing.T) {
	setupTestDB(t)

	rec := confirmOrder(t, 9999)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrderWithItems(t *testing.T) {
	db := setupTestDB(t)

	dealer := model.Dealer{Name: "Test Dealer", Phone: "1234567890"}
	require.NoError(t, db.Create(&dealer).Error)

	product := model.Product{
		Name:          "Brake Pad",
		PurchasePrice: 400,
		SellingPrice:  500,
		Stock:         100,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&product).Error)

	body, err := json.Marshal(map[string]interface{}{
		"dealer_id":    dealer.ID,
		"total_amount": 5000,
		"items": []map[string]interface{}{
			{"product_id": product.ID, "quantity": 10, "unit_price": 500},
		},
	})
	require.NoError(t, err)

	c, rec := newJSONContext(t, http.MethodPost, "/api/orders", string(body))
	require.NoError(t, handler.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.OrderNumber)
	assert.Equal(t, model.OrderStatusDraft, created.Status)
	require.Len(t, created.Items, 1)
	assert.Equal(t, float64(5000), created.Items[0].LineTotal)
}

func TestOrderSummary(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, "Brake Pad", 100, 10)
	require.Equal(t, http.StatusOK, confirmOrder(t, order.ID).Code)

	c, rec := newJSONContext(t, http.MethodGet, "/api/order-summary", "")
	require.NoError(t, handler.OrderSummary(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var summary []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Len(t, summary, 1)
	assert.Equal(t, "Test Dealer Brake Pad", summary[0]["dealer"])
	assert.Equal(t, "confirmed", summary[0]["status"])
}
