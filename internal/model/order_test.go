package model_test

import (
	"regexp"
	"testing"

	"inventory-service/internal/model"
	"inventory-service/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createDealer(t *testing.T, db *gorm.DB) model.Dealer {
	t.Helper()
	dealer := model.Dealer{Name: "Test Dealer", Phone: "1234567890"}
	require.NoError(t, db.Create(&dealer).Error)
	return dealer
}

func TestOrderNumberGenerated(t *testing.T) {
	db := database.NewTestDB(t)
	dealer := createDealer(t, db)

	order := model.Order{DealerID: dealer.ID}
	require.NoError(t, db.Create(&order).Error)

	assert.Regexp(t, regexp.MustCompile(`^ORD-\d{8}-[0-9a-f]{4}$`), order.OrderNumber)
	assert.Equal(t, model.OrderStatusDraft, order.Status)
}

func TestOrderNumberPreserved(t *testing.T) {
	db := database.NewTestDB(t)
	dealer := createDealer(t, db)

	order := model.Order{DealerID: dealer.ID, OrderNumber: "ORD-20260101-abcd"}
	require.NoError(t, db.Create(&order).Error)

	assert.Equal(t, "ORD-20260101-abcd", order.OrderNumber)
}

func TestOrderItemLineTotal(t *testing.T) {
	db := database.NewTestDB(t)
	dealer := createDealer(t, db)

	product := model.Product{
		Name:          "Brake Pad",
		PurchasePrice: 400,
		SellingPrice:  500,
		Stock:         10,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&product).Error)

	order := model.Order{DealerID: dealer.ID}
	require.NoError(t, db.Create(&order).Error)

	item := model.OrderItem{
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  10,
		UnitPrice: 500,
	}
	require.NoError(t, db.Create(&item).Error)
	assert.Equal(t, float64(5000), item.LineTotal)

	// Line total is recomputed on every save
	item.Quantity = 3
	require.NoError(t, db.Save(&item).Error)
	assert.Equal(t, float64(1500), item.LineTotal)

	var reloaded model.OrderItem
	require.NoError(t, db.First(&reloaded, item.ID).Error)
	assert.Equal(t, float64(1500), reloaded.LineTotal)
}
