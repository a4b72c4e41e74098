package fulfillment

import (
	"errors"
	"testing"

	"inventory-service/internal/model"
	"inventory-service/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createProductWithInventory(t *testing.T, db *gorm.DB, name string, stock int, quantity int) model.Product {
	t.Helper()

	product := model.Product{
		Name:          name,
		PurchasePrice: 400,
		SellingPrice:  500,
		TaxRate:       18.0,
		Stock:         stock,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&product).Error)

	inventory := model.Inventory{
		ProductID: product.ID,
		Quantity:  quantity,
	}
	require.NoError(t, db.Create(&inventory).Error)

	return product
}

func createDraftOrder(t *testing.T, db *gorm.DB, items ...model.OrderItem) model.Order {
	t.Helper()

	dealer := model.Dealer{Name: "Test Dealer", Phone: "1234567890"}
	require.NoError(t, db.Create(&dealer).Error)

	order := model.Order{DealerID: dealer.ID, Status: model.OrderStatusDraft}
	require.NoError(t, db.Create(&order).Error)

	for i := range items {
		items[i].OrderID = order.ID
		require.NoError(t, db.Create(&items[i]).Error)
	}

	return order
}

func TestConfirmInsufficientStock(t *testing.T) {
	db := database.NewTestDB(t)

	product := createProductWithInventory(t, db, "Brake Pad", 5, 5)
	order := createDraftOrder(t, db, model.OrderItem{
		ProductID: product.ID,
		Quantity:  10,
		UnitPrice: 500,
	})

	err := Confirm(db, order.ID)
	require.Error(t, err)

	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	require.Len(t, stockErr.Details, 1)
	assert.Equal(t, "Brake Pad", stockErr.Details[0].Product)
	assert.Equal(t, 5, stockErr.Details[0].Available)
	assert.Equal(t, 10, stockErr.Details[0].Requested)

	// Nothing changed
	var inventory model.Inventory
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&inventory).Error)
	assert.Equal(t, 5, inventory.Quantity)

	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, model.OrderStatusDraft, reloaded.Status)
}

func TestConfirmAndDeliverFlow(t *testing.T) {
	db := database.NewTestDB(t)

	product := createProductWithInventory(t, db, "Brake Pad", 100, 100)
	order := createDraftOrder(t, db, model.OrderItem{
		ProductID: product.ID,
		Quantity:  10,
		UnitPrice: 500,
	})

	require.NoError(t, Confirm(db, order.ID))

	var inventory model.Inventory
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&inventory).Error)
	assert.Equal(t, 90, inventory.Quantity)

	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, model.OrderStatusConfirmed, reloaded.Status)

	require.NoError(t, Deliver(db, order.ID))
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, model.OrderStatusDelivered, reloaded.Status)

	// Delivery has no inventory effect
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&inventory).Error)
	assert.Equal(t, 90, inventory.Quantity)
}

func TestConfirmIsAllOrNothing(t *testing.T) {
	db := database.NewTestDB(t)

	sufficient := createProductWithInventory(t, db, "Oil Filter", 50, 50)
	short := createProductWithInventory(t, db, "Brake Pad", 2, 2)
	order := createDraftOrder(t, db,
		model.OrderItem{ProductID: sufficient.ID, Quantity: 5, UnitPrice: 200},
		model.OrderItem{ProductID: short.ID, Quantity: 10, UnitPrice: 500},
	)

	err := Confirm(db, order.ID)
	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	require.Len(t, stockErr.Details, 1)
	assert.Equal(t, "Brake Pad", stockErr.Details[0].Product)

	// The satisfiable line must not have been applied either
	var inventory model.Inventory
	require.NoError(t, db.Where("product_id = ?", sufficient.ID).First(&inventory).Error)
	assert.Equal(t, 50, inventory.Quantity)

	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, model.OrderStatusDraft, reloaded.Status)
}

func TestConfirmRejectsNonDraft(t *testing.T) {
	db := database.NewTestDB(t)

	product := createProductWithInventory(t, db, "Brake Pad", 100, 100)
	order := createDraftOrder(t, db, model.OrderItem{
		ProductID: product.ID,
		Quantity:  10,
		UnitPrice: 500,
	})

	require.NoError(t, Confirm(db, order.ID))
	assert.ErrorIs(t, Confirm(db, order.ID), ErrNotDraft)

	// Inventory must not be decremented twice
	var inventory model.Inventory
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&inventory).Error)
	assert.Equal(t, 90, inventory.Quantity)
}

func TestDeliverRejectsDraftAndDelivered(t *testing.T) {
	db := database.NewTestDB(t)

	product := createProductWithInventory(t, db, "Brake Pad", 100, 100)
	order := createDraftOrder(t, db, model.OrderItem{
		ProductID: product.ID,
		Quantity:  10,
		UnitPrice: 500,
	})

	assert.ErrorIs(t, Deliver(db, order.ID), ErrNotConfirmed)

	require.NoError(t, Confirm(db, order.ID))
	require.NoError(t, Deliver(db, order.ID))
	assert.ErrorIs(t, Deliver(db, order.ID), ErrNotConfirmed)

	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, model.OrderStatusDelivered, reloaded.Status)
}

func TestConfirmMissingOrder(t *testing.T) {
	db := database.NewTestDB(t)

	assert.ErrorIs(t, Confirm(db, 12345), ErrOrderNotFound)
	assert.ErrorIs(t, Deliver(db, 12345), ErrOrderNotFound)
}
