package model_test

import (
	"testing"
	"time"

	"inventory-service/internal/model"
	"inventory-service/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductValidate(t *testing.T) {
	product := model.Product{
		Name:          "Brake Pad",
		PurchasePrice: 400,
		SellingPrice:  500,
		Stock:         10,
	}
	assert.NoError(t, product.Validate())

	product.Stock = -1
	err := product.Validate()
	require.Error(t, err)
	fieldErrs, ok := err.(model.FieldErrors)
	require.True(t, ok)
	assert.Contains(t, fieldErrs, "stock")

	product.Stock = 10
	product.SellingPrice = 300
	err = product.Validate()
	require.Error(t, err)
	fieldErrs = err.(model.FieldErrors)
	assert.Contains(t, fieldErrs, "selling_price")
}

func TestProductValidateDates(t *testing.T) {
	manufactured := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	expired := manufactured.AddDate(0, -1, 0)

	product := model.Product{
		Name:            "Brake Pad",
		PurchasePrice:   400,
		SellingPrice:    500,
		Stock:           10,
		ManufactureDate: &manufactured,
		ExpiryDate:      &expired,
	}

	err := product.Validate()
	require.Error(t, err)
	fieldErrs := err.(model.FieldErrors)
	assert.Contains(t, fieldErrs, "expiry_date")
}

func TestProductDeactivatedWhenStockExhausted(t *testing.T) {
	db := database.NewTestDB(t)

	product := model.Product{
		Name:          "Brake Pad",
		PurchasePrice: 400,
		SellingPrice:  500,
		Stock:         5,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&product).Error)
	assert.True(t, product.IsActive)

	product.Stock = 0
	require.NoError(t, db.Save(&product).Error)
	assert.False(t, product.IsActive)

	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.False(t, reloaded.IsActive)
}

func TestProductIsExpired(t *testing.T) {
	past := time.Now().AddDate(0, 0, -1)
	future := time.Now().AddDate(1, 0, 0)

	product := model.Product{}
	assert.False(t, product.IsExpired())

	product.ExpiryDate = &future
	assert.False(t, product.IsExpired())

	product.ExpiryDate = &past
	assert.True(t, product.IsExpired())
}

func TestCategoryOwnParentRejected(t *testing.T) {
	db := database.NewTestDB(t)

	category := model.Category{Name: "Parts", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	category.ParentCategoryID = &category.ID
	err := db.Save(&category).Error
	assert.ErrorIs(t, err, model.ErrCategoryOwnParent)
}
