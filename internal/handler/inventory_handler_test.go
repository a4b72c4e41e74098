package handler_test

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"inventory-service/internal/handler"
	"inventory-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedInventory(t *testing.T, db *gorm.DB, quantity int) model.Inventory {
	t.Helper()

	product := model.Product{
		Name:          "Brake Pad",
		PurchasePrice: 400,
		SellingPrice:  500,
		Stock:         quantity,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&product).Error)

	inventory := model.Inventory{ProductID: product.ID, Quantity: quantity}
	require.NoError(t, db.Create(&inventory).Error)
	return inventory
}

func TestUpdateInventoryWritesAudit(t *testing.T) {
	db := setupTestDB(t)
	inventory := seedInventory(t, db, 50)

	body := `{"quantity": 30, "note": "stock count correction"}`
	c, rec := newJSONContext(t, http.MethodPut, "/", body)
	c.SetPath("/api/inventories/:id")
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(inventory.ID), 10))
	c.Set("user_id", uint(7))

	require.NoError(t, handler.UpdateInventory(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var reloaded model.Inventory
	require.NoError(t, db.First(&reloaded, inventory.ID).Error)
	assert.Equal(t, 30, reloaded.Quantity)

	var audit model.InventoryAudit
	require.NoError(t, db.Where("product_id = ?", inventory.ProductID).First(&audit).Error)
	assert.Equal(t, 50, audit.OldQuantity)
	assert.Equal(t, 30, audit.NewQuantity)
	assert.Equal(t, "stock count correction", audit.Note)
	require.NotNil(t, audit.UserID)
	assert.Equal(t, uint(7), *audit.UserID)
}

func TestUpdateInventoryAnonymousAudit(t *testing.T) {
	db := setupTestDB(t)
	inventory := seedInventory(t, db, 50)

	body := `{"quantity": 45}`
	c, rec := newJSONContext(t, http.MethodPut, "/", body)
	c.SetPath("/api/inventories/:id")
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(inventory.ID), 10))

	require.NoError(t, handler.UpdateInventory(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var audit model.InventoryAudit
	require.NoError(t, db.Where("product_id = ?", inventory.ProductID).First(&audit).Error)
	assert.Nil(t, audit.UserID)
}

func TestUpdateInventoryRejectsNegativeQuantity(t *testing.T) {
	db := setupTestDB(t)
	inventory := seedInventory(t, db, 50)

	body := `{"quantity": -5}`
	c, rec := newJSONContext(t, http.MethodPut, "/", body)
	c.SetPath("/api/inventories/:id")
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(inventory.ID), 10))

	require.NoError(t, handler.UpdateInventory(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// No audit row for a rejected update
	var count int64
	db.Model(&model.InventoryAudit{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateInventoryRejectsDuplicate(t *testing.T) {
	db := setupTestDB(t)
	inventory := seedInventory(t, db, 50)

	body, err := json.Marshal(map[string]interface{}{
		"product_id": inventory.ProductID,
		"quantity":   10,
	})
	require.NoError(t, err)

	c, rec := newJSONContext(t, http.MethodPost, "/api/inventories", string(body))
	require.NoError(t, handler.CreateInventory(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
