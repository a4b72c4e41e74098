// Package fulfillment implements the order fulfillment state machine:
// draft -> confirmed -> delivered. Confirmation checks stock sufficiency
// across all line items and decrements inventory as one atomic unit.
package fulfillment

import (
	"errors"

	"inventory-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotDraft is returned when confirming an order that is not in draft status
	ErrNotDraft = errors.New("Only draft orders can be confirmed.")

	// ErrNotConfirmed is returned when delivering an order that is not confirmed
	ErrNotConfirmed = errors.New("Only confirmed orders can be delivered.")

	// ErrOrderNotFound is returned when the order does not exist
	ErrOrderNotFound = errors.New("order not found")
)

// Shortfall describes one line item whose requested quantity exceeds stock
type Shortfall struct {
	Product   string `json:"product"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

// InsufficientStockError carries the per-line shortfall details of a rejected confirmation
type InsufficientStockError struct {
	Details []Shortfall
}

func (e *InsufficientStockError) Error() string {
	return "Insufficient stock for some products."
}

// Confirm transitions a draft order to confirmed, decrementing inventory for
// every line item. The sufficiency check and all decrements run in a single
// transaction with the inventory rows locked, so either every line is applied
// or none is.
func Confirm(db *gorm.DB, orderID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if order.Status != model.OrderStatusDraft {
			return ErrNotDraft
		}

		// Lock every inventory row up front so concurrent confirmations
		// against the same products serialize on the row locks. SQLite
		// has no FOR UPDATE; its transactions lock the whole database.
		rowLocking := tx.Dialector.Name() == "postgres"

		inventories := make(map[uint]*model.Inventory, len(order.Items))
		var insufficient []Shortfall
		for _, item := range order.Items {
			q := tx
			if rowLocking {
				q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
			}

			var inv model.Inventory
			err := q.Where("product_id = ?", item.ProductID).First(&inv).Error
			if err != nil {
				return err
			}

			if item.Quantity > inv.Quantity {
				insufficient = append(insufficient, Shortfall{
					Product:   productName(tx, item.ProductID),
					Available: inv.Quantity,
					Requested: item.Quantity,
				})
				continue
			}
			inventories[item.ProductID] = &inv
		}

		if len(insufficient) > 0 {
			return &InsufficientStockError{Details: insufficient}
		}

		for _, item := range order.Items {
			inv := inventories[item.ProductID]
			inv.Quantity -= item.Quantity
			if err := tx.Save(inv).Error; err != nil {
				return err
			}
		}

		order.Status = model.OrderStatusConfirmed
		return tx.Save(&order).Error
	})
}

// Deliver transitions a confirmed order to delivered. It has no inventory effect.
func Deliver(db *gorm.DB, orderID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if order.Status != model.OrderStatusConfirmed {
			return ErrNotConfirmed
		}

		order.Status = model.OrderStatusDelivered
		return tx.Save(&order).Error
	})
}

func productName(tx *gorm.DB, productID uint) string {
	var product model.Product
	if err := tx.Select("name").First(&product, productID).Error; err != nil {
		return ""
	}
	return product.Name
}
