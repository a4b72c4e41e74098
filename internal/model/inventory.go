package model

import (
	"time"
)

// Inventory holds the authoritative on-hand quantity for one product
type Inventory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"product_id" gorm:"uniqueIndex;not null"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int       `json:"quantity" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InventoryAudit is an append-only record of an inventory quantity change
type InventoryAudit struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ProductID   uint      `json:"product_id" gorm:"index;not null"`
	Product     *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	UserID      *uint     `json:"user_id,omitempty" gorm:"index"`
	OldQuantity int       `json:"old_quantity"`
	NewQuantity int       `json:"new_quantity"`
	Note        string    `json:"note" gorm:"type:varchar(255)"`
	CreatedAt   time.Time `json:"created_at"`
}
