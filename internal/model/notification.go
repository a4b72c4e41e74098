package model

import (
	"time"
)

// Notification categories
const (
	NotificationCategoryUser     = "user"
	NotificationCategoryProduct  = "product"
	NotificationCategoryOrder    = "order"
	NotificationCategorySupplier = "supplier"
	NotificationCategorySystem   = "system"
)

// Notification types
const (
	NotificationUserRegistered = "user_registered"
	NotificationLowStock       = "low_stock"
	NotificationOutOfStock     = "out_of_stock"
	NotificationStockUpdated   = "stock_updated"
	NotificationNewOrder       = "new_order"
	NotificationOrderDelivered = "order_delivered"
	NotificationSupplierAdded  = "supplier_added"
)

// Notification is a message produced by a side channel on domain events
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    *uint     `json:"user_id,omitempty" gorm:"index"`
	Category  string    `json:"category" gorm:"type:varchar(20);index;default:'system'"`
	Type      string    `json:"type" gorm:"type:varchar(55);index"`
	Message   string    `json:"message" gorm:"type:text"`
	IsRead    bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
