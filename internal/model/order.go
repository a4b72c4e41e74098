package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order status values
const (
	OrderStatusDraft     = "draft"
	OrderStatusConfirmed = "confirmed"
	OrderStatusDelivered = "delivered"
)

// Order represents a dealer's order composed of line items
type Order struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	DealerID    uint           `json:"dealer_id" gorm:"index;not null"`
	Dealer      *Dealer        `json:"dealer,omitempty" gorm:"foreignKey:DealerID"`
	OrderNumber string         `json:"order_number" gorm:"type:varchar(20);uniqueIndex"`
	Status      string         `json:"status" gorm:"type:varchar(10);default:'draft'"`
	TotalAmount float64        `json:"total_amount" gorm:"default:0"`
	Items       []OrderItem    `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns a generated order number when none is set
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.OrderNumber == "" {
		today := time.Now().Format("20060102")
		uniqueID := uuid.New().String()[:4]
		o.OrderNumber = fmt.Sprintf("ORD-%s-%s", today, uniqueID)
	}
	if o.Status == "" {
		o.Status = OrderStatusDraft
	}
	return nil
}

// OrderItem represents one product line within an order
type OrderItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   uint      `json:"order_id" gorm:"index;not null"`
	ProductID uint      `json:"product_id" gorm:"index;not null"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	UnitPrice float64   `json:"unit_price" gorm:"not null"`
	LineTotal float64   `json:"line_total"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave recomputes the derived line total on every save
func (i *OrderItem) BeforeSave(tx *gorm.DB) error {
	i.LineTotal = float64(i.Quantity) * i.UnitPrice
	return nil
}
