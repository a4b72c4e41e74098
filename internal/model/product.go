package model

import (
	"time"

	"gorm.io/gorm"
)

// FieldErrors maps field names to validation messages
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	for _, msg := range e {
		return msg
	}
	return "validation failed"
}

// Product represents the product master data
type Product struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	Name            string         `json:"name" gorm:"type:varchar(100);index;not null"`
	CategoryID      uint           `json:"category_id" gorm:"index"`
	Category        *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	SupplierID      uint           `json:"supplier_id" gorm:"index"`
	Supplier        *Supplier      `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	WarehouseID     uint           `json:"warehouse_id" gorm:"index"`
	Warehouse       *Warehouse     `json:"warehouse,omitempty" gorm:"foreignKey:WarehouseID"`
	PurchasePrice   float64        `json:"purchase_price" gorm:"not null"`
	SellingPrice    float64        `json:"selling_price" gorm:"not null"`
	TaxRate         float64        `json:"tax_rate"`
	Measure         string         `json:"measure" gorm:"type:varchar(100)"`
	Stock           int            `json:"stock" gorm:"default:0"`
	IsActive        bool           `json:"is_active" gorm:"default:true"`
	Notes           string         `json:"notes" gorm:"type:text"`
	ManufactureDate *time.Time     `json:"manufacture_date,omitempty"`
	ExpiryDate      *time.Time     `json:"expiry_date,omitempty"`
	CreatedBy       *uint          `json:"created_by,omitempty" gorm:"index"`
	UpdatedBy       *uint          `json:"updated_by,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Validate checks product field constraints and returns field-level messages
func (p *Product) Validate() error {
	errs := FieldErrors{}

	if p.Stock < 0 {
		errs["stock"] = "Stock can not be negative."
	}

	if p.SellingPrice < p.PurchasePrice {
		errs["selling_price"] = "Selling price can not be less than purchase price."
	}

	if p.ExpiryDate != nil && p.ManufactureDate != nil && p.ExpiryDate.Before(*p.ManufactureDate) {
		errs["expiry_date"] = "Expiry date can not be less than manufacture date."
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BeforeSave validates the product and deactivates it when stock is exhausted
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Stock <= 0 {
		p.IsActive = false
	}
	return nil
}

// IsExpired reports whether the product has passed its expiry date
func (p *Product) IsExpired() bool {
	return p.ExpiryDate != nil && p.ExpiryDate.Before(time.Now())
}
