package model

import (
	"time"

	"gorm.io/gorm"
)

// Payment terms accepted for suppliers
const (
	PaymentTermsNet15     = "Net 15"
	PaymentTermsNet30     = "Net 30"
	PaymentTermsCOD       = "COD"
	PaymentTermsAdvance50 = "Advance 50%"
	PaymentTermsImmediate = "Immediate"
)

// ValidPaymentTerms reports whether the given payment terms value is accepted
func ValidPaymentTerms(terms string) bool {
	switch terms {
	case PaymentTermsNet15, PaymentTermsNet30, PaymentTermsCOD, PaymentTermsAdvance50, PaymentTermsImmediate:
		return true
	}
	return false
}

// Supplier represents the supplier model stored in the database
type Supplier struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Name           string         `json:"name" gorm:"type:varchar(100);index;not null"`
	ContactPerson  string         `json:"contact_person" gorm:"type:varchar(100)"`
	Phone          string         `json:"phone" gorm:"type:varchar(20)"`
	Email          string         `json:"email" gorm:"type:varchar(100)"`
	Address        string         `json:"address" gorm:"type:text"`
	City           string         `json:"city" gorm:"type:varchar(100)"`
	OpeningBalance float64        `json:"opening_balance" gorm:"default:0"`
	PaymentTerms   string         `json:"payment_terms" gorm:"type:varchar(100);default:'Immediate'"`
	Notes          string         `json:"notes" gorm:"type:text"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	CreatedBy      *uint          `json:"created_by,omitempty" gorm:"index"`
	UpdatedBy      *uint          `json:"updated_by,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
