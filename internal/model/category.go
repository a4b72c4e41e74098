package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrCategoryOwnParent is returned when a category references itself as parent
var ErrCategoryOwnParent = errors.New("category cannot be its own parent")

// Category represents a product category, optionally nested under a parent category
type Category struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Name             string         `json:"name" gorm:"type:varchar(100);index;not null;uniqueIndex:idx_category_per_parent"`
	ParentCategoryID *uint          `json:"parent_category_id,omitempty" gorm:"uniqueIndex:idx_category_per_parent"`
	ParentCategory   *Category      `json:"parent_category,omitempty" gorm:"foreignKey:ParentCategoryID"`
	IsActive         bool           `json:"is_active" gorm:"default:true"`
	CreatedBy        *uint          `json:"created_by,omitempty" gorm:"index"`
	UpdatedBy        *uint          `json:"updated_by,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// BeforeSave rejects a category that references itself as parent
func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.ParentCategoryID != nil && *c.ParentCategoryID == c.ID && c.ID != 0 {
		return ErrCategoryOwnParent
	}
	return nil
}
