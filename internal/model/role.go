package model

import (
	"time"

	"gorm.io/gorm"
)

// Role represents a named group of permissions assigned to users
type Role struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Permissions []Permission   `json:"permissions,omitempty" gorm:"many2many:role_permissions"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// Permission represents a single grantable permission code
type Permission struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Code string `json:"code" gorm:"type:varchar(100);uniqueIndex;not null"`
	Name string `json:"name" gorm:"type:varchar(255)"`
}
