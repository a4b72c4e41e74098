package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents the user model stored in the database
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Username  string         `json:"username" gorm:"type:varchar(100);uniqueIndex"`
	Email     string         `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password  string         `json:"-" gorm:"type:varchar(255)"`
	FirstName string         `json:"first_name" gorm:"type:varchar(100)"`
	LastName  string         `json:"last_name" gorm:"type:varchar(100)"`
	RoleID    *uint          `json:"role_id,omitempty" gorm:"index"`
	Role      *Role          `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	IsAdmin   bool           `json:"is_admin" gorm:"default:false"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// PermissionCodes returns the permission codes granted through the user's role
func (u *User) PermissionCodes() []string {
	if u.Role == nil {
		return nil
	}
	codes := make([]string, 0, len(u.Role.Permissions))
	for _, p := range u.Role.Permissions {
		codes = append(codes, p.Code)
	}
	return codes
}

// RoleName returns the name of the user's role, or an empty string
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}
