package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User represents an account. Admin access is decided by the role column
// and verified server-side on every privileged call.
type User struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Email     string         `json:"email" gorm:"type:varchar(255);unique;not null"`
	Password  string         `json:"-" gorm:"type:varchar(255);not null"`
	Role      string         `json:"role" gorm:"type:varchar(16);not null;default:'customer'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
