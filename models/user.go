package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole defines the allowed roles in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleDriver   UserRole = "driver"
	RoleAdmin    UserRole = "admin"
)

// ValidRole reports whether the given role is one of the known roles
func ValidRole(r UserRole) bool {
	switch r {
	case RoleCustomer, RoleDriver, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered account (customer, driver or admin)
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PhoneNumber  string         `gorm:"not null" json:"phoneNumber"`
	Address      string         `gorm:"not null" json:"address"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         UserRole       `gorm:"not null;default:'customer'" json:"role"`
	IsActive     bool           `gorm:"not null;default:true" json:"isActive"`
	MemberSince  time.Time      `gorm:"autoCreateTime" json:"memberSince"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
