package models

import "time"

// DriverStatus is the availability state of a driver
type DriverStatus string

const (
	DriverActive     DriverStatus = "active"
	DriverOffline    DriverStatus = "offline"
	DriverOnDelivery DriverStatus = "on-delivery"
)

// ValidDriverStatus reports whether the status is a known driver status
func ValidDriverStatus(s DriverStatus) bool {
	switch s {
	case DriverActive, DriverOffline, DriverOnDelivery:
		return true
	}
	return false
}

// Vehicle describes the driver's vehicle
type Vehicle struct {
	Model        string `gorm:"not null" json:"model"`
	LicensePlate string `gorm:"uniqueIndex;not null" json:"licensePlate"`
	Color        string `json:"color"`
	Year         int    `json:"year"`
}

// Driver is a delivery driver. Drivers are soft-deleted by clearing IsActive
// so historical orders keep their weak reference.
type Driver struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	Name            string       `gorm:"not null" json:"name"`
	Email           string       `gorm:"uniqueIndex;not null" json:"email"`
	Phone           string       `gorm:"not null" json:"phone"`
	Vehicle         Vehicle      `gorm:"embedded;embeddedPrefix:vehicle_" json:"vehicle"`
	Status          DriverStatus `gorm:"not null;default:'offline'" json:"status"`
	CurrentLocation Location     `gorm:"embedded;embeddedPrefix:location_" json:"currentLocation"`
	Rating          float64      `gorm:"not null;default:0" json:"rating"`
	Deliveries      int          `gorm:"not null;default:0" json:"deliveries"`
	IsActive        bool         `gorm:"not null;default:true" json:"isActive"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// TableName specifies the table name for the Driver model
func (Driver) TableName() string {
	return "drivers"
}
