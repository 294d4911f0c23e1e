package models

import "time"

// Service is a laundry service offering (wash, dry clean, ironing...)
type Service struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"not null" json:"name"`
	Description        string    `gorm:"not null" json:"description"`
	PricePerKg         float64   `gorm:"not null" json:"pricePerKg"`
	Icon               string    `json:"icon"`
	Available          bool      `gorm:"not null;default:true" json:"available"`
	EstimatedTimeHours int       `gorm:"not null" json:"estimatedTime"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}
