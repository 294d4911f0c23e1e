package models

import "time"

// Pricing holds the operator-tunable pricing knobs
type Pricing struct {
	BasePrice  float64 `gorm:"not null;default:0" json:"basePrice"`
	PricePerKg float64 `gorm:"not null;default:0" json:"pricePerKg"`
	ExpressFee float64 `gorm:"not null;default:0" json:"expressFee"`
	Currency   string  `gorm:"not null;default:'USD'" json:"currency"`
}

// BusinessHours holds the operating window
type BusinessHours struct {
	OpeningTime string   `gorm:"not null;default:'08:00'" json:"openingTime"`
	ClosingTime string   `gorm:"not null;default:'20:00'" json:"closingTime"`
	WorkingDays []string `gorm:"serializer:json" json:"workingDays"`
}

// ServiceOptions toggles optional offerings
type ServiceOptions struct {
	SameDayDelivery bool `gorm:"not null;default:false" json:"sameDayDelivery"`
	ExpressDelivery bool `gorm:"not null;default:true" json:"expressDelivery"`
	CashOnDelivery  bool `gorm:"not null;default:true" json:"cashOnDelivery"`
	OnlinePayment   bool `gorm:"not null;default:true" json:"onlinePayment"`
}

// SystemSettings is a singleton row of operator configuration
type SystemSettings struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Pricing        Pricing        `gorm:"embedded;embeddedPrefix:pricing_" json:"pricing"`
	BusinessHours  BusinessHours  `gorm:"embedded;embeddedPrefix:hours_" json:"businessHours"`
	ServiceOptions ServiceOptions `gorm:"embedded;embeddedPrefix:options_" json:"serviceOptions"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// TableName specifies the table name for the SystemSettings model
func (SystemSettings) TableName() string {
	return "system_settings"
}

// ServiceArea is a neighbourhood the service operates in
type ServiceArea struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the ServiceArea model
func (ServiceArea) TableName() string {
	return "service_areas"
}
