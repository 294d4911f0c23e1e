package models

import (
	"time"
)

// Location is the pickup/delivery address attached to an order
type Location struct {
	Address   string  `gorm:"not null" json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Order represents a single laundry pickup-and-delivery request
type Order struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	OrderID    string `gorm:"uniqueIndex;not null" json:"orderId"` // human-readable, e.g. ORD-483920117
	CustomerID uint   `gorm:"not null;index" json:"customerId"`
	Customer   User   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	Services   []OrderService `gorm:"foreignKey:OrderID" json:"services"`
	Items      []OrderItem    `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	TotalPrice float64        `gorm:"not null" json:"totalPrice"`

	Status   OrderStatus `gorm:"not null;default:'pending'" json:"status"`
	Progress int         `gorm:"not null;default:0" json:"progress"`

	PickupDate        time.Time `gorm:"not null" json:"pickupDate"`
	PickupTimeSlot    string    `gorm:"not null" json:"pickupTimeSlot"`
	DeliveryDate      time.Time `json:"deliveryDate"`
	EstimatedDelivery string    `json:"estimatedDelivery"`

	Location            Location `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	SpecialInstructions string   `json:"specialInstructions"`

	QRCode       string     `gorm:"uniqueIndex;not null" json:"qrCode"`
	QRVerified   bool       `gorm:"not null;default:false" json:"qrVerified"`
	QRVerifiedAt *time.Time `json:"qrVerifiedAt,omitempty"`
	QRVerifiedBy *uint      `json:"qrVerifiedBy,omitempty"`

	DriverID *uint `gorm:"index" json:"driverId,omitempty"`

	// Version guards concurrent status updates (compare-and-swap)
	Version int `gorm:"not null;default:1" json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderService is a priced line item snapshotted from a Service at order time
type OrderService struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"-"`
	ServiceID uint    `gorm:"not null" json:"serviceId"`
	Name      string  `gorm:"not null" json:"name"`
	Price     float64 `gorm:"not null" json:"price"`
	Quantity  int     `gorm:"not null" json:"quantity"`
}

// TableName specifies the table name for the OrderService model
func (OrderService) TableName() string {
	return "order_services"
}

// OrderItem is a physical garment declared by the customer
type OrderItem struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	OrderID  uint    `gorm:"not null;index" json:"-"`
	Name     string  `gorm:"not null" json:"name"`
	Quantity int     `gorm:"not null" json:"quantity"`
	Weight   float64 `json:"weight"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
