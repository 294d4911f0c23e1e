package models

import "time"

// Tracking is the milestone timeline owned 1:1 by an order
type Tracking struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OrderID     uint           `gorm:"uniqueIndex;not null" json:"orderId"`
	Steps       []TrackingStep `gorm:"foreignKey:TrackingID" json:"timeline"`
	CurrentStep string         `json:"currentStep"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableName specifies the table name for the Tracking model
func (Tracking) TableName() string {
	return "trackings"
}

// TrackingStep is a single named milestone. Completion latches: a completed
// step never becomes incomplete again.
type TrackingStep struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TrackingID  uint       `gorm:"not null;index" json:"-"`
	Step        string     `gorm:"not null" json:"step"`
	Status      string     `gorm:"not null;default:'pending'" json:"status"` // pending, in_progress, completed
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	Time        *time.Time `json:"time,omitempty"`
	Description string     `json:"description"`
	Position    int        `gorm:"not null" json:"-"`
}

// TableName specifies the table name for the TrackingStep model
func (TrackingStep) TableName() string {
	return "tracking_steps"
}
