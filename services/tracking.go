package services

import (
	"time"

	"github.com/ningi265/quickspin/logger"
	"github.com/ningi265/quickspin/models"
	"gorm.io/gorm"
)

var log = logger.New("quickspin-api")

// SeedTimeline creates the canonical tracking timeline for a freshly
// created order. The first two steps (Order Placed, Pickup Scheduled) are
// completed immediately.
func SeedTimeline(tx *gorm.DB, orderID uint) (*models.Tracking, error) {
	now := time.Now()
	steps := models.TimelineSteps()
	for i := range steps {
		if steps[i].Step == models.StepOrderPlaced || steps[i].Step == models.StepPickupScheduled {
			steps[i].Completed = true
			steps[i].Status = "completed"
			t := now
			steps[i].Time = &t
		}
	}

	tracking := models.Tracking{
		OrderID:     orderID,
		Steps:       steps,
		CurrentStep: models.StepPickupScheduled,
	}
	if err := tx.Create(&tracking).Error; err != nil {
		return nil, err
	}
	return &tracking, nil
}

// AdvanceStep marks the named timeline step completed, stamps the time and
// moves the current-step pointer. An unknown step name is a logged no-op:
// the caller's status change still stands even if the timeline vocabulary
// ever drifts. Completion latches, so advancing an already-completed step
// only refreshes its description.
func AdvanceStep(tx *gorm.DB, orderID uint, stepName, description string) error {
	var tracking models.Tracking
	if err := tx.Where("order_id = ?", orderID).First(&tracking).Error; err != nil {
		return err
	}

	var step models.TrackingStep
	err := tx.Where("tracking_id = ? AND step = ?", tracking.ID, stepName).First(&step).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			log.Warning("unknown timeline step, leaving timeline unchanged",
				logger.String("step", stepName),
				logger.Uint("orderId", orderID),
			)
			return nil
		}
		return err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"completed": true,
		"status":    "completed",
		"time":      now,
	}
	if description != "" {
		updates["description"] = description
	}
	if err := tx.Model(&step).Updates(updates).Error; err != nil {
		return err
	}

	return tx.Model(&tracking).Update("current_step", stepName).Error
}

// LoadTimeline fetches the timeline for an order with steps in display order
func LoadTimeline(db *gorm.DB, orderID uint) (*models.Tracking, error) {
	var tracking models.Tracking
	err := db.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("order_id = ?", orderID).First(&tracking).Error
	if err != nil {
		return nil, err
	}
	return &tracking, nil
}
