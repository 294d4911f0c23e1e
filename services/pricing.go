package services

import (
	"errors"
	"fmt"

	"github.com/ningi265/quickspin/models"
	"gorm.io/gorm"
)

// ErrServiceNotFound is returned when a requested service id does not
// resolve to an available service
var ErrServiceNotFound = errors.New("service not found")

// LineItemRequest is a single requested service with a quantity in kg
type LineItemRequest struct {
	ServiceID uint `json:"serviceId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// ResolveLineItems looks up the requested services and returns priced line
// items snapshotting name and unit price, plus the order total. It has no
// side effects beyond the read.
func ResolveLineItems(db *gorm.DB, requests []LineItemRequest) ([]models.OrderService, float64, error) {
	ids := make([]uint, len(requests))
	for i, r := range requests {
		ids[i] = r.ServiceID
	}

	var services []models.Service
	if err := db.Where("id IN ? AND available = ?", ids, true).Find(&services).Error; err != nil {
		return nil, 0, err
	}

	byID := make(map[uint]models.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	var total float64
	lineItems := make([]models.OrderService, 0, len(requests))
	for _, r := range requests {
		svc, ok := byID[r.ServiceID]
		if !ok {
			return nil, 0, fmt.Errorf("%w: id %d", ErrServiceNotFound, r.ServiceID)
		}
		lineTotal := svc.PricePerKg * float64(r.Quantity)
		total += lineTotal
		lineItems = append(lineItems, models.OrderService{
			ServiceID: svc.ID,
			Name:      svc.Name,
			Price:     svc.PricePerKg,
			Quantity:  r.Quantity,
		})
	}

	return lineItems, total, nil
}
