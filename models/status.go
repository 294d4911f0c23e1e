package models

import "fmt"

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	StatusPending          OrderStatus = "pending"
	StatusConfirmed        OrderStatus = "confirmed"
	StatusPickedUp         OrderStatus = "picked_up"
	StatusInProgress       OrderStatus = "in_progress"
	StatusReadyForDelivery OrderStatus = "ready_for_delivery"
	StatusDelivered        OrderStatus = "delivered"
	StatusCancelled        OrderStatus = "cancelled"
)

// statusRank orders the non-terminal lifecycle. Cancelled sits outside the
// sequence and is handled separately.
var statusRank = map[OrderStatus]int{
	StatusPending:          0,
	StatusConfirmed:        1,
	StatusPickedUp:         2,
	StatusInProgress:       3,
	StatusReadyForDelivery: 4,
	StatusDelivered:        5,
}

// Valid reports whether the status is one of the known order statuses
func (s OrderStatus) Valid() bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// Terminal reports whether no further transitions are allowed from s
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition validates a status change. The lifecycle only moves forward
// along the enum order; cancelled is reachable from any non-terminal state.
func CanTransition(from, to OrderStatus) error {
	if !to.Valid() {
		return fmt.Errorf("unknown status %q", to)
	}
	if to == StatusCancelled {
		if from.Terminal() {
			return fmt.Errorf("cannot cancel an order in terminal state %q", from)
		}
		return nil
	}
	fromRank, ok := statusRank[from]
	if !ok {
		return fmt.Errorf("no transitions allowed from terminal state %q", from)
	}
	if statusRank[to] <= fromRank {
		return fmt.Errorf("invalid transition: %s -> %s (status can only move forward)", from, to)
	}
	return nil
}

// Canonical tracking timeline steps. Step identity is a fixed vocabulary
// shared by order creation, QR verification and status updates, so the
// timeline and the order status cannot drift apart.
const (
	StepOrderPlaced      = "Order Placed"
	StepPickupScheduled  = "Pickup Scheduled"
	StepItemsCollected   = "Items Collected"
	StepInProcessing     = "In Processing"
	StepReadyForDelivery = "Ready for Delivery"
	StepDelivered        = "Delivered"
)

// TimelineSteps returns the canonical step sequence with default descriptions
func TimelineSteps() []TrackingStep {
	return []TrackingStep{
		{Step: StepOrderPlaced, Description: "Order has been placed", Position: 1},
		{Step: StepPickupScheduled, Description: "Pickup has been scheduled", Position: 2},
		{Step: StepItemsCollected, Description: "Items will be collected from your location", Position: 3},
		{Step: StepInProcessing, Description: "Your laundry is being processed", Position: 4},
		{Step: StepReadyForDelivery, Description: "Order is ready for delivery", Position: 5},
		{Step: StepDelivered, Description: "Order has been delivered", Position: 6},
	}
}

// StepForStatus maps an order status to the timeline step it completes.
// Statuses without a matching step (pending, confirmed, cancelled) return "".
func StepForStatus(s OrderStatus) string {
	switch s {
	case StatusPickedUp:
		return StepItemsCollected
	case StatusInProgress:
		return StepInProcessing
	case StatusReadyForDelivery:
		return StepReadyForDelivery
	case StatusDelivered:
		return StepDelivered
	}
	return ""
}
