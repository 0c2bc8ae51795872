package capacity

import "errors"

var (
	ErrBelowMinimumParticipants = errors.New("capacity: below minimum participants")
	ErrAboveMaximumParticipants = errors.New("capacity: above maximum participants")
	ErrInsufficientSpots        = errors.New("capacity: insufficient spots")
	ErrTierInsufficientSpots    = errors.New("capacity: insufficient tier spots")

	// ErrCapacityInconsistency flags a release that would drive a counter
	// negative. The counter is clamped at zero and the caller must log it
	// as a critical accounting bug.
	ErrCapacityInconsistency = errors.New("capacity: counter inconsistency detected")
)

// EventCapacity is the capacity snapshot of an event.
type EventCapacity struct {
	MinParticipants int
	MaxParticipants int
	CurrentBookings int
}

// TierCapacity is the capacity snapshot of an optional pricing tier.
type TierCapacity struct {
	MaxCapacity     int
	CurrentBookings int
}

// AvailableSpots never goes negative even if counters drifted.
func (e EventCapacity) AvailableSpots() int {
	spots := e.MaxParticipants - e.CurrentBookings
	if spots < 0 {
		return 0
	}
	return spots
}

func (t TierCapacity) AvailableSpots() int {
	spots := t.MaxCapacity - t.CurrentBookings
	if spots < 0 {
		return 0
	}
	return spots
}

// Check validates a reservation request against event and tier capacity.
// It is pure; the Tracker re-runs it under a row lock before mutating
// counters. Checks run in a fixed order so callers get stable errors:
// minimum, maximum, event spots, tier spots.
func Check(event EventCapacity, tier *TierCapacity, participants int) error {
	if participants < event.MinParticipants {
		return ErrBelowMinimumParticipants
	}
	if participants > event.MaxParticipants {
		return ErrAboveMaximumParticipants
	}
	if participants > event.AvailableSpots() {
		return ErrInsufficientSpots
	}
	if tier != nil && participants > tier.AvailableSpots() {
		return ErrTierInsufficientSpots
	}
	return nil
}
