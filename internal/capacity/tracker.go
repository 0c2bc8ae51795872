package capacity

import (
	"context"
	"fmt"

	"wildquest/internal/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Tracker owns the current_bookings counters on events and pricing tiers.
// No other component mutates them. Both Reserve and Release run inside
// the caller's transaction and take row locks, so two concurrent bookings
// against the same event serialize on the event row and cannot both win
// the last spots.
type Tracker struct {
	db *gorm.DB
}

func NewTracker(db *gorm.DB) *Tracker {
	return &Tracker{db: db}
}

// Reserve locks the event row (and tier row if given), re-checks capacity
// against the locked state and increments the counters. Must be called
// inside a transaction; pass the tx handle.
func (t *Tracker) Reserve(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, tierID *uuid.UUID, participants int) error {
	var event events.Event
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", eventID).
		First(&event).Error; err != nil {
		return fmt.Errorf("failed to lock event for reservation: %w", err)
	}

	var tier *events.PricingTier
	if tierID != nil {
		var locked events.PricingTier
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND event_id = ?", *tierID, eventID).
			First(&locked).Error; err != nil {
			return fmt.Errorf("failed to lock pricing tier for reservation: %w", err)
		}
		tier = &locked
	}

	eventCap := EventCapacity{
		MinParticipants: event.MinParticipants,
		MaxParticipants: event.MaxParticipants,
		CurrentBookings: event.CurrentBookings,
	}
	var tierCap *TierCapacity
	if tier != nil {
		tierCap = &TierCapacity{
			MaxCapacity:     tier.MaxCapacity,
			CurrentBookings: tier.CurrentBookings,
		}
	}

	if err := Check(eventCap, tierCap, participants); err != nil {
		return err
	}

	if err := tx.WithContext(ctx).Model(&event).
		Update("current_bookings", event.CurrentBookings+participants).Error; err != nil {
		return fmt.Errorf("failed to increment event counter: %w", err)
	}
	if tier != nil {
		if err := tx.WithContext(ctx).Model(tier).
			Update("current_bookings", tier.CurrentBookings+participants).Error; err != nil {
			return fmt.Errorf("failed to increment tier counter: %w", err)
		}
	}

	return nil
}

// Release decrements the counters for a cancelled booking. A decrement
// that would go negative is clamped at zero and reported as
// ErrCapacityInconsistency after the clamped value is persisted; the
// cancellation itself must still proceed.
func (t *Tracker) Release(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, tierID *uuid.UUID, participants int) error {
	var event events.Event
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", eventID).
		First(&event).Error; err != nil {
		return fmt.Errorf("failed to lock event for release: %w", err)
	}

	inconsistent := false

	newCount := event.CurrentBookings - participants
	if newCount < 0 {
		newCount = 0
		inconsistent = true
	}
	if err := tx.WithContext(ctx).Model(&event).
		Update("current_bookings", newCount).Error; err != nil {
		return fmt.Errorf("failed to decrement event counter: %w", err)
	}

	if tierID != nil {
		var tier events.PricingTier
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND event_id = ?", *tierID, eventID).
			First(&tier).Error; err != nil {
			return fmt.Errorf("failed to lock pricing tier for release: %w", err)
		}

		newTierCount := tier.CurrentBookings - participants
		if newTierCount < 0 {
			newTierCount = 0
			inconsistent = true
		}
		if err := tx.WithContext(ctx).Model(&tier).
			Update("current_bookings", newTierCount).Error; err != nil {
			return fmt.Errorf("failed to decrement tier counter: %w", err)
		}
	}

	if inconsistent {
		return ErrCapacityInconsistency
	}
	return nil
}
