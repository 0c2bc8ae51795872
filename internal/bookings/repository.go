package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wildquest/internal/capacity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errNotFound = errors.New("booking not found")

// Repository handles booking persistence. The reserve and release paths
// run the capacity tracker inside the same transaction as the booking
// row change, so counters and bookings can never drift apart on a crash.
type Repository interface {
	CreateWithReservation(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetAll(ctx context.Context, query *BookingListQuery) (*PaginatedBookings, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, to BookingStatus, from ...BookingStatus) (*Booking, error)
	CancelWithRelease(ctx context.Context, id uuid.UUID) (*Booking, bool, error)
}

type repository struct {
	db      *gorm.DB
	tracker *capacity.Tracker
}

func NewRepository(db *gorm.DB, tracker *capacity.Tracker) Repository {
	return &repository{db: db, tracker: tracker}
}

// CreateWithReservation reserves capacity and persists the booking in a
// single transaction. Capacity errors roll the whole thing back.
func (r *repository) CreateWithReservation(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.tracker.Reserve(ctx, tx, booking.EventID, booking.TierID, booking.TotalParticipants()); err != nil {
			return err
		}
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("Tier").
		Preload("Participants").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *repository) GetAll(ctx context.Context, query *BookingListQuery) (*PaginatedBookings, error) {
	db := r.db.WithContext(ctx).Model(&Booking{})

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.EventID != "" {
		db = db.Where("event_id = ?", query.EventID)
	}
	if query.Method != "" {
		db = db.Where("method = ?", query.Method)
	}
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("customer_name ILIKE ? OR customer_email ILIKE ? OR customer_phone ILIKE ?",
			search, search, search)
	}
	if query.DateFrom != "" {
		if from, err := time.Parse("2006-01-02", query.DateFrom); err == nil {
			db = db.Where("booked_at >= ?", from)
		}
	}
	if query.DateTo != "" {
		if to, err := time.Parse("2006-01-02", query.DateTo); err == nil {
			db = db.Where("booked_at < ?", to.AddDate(0, 0, 1))
		}
	}

	var totalCount int64
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	var bookings []Booking
	err := db.Preload("Event").
		Order("booked_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))
	return &PaginatedBookings{
		Bookings:   bookings,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// TransitionStatus moves a booking to the target status, guarded by the
// allowed source states. The guard runs against a locked row, so a
// concurrent transition loses cleanly with ErrInvalidTransition.
func (r *repository) TransitionStatus(ctx context.Context, id uuid.UUID, to BookingStatus, from ...BookingStatus) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		allowed := false
		for _, f := range from {
			if booking.Status == f {
				allowed = true
				break
			}
		}
		if !allowed || !booking.Status.CanTransitionTo(to) {
			return ErrInvalidTransition
		}

		updates := map[string]interface{}{"status": to}
		now := time.Now()
		switch to {
		case StatusConfirmed:
			updates["confirmed_at"] = now
			booking.ConfirmedAt = &now
		case StatusCancelled:
			updates["cancelled_at"] = now
			booking.CancelledAt = &now
		}

		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}
		booking.Status = to
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelWithRelease cancels the booking and releases its capacity in one
// transaction. The returned bool reports a counter inconsistency found
// during release; the clamped counters and the cancellation are committed
// regardless, so the flag is informational for the caller to log.
func (r *repository) CancelWithRelease(ctx context.Context, id uuid.UUID) (*Booking, bool, error) {
	var booking Booking
	inconsistent := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if !booking.Status.IsCancellable() {
			return ErrInvalidTransition
		}

		now := time.Now()
		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"status":       StatusCancelled,
			"cancelled_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}
		booking.Status = StatusCancelled
		booking.CancelledAt = &now

		releaseErr := r.tracker.Release(ctx, tx, booking.EventID, booking.TierID, booking.TotalParticipants())
		if errors.Is(releaseErr, capacity.ErrCapacityInconsistency) {
			// counters were clamped at zero; commit anyway
			inconsistent = true
			return nil
		}
		return releaseErr
	})
	if err != nil {
		return nil, false, err
	}
	return &booking, inconsistent, nil
}

// IsNotFound reports whether err means the booking does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}
