package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errNotFound = errors.New("payment not found")

type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	GetByBooking(ctx context.Context, bookingID uuid.UUID) ([]Payment, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, to PaymentStatus, updates map[string]interface{}) (*Payment, error)
	SumCompletedByBooking(ctx context.Context, bookingID uuid.UUID) (float64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, payment *Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Payment, error) {
	var payment Payment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *repository) GetByBooking(ctx context.Context, bookingID uuid.UUID) ([]Payment, error) {
	var payments []Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("initiated_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// TransitionStatus applies the status machine against a locked row so a
// duplicate gateway callback loses with ErrInvalidTransition instead of
// double-completing.
func (r *repository) TransitionStatus(ctx context.Context, id uuid.UUID, to PaymentStatus, updates map[string]interface{}) (*Payment, error) {
	var payment Payment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return fmt.Errorf("failed to lock payment: %w", err)
		}

		if !payment.Status.CanTransitionTo(to) {
			return ErrInvalidTransition
		}

		if updates == nil {
			updates = map[string]interface{}{}
		}
		updates["status"] = to
		now := time.Now()
		switch to {
		case PaymentCompleted:
			updates["completed_at"] = now
			payment.CompletedAt = &now
		case PaymentRefunded:
			updates["refunded_at"] = now
			payment.RefundedAt = &now
		}

		if err := tx.Model(&payment).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update payment status: %w", err)
		}
		payment.Status = to
		if ref, ok := updates["gateway_reference"].(string); ok {
			payment.GatewayReference = ref
		}
		if reason, ok := updates["failure_reason"].(string); ok {
			payment.FailureReason = reason
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repository) SumCompletedByBooking(ctx context.Context, bookingID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&Payment{}).
		Where("booking_id = ? AND status = ?", bookingID, PaymentCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum payments: %w", err)
	}
	return total, nil
}

// IsNotFound reports whether err means the payment does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}
