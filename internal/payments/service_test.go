package payments

import (
	"context"
	"testing"
	"time"

	"wildquest/internal/bookings"
	"wildquest/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	CreateFunc                func(ctx context.Context, payment *Payment) error
	GetByIDFunc               func(ctx context.Context, id uuid.UUID) (*Payment, error)
	GetByBookingFunc          func(ctx context.Context, bookingID uuid.UUID) ([]Payment, error)
	TransitionStatusFunc      func(ctx context.Context, id uuid.UUID, to PaymentStatus, updates map[string]interface{}) (*Payment, error)
	SumCompletedByBookingFunc func(ctx context.Context, bookingID uuid.UUID) (float64, error)
}

func (m *mockRepository) Create(ctx context.Context, payment *Payment) error {
	return m.CreateFunc(ctx, payment)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockRepository) GetByBooking(ctx context.Context, bookingID uuid.UUID) ([]Payment, error) {
	return m.GetByBookingFunc(ctx, bookingID)
}

func (m *mockRepository) TransitionStatus(ctx context.Context, id uuid.UUID, to PaymentStatus, updates map[string]interface{}) (*Payment, error) {
	return m.TransitionStatusFunc(ctx, id, to, updates)
}

func (m *mockRepository) SumCompletedByBooking(ctx context.Context, bookingID uuid.UUID) (float64, error) {
	return m.SumCompletedByBookingFunc(ctx, bookingID)
}

type mockBookingService struct {
	GetBookingFunc func(ctx context.Context, id uuid.UUID) (*bookings.Booking, error)
	MarkPaidFunc   func(ctx context.Context, id uuid.UUID) (*bookings.Booking, error)
}

func (m *mockBookingService) GetBooking(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
	return m.GetBookingFunc(ctx, id)
}

func (m *mockBookingService) MarkPaid(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
	return m.MarkPaidFunc(ctx, id)
}

func confirmedBooking(id uuid.UUID, total float64) *bookings.Booking {
	return &bookings.Booking{
		ID:          id,
		Status:      bookings.StatusConfirmed,
		TotalAmount: total,
	}
}

func TestInitiatePaymentDefaultsToBalance(t *testing.T) {
	bookingID := uuid.New()
	var created *Payment

	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, payment *Payment) error {
			payment.ID = uuid.New()
			created = payment
			return nil
		},
		SumCompletedByBookingFunc: func(ctx context.Context, id uuid.UUID) (float64, error) {
			return 2000, nil
		},
	}
	bookingSvc := &mockBookingService{
		GetBookingFunc: func(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
			return confirmedBooking(id, 5220), nil
		},
	}

	svc := NewService(repo, bookingSvc, logger.New())
	payment, err := svc.InitiatePayment(context.Background(), &InitiatePaymentRequest{
		BookingID: bookingID.String(),
		Method:    "mpesa",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 3220.0, payment.Amount)
	assert.Equal(t, PaymentPending, payment.Status)
	assert.Equal(t, MethodMpesa, payment.Method)
	assert.WithinDuration(t, time.Now(), payment.InitiatedAt, 2*time.Second)
}

func TestInitiatePaymentRejectsOverpayment(t *testing.T) {
	repo := &mockRepository{
		SumCompletedByBookingFunc: func(ctx context.Context, id uuid.UUID) (float64, error) {
			return 0, nil
		},
	}
	bookingSvc := &mockBookingService{
		GetBookingFunc: func(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
			return confirmedBooking(id, 1000), nil
		},
	}

	amount := 1500.0
	svc := NewService(repo, bookingSvc, logger.New())
	_, err := svc.InitiatePayment(context.Background(), &InitiatePaymentRequest{
		BookingID: uuid.New().String(),
		Method:    "card",
		Amount:    &amount,
	})
	assert.ErrorIs(t, err, ErrOverpayment)
}

func TestInitiatePaymentFullyPaidBooking(t *testing.T) {
	repo := &mockRepository{
		SumCompletedByBookingFunc: func(ctx context.Context, id uuid.UUID) (float64, error) {
			return 1000, nil
		},
	}
	bookingSvc := &mockBookingService{
		GetBookingFunc: func(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
			return confirmedBooking(id, 1000), nil
		},
	}

	svc := NewService(repo, bookingSvc, logger.New())
	_, err := svc.InitiatePayment(context.Background(), &InitiatePaymentRequest{
		BookingID: uuid.New().String(),
		Method:    "cash",
	})
	assert.ErrorIs(t, err, ErrNothingToPay)
}

func TestInitiatePaymentCancelledBooking(t *testing.T) {
	bookingSvc := &mockBookingService{
		GetBookingFunc: func(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
			b := confirmedBooking(id, 1000)
			b.Status = bookings.StatusCancelled
			return b, nil
		},
	}

	svc := NewService(&mockRepository{}, bookingSvc, logger.New())
	_, err := svc.InitiatePayment(context.Background(), &InitiatePaymentRequest{
		BookingID: uuid.New().String(),
		Method:    "mpesa",
	})
	assert.ErrorIs(t, err, ErrBookingClosed)
}

func TestGatewayCallbackCompletionPromotesBooking(t *testing.T) {
	bookingID := uuid.New()
	paymentID := uuid.New()
	promoted := false

	repo := &mockRepository{
		TransitionStatusFunc: func(ctx context.Context, id uuid.UUID, to PaymentStatus, updates map[string]interface{}) (*Payment, error) {
			require.Equal(t, PaymentCompleted, to)
			now := time.Now()
			return &Payment{
				ID:          id,
				BookingID:   bookingID,
				Amount:      5220,
				Status:      PaymentCompleted,
				CompletedAt: &now,
			}, nil
		},
		SumCompletedByBookingFunc: func(ctx context.Context, id uuid.UUID) (float64, error) {
			return 5220, nil
		},
	}
	bookingSvc := &mockBookingService{
		GetBookingFunc: func(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
			return confirmedBooking(id, 5220), nil
		},
		MarkPaidFunc: func(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
			promoted = true
			return &bookings.Booking{ID: id, Status: bookings.StatusPaid}, nil
		},
	}

	svc := NewService(repo, bookingSvc, logger.New())
	payment, err := svc.HandleGatewayCallback(context.Background(), paymentID, &GatewayCallbackRequest{
		Status:           "completed",
		GatewayReference: "QGH7KL2M9P",
	})
	require.NoError(t, err)
	assert.Equal(t, PaymentCompleted, payment.Status)
	assert.True(t, promoted)
}

func TestGatewayCallbackPartialPaymentDoesNotPromote(t *testing.T) {
	bookingID := uuid.New()
	promoted := false

	repo := &mockRepository{
		TransitionStatusFunc: func(ctx context.Context, id uuid.UUID, to PaymentStatus, updates map[string]interface{}) (*Payment, error) {
			return &Payment{ID: id, BookingID: bookingID, Amount: 2000, Status: PaymentCompleted}, nil
		},
		SumCompletedByBookingFunc: func(ctx context.Context, id uuid.UUID) (float64, error) {
			return 2000, nil
		},
	}
	bookingSvc := &mockBookingService{
		GetBookingFunc: func(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
			return confirmedBooking(id, 5220), nil
		},
		MarkPaidFunc: func(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
			promoted = true
			return nil, nil
		},
	}

	svc := NewService(repo, bookingSvc, logger.New())
	_, err := svc.HandleGatewayCallback(context.Background(), uuid.New(), &GatewayCallbackRequest{
		Status: "completed",
	})
	require.NoError(t, err)
	assert.False(t, promoted)
}

func TestGatewayCallbackReplayRejected(t *testing.T) {
	repo := &mockRepository{
		TransitionStatusFunc: func(ctx context.Context, id uuid.UUID, to PaymentStatus, updates map[string]interface{}) (*Payment, error) {
			return nil, ErrInvalidTransition
		},
	}

	svc := NewService(repo, &mockBookingService{}, logger.New())
	_, err := svc.HandleGatewayCallback(context.Background(), uuid.New(), &GatewayCallbackRequest{
		Status: "completed",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPaymentStatusMachine(t *testing.T) {
	assert.True(t, PaymentPending.CanTransitionTo(PaymentProcessing))
	assert.True(t, PaymentPending.CanTransitionTo(PaymentCompleted))
	assert.True(t, PaymentProcessing.CanTransitionTo(PaymentFailed))
	assert.True(t, PaymentCompleted.CanTransitionTo(PaymentRefunded))
	assert.False(t, PaymentCompleted.CanTransitionTo(PaymentCompleted))
	assert.False(t, PaymentRefunded.CanTransitionTo(PaymentPending))
	assert.False(t, PaymentFailed.CanTransitionTo(PaymentCompleted))
	assert.False(t, PaymentCancelled.CanTransitionTo(PaymentProcessing))
}
