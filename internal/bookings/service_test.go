package bookings

import (
	"context"
	"testing"
	"time"

	"wildquest/internal/events"
	"wildquest/internal/pricing"
	"wildquest/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	CreateWithReservationFunc func(ctx context.Context, booking *Booking) error
	GetByIDFunc               func(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetAllFunc                func(ctx context.Context, query *BookingListQuery) (*PaginatedBookings, error)
	TransitionStatusFunc      func(ctx context.Context, id uuid.UUID, to BookingStatus, from ...BookingStatus) (*Booking, error)
	CancelWithReleaseFunc     func(ctx context.Context, id uuid.UUID) (*Booking, bool, error)
}

func (m *mockRepository) CreateWithReservation(ctx context.Context, booking *Booking) error {
	return m.CreateWithReservationFunc(ctx, booking)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockRepository) GetAll(ctx context.Context, query *BookingListQuery) (*PaginatedBookings, error) {
	return m.GetAllFunc(ctx, query)
}

func (m *mockRepository) TransitionStatus(ctx context.Context, id uuid.UUID, to BookingStatus, from ...BookingStatus) (*Booking, error) {
	return m.TransitionStatusFunc(ctx, id, to, from...)
}

func (m *mockRepository) CancelWithRelease(ctx context.Context, id uuid.UUID) (*Booking, bool, error) {
	return m.CancelWithReleaseFunc(ctx, id)
}

type mockEventProvider struct {
	GetBookableEventFunc func(ctx context.Context, id uuid.UUID) (*events.Event, error)
	GetTierFunc          func(ctx context.Context, tierID uuid.UUID) (*events.PricingTier, error)
}

func (m *mockEventProvider) GetBookableEvent(ctx context.Context, id uuid.UUID) (*events.Event, error) {
	return m.GetBookableEventFunc(ctx, id)
}

func (m *mockEventProvider) GetTier(ctx context.Context, tierID uuid.UUID) (*events.PricingTier, error) {
	return m.GetTierFunc(ctx, tierID)
}

func testEvent(id uuid.UUID) *events.Event {
	childPrice := 500.0
	return &events.Event{
		ID:                      id,
		Title:                   "Maasai Mara Safari",
		MaxParticipants:         20,
		MinParticipants:         1,
		BasePrice:               1000,
		ChildPrice:              &childPrice,
		GroupDiscountPercentage: 10,
		Status:                  events.EventStatusPublished,
	}
}

func newTestService(repo Repository, provider EventProvider) Service {
	calculator := pricing.NewCalculator(0.16, 5)
	return NewService(repo, provider, calculator, nil, logger.New())
}

func validRequest(eventID uuid.UUID) *CreateBookingRequest {
	return &CreateBookingRequest{
		EventID:       eventID.String(),
		CustomerName:  "Amina Odhiambo",
		CustomerEmail: "Amina@Example.com",
		CustomerPhone: "+254700111222",
		Adults:        2,
		Children:      1,
	}
}

func TestCreateBookingComputesBreakdown(t *testing.T) {
	eventID := uuid.New()
	var created *Booking

	repo := &mockRepository{
		CreateWithReservationFunc: func(ctx context.Context, booking *Booking) error {
			booking.ID = uuid.New()
			created = booking
			return nil
		},
	}
	provider := &mockEventProvider{
		GetBookableEventFunc: func(ctx context.Context, id uuid.UUID) (*events.Event, error) {
			return testEvent(id), nil
		},
	}

	svc := newTestService(repo, provider)
	booking, err := svc.CreateBooking(context.Background(), validRequest(eventID))
	require.NoError(t, err)
	require.NotNil(t, created)

	// 2 adults * 1000 + 1 child * 500 = 2500, below the group threshold
	assert.Equal(t, 2500.0, booking.BaseAmount)
	assert.Equal(t, 0.0, booking.DiscountAmount)
	assert.Equal(t, 400.0, booking.TaxAmount)
	assert.Equal(t, 2900.0, booking.TotalAmount)
	assert.Equal(t, StatusPending, booking.Status)
	assert.Equal(t, MethodOnline, booking.Method)
	assert.Equal(t, "amina@example.com", booking.CustomerEmail)
	assert.WithinDuration(t, time.Now(), booking.BookedAt, 2*time.Second)
}

func TestCreateBookingAppliesGroupDiscount(t *testing.T) {
	eventID := uuid.New()
	repo := &mockRepository{
		CreateWithReservationFunc: func(ctx context.Context, booking *Booking) error { return nil },
	}
	provider := &mockEventProvider{
		GetBookableEventFunc: func(ctx context.Context, id uuid.UUID) (*events.Event, error) {
			return testEvent(id), nil
		},
	}

	req := validRequest(eventID)
	req.Adults = 4
	req.Children = 2

	svc := newTestService(repo, provider)
	booking, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	// 4 * 1000 + 2 * 500 = 5000, 10% group discount, 16% tax on 4500
	assert.Equal(t, 5000.0, booking.BaseAmount)
	assert.Equal(t, 500.0, booking.DiscountAmount)
	assert.Equal(t, 720.0, booking.TaxAmount)
	assert.Equal(t, 5220.0, booking.TotalAmount)
}

func TestCreateBookingTierPricing(t *testing.T) {
	eventID := uuid.New()
	tierID := uuid.New()

	repo := &mockRepository{
		CreateWithReservationFunc: func(ctx context.Context, booking *Booking) error { return nil },
	}
	provider := &mockEventProvider{
		GetBookableEventFunc: func(ctx context.Context, id uuid.UUID) (*events.Event, error) {
			return testEvent(id), nil
		},
		GetTierFunc: func(ctx context.Context, id uuid.UUID) (*events.PricingTier, error) {
			return &events.PricingTier{
				ID:       id,
				EventID:  eventID,
				TierType: events.TierTypeVIP,
				Price:    1500,
				IsActive: true,
			}, nil
		},
	}

	tierStr := tierID.String()
	req := validRequest(eventID)
	req.TierID = &tierStr

	svc := newTestService(repo, provider)
	booking, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	// Tier price for the 2 adults, event child price for the child
	assert.Equal(t, 3500.0, booking.BaseAmount)
	require.NotNil(t, booking.TierID)
	assert.Equal(t, tierID, *booking.TierID)
}

func TestCreateBookingRejectsForeignTier(t *testing.T) {
	eventID := uuid.New()
	tierID := uuid.New()

	repo := &mockRepository{}
	provider := &mockEventProvider{
		GetBookableEventFunc: func(ctx context.Context, id uuid.UUID) (*events.Event, error) {
			return testEvent(id), nil
		},
		GetTierFunc: func(ctx context.Context, id uuid.UUID) (*events.PricingTier, error) {
			return &events.PricingTier{
				ID:       id,
				EventID:  uuid.New(), // belongs to a different event
				Price:    1500,
				IsActive: true,
			}, nil
		},
	}

	tierStr := tierID.String()
	req := validRequest(eventID)
	req.TierID = &tierStr

	svc := newTestService(repo, provider)
	_, err := svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrTierNotFound)
}

func TestCreateBookingClosedEvent(t *testing.T) {
	repo := &mockRepository{}
	provider := &mockEventProvider{
		GetBookableEventFunc: func(ctx context.Context, id uuid.UUID) (*events.Event, error) {
			return nil, events.ErrBookingClosed
		},
	}

	svc := newTestService(repo, provider)
	_, err := svc.CreateBooking(context.Background(), validRequest(uuid.New()))
	assert.ErrorIs(t, err, ErrBookingClosed)
}

func TestCreateBookingDropsUnnamedParticipants(t *testing.T) {
	eventID := uuid.New()
	var created *Booking

	repo := &mockRepository{
		CreateWithReservationFunc: func(ctx context.Context, booking *Booking) error {
			created = booking
			return nil
		},
	}
	provider := &mockEventProvider{
		GetBookableEventFunc: func(ctx context.Context, id uuid.UUID) (*events.Event, error) {
			return testEvent(id), nil
		},
	}

	req := validRequest(eventID)
	req.Participants = []ParticipantInput{
		{Name: "Amina Odhiambo", Type: "adult"},
		{Name: "   "},
		{Name: "Baraka Odhiambo"},
	}

	svc := newTestService(repo, provider)
	_, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, created.Participants, 2)
	assert.Equal(t, ParticipantAdult, created.Participants[1].Type)
}

func TestCancelBookingReleasesCapacityOnce(t *testing.T) {
	bookingID := uuid.New()
	cancelCalls := 0

	repo := &mockRepository{
		CancelWithReleaseFunc: func(ctx context.Context, id uuid.UUID) (*Booking, bool, error) {
			cancelCalls++
			if cancelCalls > 1 {
				return nil, false, ErrInvalidTransition
			}
			now := time.Now()
			return &Booking{
				ID:          id,
				EventID:     uuid.New(),
				Status:      StatusCancelled,
				CancelledAt: &now,
				Adults:      2,
			}, false, nil
		},
	}

	svc := newTestService(repo, &mockEventProvider{})

	booking, err := svc.CancelBooking(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, booking.Status)

	// A second cancel must fail and must not release spots again
	_, err = svc.CancelBooking(context.Background(), bookingID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 2, cancelCalls)
}

func TestMarkPaidConfirmsPendingFirst(t *testing.T) {
	bookingID := uuid.New()
	var transitions []BookingStatus

	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*Booking, error) {
			return &Booking{ID: id, Status: StatusPending}, nil
		},
		TransitionStatusFunc: func(ctx context.Context, id uuid.UUID, to BookingStatus, from ...BookingStatus) (*Booking, error) {
			transitions = append(transitions, to)
			return &Booking{ID: id, Status: to}, nil
		},
	}

	svc := newTestService(repo, &mockEventProvider{})
	booking, err := svc.MarkPaid(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, booking.Status)
	assert.Equal(t, []BookingStatus{StatusConfirmed, StatusPaid}, transitions)
}

func TestCompleteBookingRequiresPaid(t *testing.T) {
	repo := &mockRepository{
		TransitionStatusFunc: func(ctx context.Context, id uuid.UUID, to BookingStatus, from ...BookingStatus) (*Booking, error) {
			require.Equal(t, StatusCompleted, to)
			require.Equal(t, []BookingStatus{StatusPaid}, from)
			return nil, ErrInvalidTransition
		},
	}

	svc := newTestService(repo, &mockEventProvider{})
	_, err := svc.CompleteBooking(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
