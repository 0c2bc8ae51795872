package reviews

import (
	"context"
	"testing"

	"wildquest/internal/bookings"
	"wildquest/internal/events"
	"wildquest/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	CreateFunc              func(ctx context.Context, review *Review) error
	GetByIDFunc             func(ctx context.Context, id uuid.UUID) (*Review, error)
	GetApprovedByEventFunc  func(ctx context.Context, eventID uuid.UUID, page, limit int) (*PaginatedReviews, error)
	GetAllFunc              func(ctx context.Context, query *ReviewListQuery) (*PaginatedReviews, error)
	ModerateFunc            func(ctx context.Context, id, staffID uuid.UUID, to ModerationStatus) (*Review, error)
	GetEventRatingFunc      func(ctx context.Context, eventID uuid.UUID) (*EventRating, error)
	HasReviewForBookingFunc func(ctx context.Context, bookingID uuid.UUID) (bool, error)
}

func (m *mockRepository) Create(ctx context.Context, review *Review) error {
	return m.CreateFunc(ctx, review)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockRepository) GetApprovedByEvent(ctx context.Context, eventID uuid.UUID, page, limit int) (*PaginatedReviews, error) {
	return m.GetApprovedByEventFunc(ctx, eventID, page, limit)
}

func (m *mockRepository) GetAll(ctx context.Context, query *ReviewListQuery) (*PaginatedReviews, error) {
	return m.GetAllFunc(ctx, query)
}

func (m *mockRepository) Moderate(ctx context.Context, id, staffID uuid.UUID, to ModerationStatus) (*Review, error) {
	return m.ModerateFunc(ctx, id, staffID, to)
}

func (m *mockRepository) GetEventRating(ctx context.Context, eventID uuid.UUID) (*EventRating, error) {
	return m.GetEventRatingFunc(ctx, eventID)
}

func (m *mockRepository) HasReviewForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	return m.HasReviewForBookingFunc(ctx, bookingID)
}

type mockEventChecker struct {
	GetEventByIDFunc func(ctx context.Context, id uuid.UUID) (*events.EventResponse, error)
}

func (m *mockEventChecker) GetEventByID(ctx context.Context, id uuid.UUID) (*events.EventResponse, error) {
	return m.GetEventByIDFunc(ctx, id)
}

type mockBookingReader struct {
	GetBookingFunc func(ctx context.Context, id uuid.UUID) (*bookings.Booking, error)
}

func (m *mockBookingReader) GetBooking(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
	return m.GetBookingFunc(ctx, id)
}

func existingEvent(id uuid.UUID) *events.EventResponse {
	return &events.EventResponse{ID: id.String(), Title: "Amboseli Day Trip"}
}

func TestSubmitReviewWithoutBookingIsUnverified(t *testing.T) {
	var created *Review
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, review *Review) error {
			created = review
			return nil
		},
	}
	checker := &mockEventChecker{
		GetEventByIDFunc: func(ctx context.Context, id uuid.UUID) (*events.EventResponse, error) {
			return existingEvent(id), nil
		},
	}

	svc := NewService(repo, checker, &mockBookingReader{}, logger.New())
	review, err := svc.SubmitReview(context.Background(), &SubmitReviewRequest{
		EventID:       uuid.New().String(),
		CustomerName:  "Wanjiru Kamau",
		CustomerEmail: "Wanjiru@Example.com",
		Rating:        4,
		Comment:       "Great guide, long drive.",
	})
	require.NoError(t, err)
	assert.False(t, review.Verified)
	assert.Equal(t, ModerationPending, review.Status)
	assert.Equal(t, "wanjiru@example.com", created.CustomerEmail)
}

func TestSubmitReviewVerifiedByCompletedBooking(t *testing.T) {
	eventID := uuid.New()
	bookingID := uuid.New()

	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, review *Review) error { return nil },
		HasReviewForBookingFunc: func(ctx context.Context, id uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	checker := &mockEventChecker{
		GetEventByIDFunc: func(ctx context.Context, id uuid.UUID) (*events.EventResponse, error) {
			return existingEvent(id), nil
		},
	}
	reader := &mockBookingReader{
		GetBookingFunc: func(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
			return &bookings.Booking{
				ID:            id,
				EventID:       eventID,
				CustomerEmail: "wanjiru@example.com",
				Status:        bookings.StatusCompleted,
			}, nil
		},
	}

	bookingStr := bookingID.String()
	svc := NewService(repo, checker, reader, logger.New())
	review, err := svc.SubmitReview(context.Background(), &SubmitReviewRequest{
		EventID:       eventID.String(),
		BookingID:     &bookingStr,
		CustomerName:  "Wanjiru Kamau",
		CustomerEmail: "wanjiru@example.com",
		Rating:        5,
	})
	require.NoError(t, err)
	assert.True(t, review.Verified)
}

func TestSubmitReviewBookingEmailMismatch(t *testing.T) {
	eventID := uuid.New()
	repo := &mockRepository{}
	checker := &mockEventChecker{
		GetEventByIDFunc: func(ctx context.Context, id uuid.UUID) (*events.EventResponse, error) {
			return existingEvent(id), nil
		},
	}
	reader := &mockBookingReader{
		GetBookingFunc: func(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
			return &bookings.Booking{
				ID:            id,
				EventID:       eventID,
				CustomerEmail: "someoneelse@example.com",
				Status:        bookings.StatusCompleted,
			}, nil
		},
	}

	bookingStr := uuid.New().String()
	svc := NewService(repo, checker, reader, logger.New())
	_, err := svc.SubmitReview(context.Background(), &SubmitReviewRequest{
		EventID:       eventID.String(),
		BookingID:     &bookingStr,
		CustomerName:  "Wanjiru Kamau",
		CustomerEmail: "wanjiru@example.com",
		Rating:        5,
	})
	assert.ErrorIs(t, err, ErrBookingMismatch)
}

func TestSubmitReviewDuplicateBookingRejected(t *testing.T) {
	eventID := uuid.New()
	repo := &mockRepository{
		HasReviewForBookingFunc: func(ctx context.Context, id uuid.UUID) (bool, error) {
			return true, nil
		},
	}
	checker := &mockEventChecker{
		GetEventByIDFunc: func(ctx context.Context, id uuid.UUID) (*events.EventResponse, error) {
			return existingEvent(id), nil
		},
	}
	reader := &mockBookingReader{
		GetBookingFunc: func(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
			return &bookings.Booking{
				ID:            id,
				EventID:       eventID,
				CustomerEmail: "wanjiru@example.com",
				Status:        bookings.StatusCompleted,
			}, nil
		},
	}

	bookingStr := uuid.New().String()
	svc := NewService(repo, checker, reader, logger.New())
	_, err := svc.SubmitReview(context.Background(), &SubmitReviewRequest{
		EventID:       eventID.String(),
		BookingID:     &bookingStr,
		CustomerName:  "Wanjiru Kamau",
		CustomerEmail: "wanjiru@example.com",
		Rating:        3,
	})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestSubmitReviewPendingBookingIsUnverified(t *testing.T) {
	eventID := uuid.New()
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, review *Review) error { return nil },
		HasReviewForBookingFunc: func(ctx context.Context, id uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	checker := &mockEventChecker{
		GetEventByIDFunc: func(ctx context.Context, id uuid.UUID) (*events.EventResponse, error) {
			return existingEvent(id), nil
		},
	}
	reader := &mockBookingReader{
		GetBookingFunc: func(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
			return &bookings.Booking{
				ID:            id,
				EventID:       eventID,
				CustomerEmail: "wanjiru@example.com",
				Status:        bookings.StatusPending,
			}, nil
		},
	}

	bookingStr := uuid.New().String()
	svc := NewService(repo, checker, reader, logger.New())
	review, err := svc.SubmitReview(context.Background(), &SubmitReviewRequest{
		EventID:       eventID.String(),
		BookingID:     &bookingStr,
		CustomerName:  "Wanjiru Kamau",
		CustomerEmail: "wanjiru@example.com",
		Rating:        4,
	})
	require.NoError(t, err)
	assert.False(t, review.Verified)
}

func TestApproveReview(t *testing.T) {
	staffID := uuid.New()
	repo := &mockRepository{
		ModerateFunc: func(ctx context.Context, id, staff uuid.UUID, to ModerationStatus) (*Review, error) {
			require.Equal(t, ModerationApproved, to)
			require.Equal(t, staffID, staff)
			return &Review{ID: id, Status: to, ModeratedBy: &staff}, nil
		},
	}

	svc := NewService(repo, &mockEventChecker{}, &mockBookingReader{}, logger.New())
	review, err := svc.ApproveReview(context.Background(), uuid.New(), staffID)
	require.NoError(t, err)
	assert.Equal(t, ModerationApproved, review.Status)
}
