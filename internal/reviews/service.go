package reviews

import (
	"context"
	"errors"
	"strings"

	"wildquest/internal/bookings"
	"wildquest/internal/events"
	"wildquest/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrBookingMismatch = errors.New("booking does not match this event and email")
	ErrAlreadyReviewed = errors.New("booking has already been reviewed")
)

// EventChecker verifies the reviewed event exists.
type EventChecker interface {
	GetEventByID(ctx context.Context, id uuid.UUID) (*events.EventResponse, error)
}

// BookingReader loads the booking a reviewer claims to have.
type BookingReader interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*bookings.Booking, error)
}

// Service handles customer reviews with staff moderation. Reviews
// referencing a completed booking with a matching email are marked
// verified; everything waits for approval before going public.
type Service interface {
	SubmitReview(ctx context.Context, req *SubmitReviewRequest) (*Review, error)
	GetEventReviews(ctx context.Context, eventID uuid.UUID, page, limit int) (*PaginatedReviews, error)
	GetEventRating(ctx context.Context, eventID uuid.UUID) (*EventRating, error)
	ListReviews(ctx context.Context, query *ReviewListQuery) (*PaginatedReviews, error)
	ApproveReview(ctx context.Context, id, staffID uuid.UUID) (*Review, error)
	RejectReview(ctx context.Context, id, staffID uuid.UUID) (*Review, error)
}

type service struct {
	repo       Repository
	eventsSvc  EventChecker
	bookingSvc BookingReader
	log        *logger.Logger
}

func NewService(repo Repository, eventsSvc EventChecker, bookingSvc BookingReader, log *logger.Logger) Service {
	return &service{repo: repo, eventsSvc: eventsSvc, bookingSvc: bookingSvc, log: log}
}

func (s *service) SubmitReview(ctx context.Context, req *SubmitReviewRequest) (*Review, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	if _, err := s.eventsSvc.GetEventByID(ctx, eventID); err != nil {
		if errors.Is(err, events.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.CustomerEmail))

	review := &Review{
		EventID:       eventID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: email,
		Rating:        req.Rating,
		Title:         strings.TrimSpace(req.Title),
		Comment:       strings.TrimSpace(req.Comment),
		Status:        ModerationPending,
	}

	if req.BookingID != nil && *req.BookingID != "" {
		bookingID, err := uuid.Parse(*req.BookingID)
		if err != nil {
			return nil, ErrBookingMismatch
		}
		verified, err := s.verifyBooking(ctx, bookingID, eventID, email)
		if err != nil {
			return nil, err
		}
		review.BookingID = &bookingID
		review.Verified = verified
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.log.Info("review submitted",
		"review_id", review.ID,
		"event_id", eventID,
		"rating", review.Rating,
		"verified", review.Verified,
	)
	return review, nil
}

// verifyBooking checks the claimed booking belongs to this event and
// reviewer, was actually taken (paid or completed) and has no review yet.
func (s *service) verifyBooking(ctx context.Context, bookingID, eventID uuid.UUID, email string) (bool, error) {
	booking, err := s.bookingSvc.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			return false, ErrBookingMismatch
		}
		return false, err
	}

	if booking.EventID != eventID || booking.CustomerEmail != email {
		return false, ErrBookingMismatch
	}

	reviewed, err := s.repo.HasReviewForBooking(ctx, bookingID)
	if err != nil {
		return false, err
	}
	if reviewed {
		return false, ErrAlreadyReviewed
	}

	switch booking.Status {
	case bookings.StatusPaid, bookings.StatusCompleted:
		return true, nil
	default:
		return false, nil
	}
}

func (s *service) GetEventReviews(ctx context.Context, eventID uuid.UUID, page, limit int) (*PaginatedReviews, error) {
	return s.repo.GetApprovedByEvent(ctx, eventID, page, limit)
}

func (s *service) GetEventRating(ctx context.Context, eventID uuid.UUID) (*EventRating, error) {
	return s.repo.GetEventRating(ctx, eventID)
}

func (s *service) ListReviews(ctx context.Context, query *ReviewListQuery) (*PaginatedReviews, error) {
	return s.repo.GetAll(ctx, query)
}

func (s *service) ApproveReview(ctx context.Context, id, staffID uuid.UUID) (*Review, error) {
	return s.moderate(ctx, id, staffID, ModerationApproved)
}

func (s *service) RejectReview(ctx context.Context, id, staffID uuid.UUID) (*Review, error) {
	return s.moderate(ctx, id, staffID, ModerationRejected)
}

func (s *service) moderate(ctx context.Context, id, staffID uuid.UUID, to ModerationStatus) (*Review, error) {
	review, err := s.repo.Moderate(ctx, id, staffID, to)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	s.log.Info("review moderated", "review_id", id, "status", to, "staff_id", staffID)
	return review, nil
}
