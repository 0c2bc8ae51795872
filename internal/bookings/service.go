package bookings

import (
	"context"
	"errors"
	"strings"
	"time"

	"wildquest/internal/events"
	"wildquest/internal/notifications"
	"wildquest/internal/pricing"
	"wildquest/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrTierNotFound    = errors.New("pricing tier not found")
	ErrBookingClosed   = errors.New("event is not open for booking")
)

// EventProvider is the slice of the events service that bookings needs.
type EventProvider interface {
	GetBookableEvent(ctx context.Context, id uuid.UUID) (*events.Event, error)
	GetTier(ctx context.Context, tierID uuid.UUID) (*events.PricingTier, error)
}

// Service implements the booking lifecycle: create with capacity
// reservation and a price quote, then move through
// pending -> confirmed -> paid -> completed, or cancel with release.
type Service interface {
	CreateBooking(ctx context.Context, req *CreateBookingRequest) (*Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListBookings(ctx context.Context, query *BookingListQuery) (*PaginatedBookings, error)
	ConfirmBooking(ctx context.Context, id uuid.UUID) (*Booking, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (*Booking, error)
	CompleteBooking(ctx context.Context, id uuid.UUID) (*Booking, error)
	CancelBooking(ctx context.Context, id uuid.UUID) (*Booking, error)
}

type service struct {
	repo       Repository
	eventsSvc  EventProvider
	calculator pricing.Calculator
	notifier   *notifications.Service
	log        *logger.Logger
}

func NewService(repo Repository, eventsSvc EventProvider, calculator pricing.Calculator, notifier *notifications.Service, log *logger.Logger) Service {
	return &service{
		repo:       repo,
		eventsSvc:  eventsSvc,
		calculator: calculator,
		notifier:   notifier,
		log:        log,
	}
}

// CreateBooking validates the event and tier, computes the price and
// persists booking plus capacity reservation transactionally. The
// confirmation notification goes out only after the commit.
func (s *service) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*Booking, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	event, err := s.eventsSvc.GetBookableEvent(ctx, eventID)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			return nil, ErrEventNotFound
		case errors.Is(err, events.ErrBookingClosed):
			return nil, ErrBookingClosed
		default:
			return nil, err
		}
	}

	var tierID *uuid.UUID
	var tierRates *pricing.TierRates
	if req.TierID != nil && *req.TierID != "" {
		id, err := uuid.Parse(*req.TierID)
		if err != nil {
			return nil, ErrTierNotFound
		}
		tier, err := s.eventsSvc.GetTier(ctx, id)
		if err != nil {
			if errors.Is(err, events.ErrTierNotFound) {
				return nil, ErrTierNotFound
			}
			return nil, err
		}
		if tier.EventID != event.ID || !tier.IsActive {
			return nil, ErrTierNotFound
		}
		tierID = &tier.ID
		tierRates = &pricing.TierRates{
			TierID:  tier.ID,
			EventID: tier.EventID,
			Price:   tier.Price,
		}
	}

	quote, err := s.calculator.Quote(pricing.EventRates{
		EventID:                 event.ID,
		BasePrice:               event.BasePrice,
		ChildPrice:              event.ChildPrice,
		GroupDiscountPercentage: event.GroupDiscountPercentage,
	}, tierRates, req.Adults, req.Children)
	if err != nil {
		return nil, err
	}

	method := BookingMethod(req.Method)
	if method == "" {
		method = MethodOnline
	}

	booking := &Booking{
		EventID: event.ID,
		TierID:  tierID,

		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerEmail:   strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		CustomerAddress: strings.TrimSpace(req.CustomerAddress),

		EmergencyContactName:  strings.TrimSpace(req.EmergencyContactName),
		EmergencyContactPhone: strings.TrimSpace(req.EmergencyContactPhone),

		Adults:   req.Adults,
		Children: req.Children,

		BaseAmount:     quote.Base,
		DiscountAmount: quote.Discount,
		TaxAmount:      quote.Tax,
		TotalAmount:    quote.Total,

		Method: method,
		Status: StatusPending,

		SpecialRequests:     strings.TrimSpace(req.SpecialRequests),
		DietaryRequirements: strings.TrimSpace(req.DietaryRequirements),

		BookedAt: time.Now(),

		Participants: buildParticipants(req.Participants),
	}

	if err := s.repo.CreateWithReservation(ctx, booking); err != nil {
		return nil, err
	}

	s.log.LogBookingCreated(ctx, booking.ID.String(), event.ID.String(), booking.TotalParticipants(), booking.TotalAmount)

	if err := s.notifier.PublishBookingConfirmed(ctx, booking.ID, event.ID,
		booking.CustomerEmail, booking.CustomerName, event.Title,
		booking.TotalParticipants(), booking.TotalAmount); err != nil {
		s.log.Warn("booking created but confirmation notification failed",
			"booking_id", booking.ID, "error", err)
	}

	return booking, nil
}

func buildParticipants(inputs []ParticipantInput) []BookingParticipant {
	var participants []BookingParticipant
	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			continue
		}
		pType := ParticipantType(in.Type)
		if pType == "" {
			pType = ParticipantAdult
		}
		participants = append(participants, BookingParticipant{
			Name:           name,
			Age:            in.Age,
			Type:           pType,
			IDNumber:       strings.TrimSpace(in.IDNumber),
			PassportNumber: strings.TrimSpace(in.PassportNumber),
			MedicalNotes:   strings.TrimSpace(in.MedicalNotes),
		})
	}
	return participants
}

func (s *service) GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *service) ListBookings(ctx context.Context, query *BookingListQuery) (*PaginatedBookings, error) {
	return s.repo.GetAll(ctx, query)
}

func (s *service) ConfirmBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, err := s.repo.TransitionStatus(ctx, id, StatusConfirmed, StatusPending)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// MarkPaid moves a booking into the paid state. A still-pending booking
// is confirmed implicitly first so a payment recorded before staff
// review does not get stuck.
func (s *service) MarkPaid(ctx context.Context, id uuid.UUID) (*Booking, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if current.Status == StatusPending {
		if _, err := s.repo.TransitionStatus(ctx, id, StatusConfirmed, StatusPending); err != nil {
			return nil, err
		}
	}

	booking, err := s.repo.TransitionStatus(ctx, id, StatusPaid, StatusConfirmed)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if err := s.notifier.PublishPaymentCompleted(ctx, booking.ID,
		booking.CustomerEmail, booking.CustomerName, booking.TotalAmount); err != nil {
		s.log.Warn("payment notification failed", "booking_id", booking.ID, "error", err)
	}

	return booking, nil
}

func (s *service) CompleteBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, err := s.repo.TransitionStatus(ctx, id, StatusCompleted, StatusPaid)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// CancelBooking cancels a pending or confirmed booking and releases its
// spots. A cancel of anything else, including a cancelled booking, is
// ErrInvalidTransition.
func (s *service) CancelBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, inconsistent, err := s.repo.CancelWithRelease(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if inconsistent {
		s.log.LogCapacityInconsistency(ctx, booking.EventID.String(), "current_bookings", booking.TotalParticipants())
	}

	s.log.LogBookingCancelled(ctx, booking.ID.String(), booking.EventID.String(), booking.TotalParticipants())

	eventTitle := ""
	if booking.Event != nil {
		eventTitle = booking.Event.Title
	}
	if err := s.notifier.PublishBookingCancelled(ctx, booking.ID, booking.EventID,
		booking.CustomerEmail, booking.CustomerName, eventTitle); err != nil {
		s.log.Warn("cancellation notification failed", "booking_id", booking.ID, "error", err)
	}

	return booking, nil
}
