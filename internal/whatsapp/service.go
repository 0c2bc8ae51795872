package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"wildquest/internal/bookings"
	"wildquest/internal/events"
	"wildquest/internal/notifications"
	"wildquest/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRequestNotFound    = errors.New("whatsapp request not found")
	ErrRequestClosed      = errors.New("whatsapp request is no longer open")
	ErrEventNotFound      = errors.New("event not found")
	ErrChannelUnavailable = errors.New("event does not accept WhatsApp bookings")
)

// EventProvider is the slice of the events service the intake needs.
type EventProvider interface {
	GetBookableEvent(ctx context.Context, id uuid.UUID) (*events.Event, error)
}

// BookingCreator converts a vetted request into a real booking.
type BookingCreator interface {
	CreateBooking(ctx context.Context, req *bookings.CreateBookingRequest) (*bookings.Booking, error)
}

// Service runs the WhatsApp intake funnel: customers leave their
// details, staff follow up over WhatsApp and either convert the request
// into a booking or close it.
type Service interface {
	CaptureRequest(ctx context.Context, input *CaptureRequestInput) (*CaptureResult, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*Request, error)
	ListRequests(ctx context.Context, query *RequestListQuery) (*PaginatedRequests, error)
	MarkContacted(ctx context.Context, id, staffID uuid.UUID, notes string) (*Request, error)
	CloseRequest(ctx context.Context, id, staffID uuid.UUID, notes string) (*Request, error)
	ConvertRequest(ctx context.Context, id, staffID uuid.UUID, input *ConvertRequestInput) (*bookings.Booking, error)
}

type service struct {
	repo        Repository
	eventsSvc   EventProvider
	bookingSvc  BookingCreator
	notifier    *notifications.Service
	staffInbox  string
	log         *logger.Logger
	agencyPhone string
}

func NewService(repo Repository, eventsSvc EventProvider, bookingSvc BookingCreator, notifier *notifications.Service, staffInbox, agencyPhone string, log *logger.Logger) Service {
	return &service{
		repo:        repo,
		eventsSvc:   eventsSvc,
		bookingSvc:  bookingSvc,
		notifier:    notifier,
		staffInbox:  staffInbox,
		agencyPhone: agencyPhone,
		log:         log,
	}
}

// CaptureRequest stores the intake and returns the wa.me handoff link
// the customer opens to start the conversation.
func (s *service) CaptureRequest(ctx context.Context, input *CaptureRequestInput) (*CaptureResult, error) {
	eventID, err := uuid.Parse(input.EventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	event, err := s.eventsSvc.GetBookableEvent(ctx, eventID)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			return nil, ErrEventNotFound
		case errors.Is(err, events.ErrBookingClosed):
			return nil, ErrChannelUnavailable
		default:
			return nil, err
		}
	}
	if !event.WhatsAppBooking {
		return nil, ErrChannelUnavailable
	}

	adults := input.Adults
	if adults < 1 {
		adults = 1
	}

	request := &Request{
		EventID:       event.ID,
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		CustomerEmail: strings.ToLower(strings.TrimSpace(input.CustomerEmail)),
		Adults:        adults,
		Children:      input.Children,
		Message:       strings.TrimSpace(input.Message),
		Status:        RequestNew,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.log.Info("whatsapp request captured",
		"request_id", request.ID,
		"event_id", event.ID,
		"customer_phone", request.CustomerPhone,
	)

	if err := s.notifier.PublishWhatsAppRequestReceived(ctx, event.ID,
		s.staffInbox, request.CustomerName, request.CustomerPhone, event.Title); err != nil {
		s.log.Warn("staff notification for whatsapp request failed", "request_id", request.ID, "error", err)
	}

	return &CaptureResult{
		Request:      request,
		WhatsAppLink: s.buildHandoffLink(event, request),
	}, nil
}

func (s *service) buildHandoffLink(event *events.Event, request *Request) string {
	text := fmt.Sprintf("Hello WildQuest! I'm %s and I'd like to book %s for %d adult(s)",
		request.CustomerName, event.Title, request.Adults)
	if request.Children > 0 {
		text += fmt.Sprintf(" and %d child(ren)", request.Children)
	}
	text += fmt.Sprintf(". Reference: %s", request.ID)

	phone := strings.TrimPrefix(s.agencyPhone, "+")
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(text))
}

func (s *service) GetRequest(ctx context.Context, id uuid.UUID) (*Request, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

func (s *service) ListRequests(ctx context.Context, query *RequestListQuery) (*PaginatedRequests, error) {
	return s.repo.GetAll(ctx, query)
}

func (s *service) MarkContacted(ctx context.Context, id, staffID uuid.UUID, notes string) (*Request, error) {
	return s.process(ctx, id, staffID, RequestContacted, notes, func(status RequestStatus) bool {
		return status == RequestNew
	})
}

func (s *service) CloseRequest(ctx context.Context, id, staffID uuid.UUID, notes string) (*Request, error) {
	return s.process(ctx, id, staffID, RequestClosed, notes, func(status RequestStatus) bool {
		return status.IsOpen()
	})
}

func (s *service) process(ctx context.Context, id, staffID uuid.UUID, to RequestStatus, notes string, allowed func(RequestStatus) bool) (*Request, error) {
	var request *Request
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		locked, err := s.repo.GetForProcessing(ctx, tx, id)
		if err != nil {
			return err
		}
		if !allowed(locked.Status) {
			return ErrRequestClosed
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":       to,
			"processed_by": staffID,
			"processed_at": now,
		}
		if notes != "" {
			updates["staff_notes"] = notes
		}
		if err := tx.Model(locked).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update whatsapp request: %w", err)
		}

		locked.Status = to
		locked.ProcessedBy = &staffID
		locked.ProcessedAt = &now
		if notes != "" {
			locked.StaffNotes = notes
		}
		request = locked
		return nil
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

// ConvertRequest turns an open request into a booking with the
// whatsapp method, then marks the request converted. The booking runs
// through the normal capacity and pricing path.
func (s *service) ConvertRequest(ctx context.Context, id, staffID uuid.UUID, input *ConvertRequestInput) (*bookings.Booking, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if !request.Status.IsOpen() {
		return nil, ErrRequestClosed
	}

	adults := request.Adults
	if input.Adults != nil {
		adults = *input.Adults
	}
	children := request.Children
	if input.Children != nil {
		children = *input.Children
	}

	booking, err := s.bookingSvc.CreateBooking(ctx, &bookings.CreateBookingRequest{
		EventID:         request.EventID.String(),
		TierID:          input.TierID,
		CustomerName:    request.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   request.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		Adults:          adults,
		Children:        children,
		Method:          string(bookings.MethodWhatsApp),
		SpecialRequests: strings.TrimSpace(input.SpecialRequests),
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.repo.Update(ctx, id, map[string]interface{}{
		"status":       RequestConverted,
		"processed_by": staffID,
		"processed_at": now,
		"booking_id":   booking.ID,
	}); err != nil {
		// the booking exists; the stale request status is only a
		// back-office annoyance, so log and return the booking
		s.log.Warn("booking created but request not marked converted",
			"request_id", id, "booking_id", booking.ID, "error", err)
	}

	s.log.Info("whatsapp request converted",
		"request_id", id,
		"booking_id", booking.ID,
		"staff_id", staffID,
	)
	return booking, nil
}
