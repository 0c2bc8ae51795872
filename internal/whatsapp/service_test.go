package whatsapp

import (
	"context"
	"testing"

	"wildquest/internal/bookings"
	"wildquest/internal/events"
	"wildquest/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockRepository struct {
	CreateFunc           func(ctx context.Context, request *Request) error
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*Request, error)
	GetAllFunc           func(ctx context.Context, query *RequestListQuery) (*PaginatedRequests, error)
	UpdateFunc           func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	GetForProcessingFunc func(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Request, error)
}

func (m *mockRepository) Create(ctx context.Context, request *Request) error {
	return m.CreateFunc(ctx, request)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Request, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockRepository) GetAll(ctx context.Context, query *RequestListQuery) (*PaginatedRequests, error) {
	return m.GetAllFunc(ctx, query)
}

func (m *mockRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return m.UpdateFunc(ctx, id, updates)
}

func (m *mockRepository) GetForProcessing(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Request, error) {
	return m.GetForProcessingFunc(ctx, tx, id)
}

func (m *mockRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type mockEventProvider struct {
	GetBookableEventFunc func(ctx context.Context, id uuid.UUID) (*events.Event, error)
}

func (m *mockEventProvider) GetBookableEvent(ctx context.Context, id uuid.UUID) (*events.Event, error) {
	return m.GetBookableEventFunc(ctx, id)
}

type mockBookingCreator struct {
	CreateBookingFunc func(ctx context.Context, req *bookings.CreateBookingRequest) (*bookings.Booking, error)
}

func (m *mockBookingCreator) CreateBooking(ctx context.Context, req *bookings.CreateBookingRequest) (*bookings.Booking, error) {
	return m.CreateBookingFunc(ctx, req)
}

func whatsappEvent(id uuid.UUID) *events.Event {
	return &events.Event{
		ID:              id,
		Title:           "Diani Beach Getaway",
		WhatsAppBooking: true,
		Status:          events.EventStatusPublished,
	}
}

func newTestService(repo Repository, provider EventProvider, creator BookingCreator) Service {
	return NewService(repo, provider, creator, nil, "bookings@wildquest.co.ke", "+254700000000", logger.New())
}

func TestCaptureRequestBuildsHandoffLink(t *testing.T) {
	eventID := uuid.New()
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, request *Request) error {
			request.ID = uuid.New()
			return nil
		},
	}
	provider := &mockEventProvider{
		GetBookableEventFunc: func(ctx context.Context, id uuid.UUID) (*events.Event, error) {
			return whatsappEvent(id), nil
		},
	}

	svc := newTestService(repo, provider, nil)
	result, err := svc.CaptureRequest(context.Background(), &CaptureRequestInput{
		EventID:       eventID.String(),
		CustomerName:  "Juma Hassan",
		CustomerPhone: "+254711222333",
		Adults:        2,
		Children:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, RequestNew, result.Request.Status)
	assert.Contains(t, result.WhatsAppLink, "https://wa.me/254700000000?text=")
	assert.Contains(t, result.WhatsAppLink, "Juma+Hassan")
}

func TestCaptureRequestChannelDisabled(t *testing.T) {
	provider := &mockEventProvider{
		GetBookableEventFunc: func(ctx context.Context, id uuid.UUID) (*events.Event, error) {
			event := whatsappEvent(id)
			event.WhatsAppBooking = false
			return event, nil
		},
	}

	svc := newTestService(&mockRepository{}, provider, nil)
	_, err := svc.CaptureRequest(context.Background(), &CaptureRequestInput{
		EventID:       uuid.New().String(),
		CustomerName:  "Juma Hassan",
		CustomerPhone: "+254711222333",
	})
	assert.ErrorIs(t, err, ErrChannelUnavailable)
}

func TestCaptureRequestDefaultsToOneAdult(t *testing.T) {
	var created *Request
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, request *Request) error {
			created = request
			return nil
		},
	}
	provider := &mockEventProvider{
		GetBookableEventFunc: func(ctx context.Context, id uuid.UUID) (*events.Event, error) {
			return whatsappEvent(id), nil
		},
	}

	svc := newTestService(repo, provider, nil)
	_, err := svc.CaptureRequest(context.Background(), &CaptureRequestInput{
		EventID:       uuid.New().String(),
		CustomerName:  "Juma Hassan",
		CustomerPhone: "+254711222333",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.Adults)
}

func TestConvertRequestCreatesWhatsAppBooking(t *testing.T) {
	requestID := uuid.New()
	eventID := uuid.New()
	staffID := uuid.New()
	var bookingReq *bookings.CreateBookingRequest
	var requestUpdates map[string]interface{}

	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*Request, error) {
			return &Request{
				ID:            id,
				EventID:       eventID,
				CustomerName:  "Juma Hassan",
				CustomerPhone: "+254711222333",
				Adults:        3,
				Children:      2,
				Status:        RequestContacted,
			}, nil
		},
		UpdateFunc: func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
			requestUpdates = updates
			return nil
		},
	}
	creator := &mockBookingCreator{
		CreateBookingFunc: func(ctx context.Context, req *bookings.CreateBookingRequest) (*bookings.Booking, error) {
			bookingReq = req
			return &bookings.Booking{ID: uuid.New(), Status: bookings.StatusPending}, nil
		},
	}

	svc := newTestService(repo, &mockEventProvider{}, creator)
	booking, err := svc.ConvertRequest(context.Background(), requestID, staffID, &ConvertRequestInput{
		CustomerEmail: "juma@example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, bookingReq)

	assert.Equal(t, eventID.String(), bookingReq.EventID)
	assert.Equal(t, string(bookings.MethodWhatsApp), bookingReq.Method)
	assert.Equal(t, 3, bookingReq.Adults)
	assert.Equal(t, 2, bookingReq.Children)
	assert.Equal(t, RequestConverted, requestUpdates["status"])
	assert.Equal(t, booking.ID, requestUpdates["booking_id"])
}

func TestConvertRequestAlreadyClosed(t *testing.T) {
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*Request, error) {
			return &Request{ID: id, Status: RequestConverted}, nil
		},
	}

	svc := newTestService(repo, &mockEventProvider{}, &mockBookingCreator{})
	_, err := svc.ConvertRequest(context.Background(), uuid.New(), uuid.New(), &ConvertRequestInput{
		CustomerEmail: "juma@example.com",
	})
	assert.ErrorIs(t, err, ErrRequestClosed)
}

func TestMarkContactedFromNewOnly(t *testing.T) {
	repo := &mockRepository{
		GetForProcessingFunc: func(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Request, error) {
			return &Request{ID: id, Status: RequestContacted}, nil
		},
	}

	svc := newTestService(repo, &mockEventProvider{}, nil)
	_, err := svc.MarkContacted(context.Background(), uuid.New(), uuid.New(), "called twice")
	assert.ErrorIs(t, err, ErrRequestClosed)
}
