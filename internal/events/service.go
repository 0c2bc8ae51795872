package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wildquest/pkg/cache"

	"github.com/google/uuid"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrTierNotFound    = errors.New("pricing tier not found")
	ErrSlugTaken       = errors.New("event slug already in use")
	ErrInvalidStatus   = errors.New("illegal event status change")
	ErrHasBookings     = errors.New("event has bookings and cannot be deleted")
	ErrBookingClosed   = errors.New("event is not open for booking")
	ErrInvalidSchedule = errors.New("event end date must not precede start date")
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	CreateEvent(ctx context.Context, staffID uuid.UUID, req CreateEventRequest) (*EventResponse, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error)
	GetEventBySlug(ctx context.Context, slug string) (*EventResponse, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, staffID uuid.UUID, req UpdateEventRequest) (*EventResponse, error)
	PublishEvent(ctx context.Context, id uuid.UUID, staffID uuid.UUID) error
	SuspendEvent(ctx context.Context, id uuid.UUID, staffID uuid.UUID) error
	CancelEvent(ctx context.Context, id uuid.UUID, staffID uuid.UUID) error
	DeleteDraftEvent(ctx context.Context, id uuid.UUID) error
	GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error)
	GetUpcomingEvents(ctx context.Context, limit int) ([]EventResponse, error)

	AddPricingTier(ctx context.Context, eventID uuid.UUID, req CreatePricingTierRequest) (*PricingTier, error)
	GetEventTiers(ctx context.Context, eventID uuid.UUID) ([]PricingTier, error)
	RemoveTier(ctx context.Context, tierID uuid.UUID) error

	GetEventAnalytics(ctx context.Context, eventID uuid.UUID) (*EventAnalytics, error)
	GetGlobalAnalytics(ctx context.Context) (*GlobalAnalytics, error)

	// Model accessors for the booking path
	GetBookableEvent(ctx context.Context, id uuid.UUID) (*Event, error)
	GetTier(ctx context.Context, tierID uuid.UUID) (*PricingTier, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	cacheTTL     time.Duration
}

func NewService(repo Repository, cacheTTL time.Duration) Service {
	return &service{repo: repo, cacheTTL: cacheTTL}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateEvent(ctx context.Context, staffID uuid.UUID, req CreateEventRequest) (*EventResponse, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, ErrInvalidSchedule
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category ID: %w", err)
	}

	var locationID *uuid.UUID
	if req.LocationID != nil {
		id, err := uuid.Parse(*req.LocationID)
		if err != nil {
			return nil, fmt.Errorf("invalid location ID: %w", err)
		}
		locationID = &id
	}

	slug := req.Slug
	if slug == "" {
		slug = makeSlug(req.Title)
	}
	taken, err := s.repo.SlugExists(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return nil, ErrSlugTaken
	}

	minParticipants := req.MinParticipants
	if minParticipants == 0 {
		minParticipants = 1
	}
	durationDays := req.DurationDays
	if durationDays == 0 {
		durationDays = int(req.EndDate.Sub(req.StartDate).Hours()/24) + 1
	}

	whatsappBooking := true
	if req.WhatsAppBooking != nil {
		whatsappBooking = *req.WhatsAppBooking
	}
	onlinePayment := true
	if req.OnlinePayment != nil {
		onlinePayment = *req.OnlinePayment
	}

	event := &Event{
		Title:                   req.Title,
		Slug:                    slug,
		Description:             req.Description,
		ShortDescription:        req.ShortDescription,
		EventType:               req.EventType,
		CategoryID:              categoryID,
		LocationID:              locationID,
		StartDate:               req.StartDate,
		EndDate:                 req.EndDate,
		DurationDays:            durationDays,
		BookingDeadline:         req.BookingDeadline,
		MaxParticipants:         req.MaxParticipants,
		MinParticipants:         minParticipants,
		BasePrice:               req.BasePrice,
		ChildPrice:              req.ChildPrice,
		VIPPrice:                req.VIPPrice,
		GroupDiscountPercentage: req.GroupDiscountPercentage,
		Includes:                req.Includes,
		Excludes:                req.Excludes,
		Requirements:            req.Requirements,
		CancellationPolicy:      req.CancellationPolicy,
		WhatsAppBooking:         whatsappBooking,
		OnlinePayment:           onlinePayment,
		Status:                  EventStatusDraft,
		Featured:                req.Featured,
		ImageURL:                req.ImageURL,
		CreatedBy:               staffID,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.invalidateEventCache(ctx)
	response := event.ToResponse(time.Now())
	return &response, nil
}

func (s *service) GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	if s.cacheService != nil {
		var cached EventResponse
		if err := s.cacheService.Get(ctx, cache.KeyEvent(id.String()), &cached); err == nil {
			return &cached, nil
		}
	}

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	response := event.ToResponse(time.Now())
	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, cache.KeyEvent(id.String()), response, s.cacheTTL)
	}
	return &response, nil
}

func (s *service) GetEventBySlug(ctx context.Context, slug string) (*EventResponse, error) {
	event, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	response := event.ToResponse(time.Now())
	return &response, nil
}

func (s *service) UpdateEvent(ctx context.Context, id uuid.UUID, staffID uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if !current.Status.CanBeUpdated() {
		return nil, fmt.Errorf("%w: cannot update %s event", ErrInvalidStatus, current.Status)
	}

	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ShortDescription != nil {
		updates["short_description"] = *req.ShortDescription
	}
	if req.EventType != nil {
		updates["event_type"] = *req.EventType
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category ID: %w", err)
		}
		updates["category_id"] = categoryID
	}
	if req.LocationID != nil {
		locationID, err := uuid.Parse(*req.LocationID)
		if err != nil {
			return nil, fmt.Errorf("invalid location ID: %w", err)
		}
		updates["location_id"] = locationID
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if req.DurationDays != nil {
		updates["duration_days"] = *req.DurationDays
	}
	if req.BookingDeadline != nil {
		updates["booking_deadline"] = *req.BookingDeadline
	}
	if req.MaxParticipants != nil {
		if *req.MaxParticipants < current.CurrentBookings {
			return nil, fmt.Errorf("max participants cannot drop below current bookings (%d)", current.CurrentBookings)
		}
		updates["max_participants"] = *req.MaxParticipants
	}
	if req.MinParticipants != nil {
		updates["min_participants"] = *req.MinParticipants
	}
	if req.BasePrice != nil {
		updates["base_price"] = *req.BasePrice
	}
	if req.ChildPrice != nil {
		updates["child_price"] = *req.ChildPrice
	}
	if req.VIPPrice != nil {
		updates["vip_price"] = *req.VIPPrice
	}
	if req.GroupDiscountPercentage != nil {
		updates["group_discount_percentage"] = *req.GroupDiscountPercentage
	}
	if req.Includes != nil {
		updates["includes"] = *req.Includes
	}
	if req.Excludes != nil {
		updates["excludes"] = *req.Excludes
	}
	if req.Requirements != nil {
		updates["requirements"] = *req.Requirements
	}
	if req.CancellationPolicy != nil {
		updates["cancellation_policy"] = *req.CancellationPolicy
	}
	if req.WhatsAppBooking != nil {
		updates["whatsapp_booking"] = *req.WhatsAppBooking
	}
	if req.OnlinePayment != nil {
		updates["online_payment"] = *req.OnlinePayment
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	updates["updated_by"] = staffID
	updates["updated_at"] = time.Now()

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.invalidateEventCache(ctx)
	response := updated.ToResponse(time.Now())
	return &response, nil
}

func (s *service) PublishEvent(ctx context.Context, id uuid.UUID, staffID uuid.UUID) error {
	return s.changeStatus(ctx, id, staffID, EventStatusPublished, EventStatusDraft, EventStatusSuspended)
}

func (s *service) SuspendEvent(ctx context.Context, id uuid.UUID, staffID uuid.UUID) error {
	return s.changeStatus(ctx, id, staffID, EventStatusSuspended, EventStatusPublished)
}

func (s *service) CancelEvent(ctx context.Context, id uuid.UUID, staffID uuid.UUID) error {
	return s.changeStatus(ctx, id, staffID, EventStatusCancelled, EventStatusDraft, EventStatusPublished, EventStatusSuspended)
}

func (s *service) changeStatus(ctx context.Context, id uuid.UUID, staffID uuid.UUID, to EventStatus, allowedFrom ...EventStatus) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to get event: %w", err)
	}

	legal := false
	for _, from := range allowedFrom {
		if current.Status == from {
			legal = true
			break
		}
	}
	if !legal {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatus, current.Status, to)
	}

	if err := s.repo.UpdateStatus(ctx, id, to, staffID); err != nil {
		return fmt.Errorf("failed to update event status: %w", err)
	}

	s.invalidateEventCache(ctx)
	return nil
}

func (s *service) DeleteDraftEvent(ctx context.Context, id uuid.UUID) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to get event: %w", err)
	}

	if !current.Status.CanBeDeleted() {
		return fmt.Errorf("%w: only draft events can be deleted, cancel instead", ErrInvalidStatus)
	}
	if current.CurrentBookings > 0 {
		return ErrHasBookings
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.invalidateEventCache(ctx)
	return nil
}

func (s *service) GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	eventsList, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	now := time.Now()
	responses := make([]EventResponse, len(eventsList))
	for i := range eventsList {
		responses[i] = eventsList[i].ToResponse(now)
	}

	totalPages := int((totalCount + int64(query.Limit) - 1) / int64(query.Limit))

	return &PaginatedEvents{
		Events:     responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) GetUpcomingEvents(ctx context.Context, limit int) ([]EventResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	if s.cacheService != nil {
		var cached []EventResponse
		if err := s.cacheService.Get(ctx, cache.KeyUpcomingEvents(limit), &cached); err == nil {
			return cached, nil
		}
	}

	eventsList, err := s.repo.GetUpcoming(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming events: %w", err)
	}

	now := time.Now()
	responses := make([]EventResponse, len(eventsList))
	for i := range eventsList {
		responses[i] = eventsList[i].ToResponse(now)
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, cache.KeyUpcomingEvents(limit), responses, s.cacheTTL)
	}
	return responses, nil
}

func (s *service) AddPricingTier(ctx context.Context, eventID uuid.UUID, req CreatePricingTierRequest) (*PricingTier, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if req.MaxCapacity > event.MaxParticipants {
		return nil, fmt.Errorf("tier capacity %d exceeds event capacity %d", req.MaxCapacity, event.MaxParticipants)
	}

	tier := &PricingTier{
		EventID:     eventID,
		TierType:    TierType(req.TierType),
		Name:        req.Name,
		Price:       req.Price,
		MaxCapacity: req.MaxCapacity,
		IsActive:    true,
	}
	if err := s.repo.CreateTier(ctx, tier); err != nil {
		return nil, fmt.Errorf("failed to create pricing tier: %w", err)
	}

	s.invalidateEventCache(ctx)
	return tier, nil
}

func (s *service) GetEventTiers(ctx context.Context, eventID uuid.UUID) ([]PricingTier, error) {
	return s.repo.GetTiersByEvent(ctx, eventID)
}

func (s *service) RemoveTier(ctx context.Context, tierID uuid.UUID) error {
	if err := s.repo.DeactivateTier(ctx, tierID); err != nil {
		if IsNotFound(err) {
			return ErrTierNotFound
		}
		return fmt.Errorf("failed to deactivate tier: %w", err)
	}
	s.invalidateEventCache(ctx)
	return nil
}

func (s *service) GetEventAnalytics(ctx context.Context, eventID uuid.UUID) (*EventAnalytics, error) {
	analytics, err := s.repo.GetEventAnalytics(ctx, eventID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event analytics: %w", err)
	}
	return analytics, nil
}

func (s *service) GetGlobalAnalytics(ctx context.Context) (*GlobalAnalytics, error) {
	analytics, err := s.repo.GetGlobalAnalytics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get global analytics: %w", err)
	}
	return analytics, nil
}

func (s *service) GetBookableEvent(ctx context.Context, id uuid.UUID) (*Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if !event.IsBookingOpen(time.Now()) {
		return nil, ErrBookingClosed
	}
	return event, nil
}

func (s *service) GetTier(ctx context.Context, tierID uuid.UUID) (*PricingTier, error) {
	tier, err := s.repo.GetTierByID(ctx, tierID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrTierNotFound
		}
		return nil, fmt.Errorf("failed to get pricing tier: %w", err)
	}
	return tier, nil
}

func (s *service) invalidateEventCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, cache.PatternEvents())
}

func makeSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.ReplaceAll(slug, " ", "-")
	var b strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
