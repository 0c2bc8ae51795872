package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking statuses that count toward revenue. The bookings table is queried
// by name to keep the dependency pointing bookings -> events, not back.
var revenueStatuses = []string{"confirmed", "paid", "completed"}

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Event, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status EventStatus, updatedBy uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetAll(ctx context.Context, query EventListQuery) ([]Event, int64, error)
	GetUpcoming(ctx context.Context, limit int) ([]Event, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	// Pricing tiers
	CreateTier(ctx context.Context, tier *PricingTier) error
	GetTierByID(ctx context.Context, id uuid.UUID) (*PricingTier, error)
	GetTiersByEvent(ctx context.Context, eventID uuid.UUID) ([]PricingTier, error)
	DeactivateTier(ctx context.Context, id uuid.UUID) error

	// Analytics
	GetEventAnalytics(ctx context.Context, eventID uuid.UUID) (*EventAnalytics, error)
	GetGlobalAnalytics(ctx context.Context) (*GlobalAnalytics, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Location").
		Preload("Tiers", "is_active = ?", true).
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Location").
		Preload("Tiers", "is_active = ?", true).
		Where("slug = ?", slug).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Event, error) {
	var event Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&event).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status EventStatus, updatedBy uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&PricingTier{}).Error; err != nil {
			return fmt.Errorf("failed to delete pricing tiers: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&Event{}).Error; err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		return nil
	})
}

func (r *repository) GetAll(ctx context.Context, query EventListQuery) ([]Event, int64, error) {
	var events []Event
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Event{})

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(short_description) LIKE ?",
			searchTerm, searchTerm, searchTerm)
	}
	if query.Category != "" {
		db = db.Where("category_id = ?", query.Category)
	}
	if query.Location != "" {
		db = db.Where("location_id = ?", query.Location)
	}
	if query.EventType != "" {
		db = db.Where("event_type = ?", query.EventType)
	}
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.Featured != nil {
		db = db.Where("featured = ?", *query.Featured)
	}
	if query.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", query.DateFrom); err == nil {
			db = db.Where("start_date >= ?", dateFrom)
		}
	}
	if query.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", query.DateTo); err == nil {
			// Include the entire day
			db = db.Where("start_date < ?", dateTo.Add(24*time.Hour))
		}
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}
	offset := (query.Page - 1) * query.Limit

	err := db.Preload("Category").
		Preload("Location").
		Preload("Tiers", "is_active = ?", true).
		Order("start_date ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&events).Error

	return events, totalCount, err
}

func (r *repository) GetUpcoming(ctx context.Context, limit int) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Location").
		Where("start_date > ? AND status = ?", time.Now(), EventStatusPublished).
		Order("start_date ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Event{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateTier(ctx context.Context, tier *PricingTier) error {
	return r.db.WithContext(ctx).Create(tier).Error
}

func (r *repository) GetTierByID(ctx context.Context, id uuid.UUID) (*PricingTier, error) {
	var tier PricingTier
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tier).Error
	if err != nil {
		return nil, err
	}
	return &tier, nil
}

func (r *repository) GetTiersByEvent(ctx context.Context, eventID uuid.UUID) ([]PricingTier, error) {
	var tiers []PricingTier
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND is_active = ?", eventID, true).
		Order("price ASC").
		Find(&tiers).Error
	return tiers, err
}

func (r *repository) DeactivateTier(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&PricingTier{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) GetEventAnalytics(ctx context.Context, eventID uuid.UUID) (*EventAnalytics, error) {
	var event Event
	if err := r.db.WithContext(ctx).Where("id = ?", eventID).First(&event).Error; err != nil {
		return nil, err
	}

	analytics := &EventAnalytics{
		EventID:    event.ID.String(),
		EventTitle: event.Title,
	}

	type aggregateResult struct {
		TotalBookings     int     `json:"total_bookings"`
		TotalParticipants int     `json:"total_participants"`
		TotalRevenue      float64 `json:"total_revenue"`
	}
	var agg aggregateResult
	err := r.db.WithContext(ctx).Table("bookings").
		Select("COUNT(*) as total_bookings, COALESCE(SUM(adults + children), 0) as total_participants, COALESCE(SUM(total_amount), 0) as total_revenue").
		Where("event_id = ? AND status IN ?", eventID, revenueStatuses).
		Scan(&agg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bookings: %w", err)
	}
	analytics.TotalBookings = agg.TotalBookings
	analytics.TotalParticipants = agg.TotalParticipants
	analytics.TotalRevenue = agg.TotalRevenue

	if event.MaxParticipants > 0 {
		analytics.CapacityUtilization = float64(event.CurrentBookings) / float64(event.MaxParticipants) * 100
	}

	var totalAll, cancelled int64
	if err := r.db.WithContext(ctx).Table("bookings").
		Where("event_id = ?", eventID).Count(&totalAll).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Table("bookings").
		Where("event_id = ? AND status = ?", eventID, "cancelled").Count(&cancelled).Error; err != nil {
		return nil, err
	}
	if totalAll > 0 {
		analytics.CancellationRate = float64(cancelled) / float64(totalAll) * 100
	}

	var daily []DailyBooking
	err = r.db.WithContext(ctx).Table("bookings").
		Select("TO_CHAR(booked_at, 'YYYY-MM-DD') as date, COUNT(*) as bookings, COALESCE(SUM(total_amount), 0) as revenue").
		Where("event_id = ? AND status IN ?", eventID, revenueStatuses).
		Group("TO_CHAR(booked_at, 'YYYY-MM-DD')").
		Order("date ASC").
		Scan(&daily).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get daily bookings: %w", err)
	}
	if daily == nil {
		daily = []DailyBooking{}
	}
	analytics.BookingsByDay = daily

	return analytics, nil
}

func (r *repository) GetGlobalAnalytics(ctx context.Context) (*GlobalAnalytics, error) {
	analytics := &GlobalAnalytics{}

	var totalEvents int64
	if err := r.db.WithContext(ctx).Model(&Event{}).Count(&totalEvents).Error; err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	analytics.TotalEvents = int(totalEvents)

	type aggregateResult struct {
		TotalBookings int     `json:"total_bookings"`
		TotalRevenue  float64 `json:"total_revenue"`
	}
	var agg aggregateResult
	err := r.db.WithContext(ctx).Table("bookings").
		Select("COUNT(*) as total_bookings, COALESCE(SUM(total_amount), 0) as total_revenue").
		Where("status IN ?", revenueStatuses).
		Scan(&agg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bookings: %w", err)
	}
	analytics.TotalBookings = agg.TotalBookings
	analytics.TotalRevenue = agg.TotalRevenue

	type utilizationResult struct {
		AverageUtilization float64 `json:"average_utilization"`
	}
	var util utilizationResult
	err = r.db.WithContext(ctx).Model(&Event{}).
		Select("AVG(current_bookings * 100.0 / max_participants) as average_utilization").
		Where("max_participants > 0").
		Scan(&util).Error
	if err != nil {
		return nil, fmt.Errorf("failed to calculate utilization: %w", err)
	}
	analytics.AverageUtilization = util.AverageUtilization

	var popular []Event
	if err := r.db.WithContext(ctx).
		Where("current_bookings > 0").
		Order("current_bookings DESC").
		Limit(5).
		Find(&popular).Error; err != nil {
		return nil, fmt.Errorf("failed to get popular events: %w", err)
	}

	analytics.MostPopularEvents = make([]EventPopularity, len(popular))
	for i, event := range popular {
		utilization := float64(0)
		if event.MaxParticipants > 0 {
			utilization = float64(event.CurrentBookings) / float64(event.MaxParticipants) * 100
		}

		var revenue struct {
			Revenue float64 `json:"revenue"`
		}
		if err := r.db.WithContext(ctx).Table("bookings").
			Select("COALESCE(SUM(total_amount), 0) as revenue").
			Where("event_id = ? AND status IN ?", event.ID, revenueStatuses).
			Scan(&revenue).Error; err != nil {
			return nil, err
		}

		analytics.MostPopularEvents[i] = EventPopularity{
			EventID:      event.ID.String(),
			EventTitle:   event.Title,
			Participants: event.CurrentBookings,
			Utilization:  utilization,
			Revenue:      revenue.Revenue,
		}
	}

	analytics.EventsByStatus = make(map[string]int)
	type statusCount struct {
		Status string `json:"status"`
		Count  int    `json:"count"`
	}
	var statusCounts []statusCount
	if err := r.db.WithContext(ctx).Model(&Event{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get events by status: %w", err)
	}
	for _, sc := range statusCounts {
		analytics.EventsByStatus[sc.Status] = sc.Count
	}

	var monthly []MonthlyRevenue
	err = r.db.WithContext(ctx).Table("bookings").
		Select("TO_CHAR(booked_at, 'YYYY-MM') as month, COALESCE(SUM(total_amount), 0) as revenue, COUNT(*) as bookings").
		Where("booked_at >= ? AND status IN ?", time.Now().AddDate(0, -12, 0), revenueStatuses).
		Group("TO_CHAR(booked_at, 'YYYY-MM')").
		Order("month DESC").
		Scan(&monthly).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly revenue: %w", err)
	}
	if monthly == nil {
		monthly = []MonthlyRevenue{}
	}
	analytics.RevenueByMonth = monthly

	return analytics, nil
}

// IsNotFound reports whether the error is a missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
