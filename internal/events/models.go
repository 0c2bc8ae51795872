package events

import (
	"time"

	"wildquest/internal/catalog"

	"github.com/google/uuid"
)

// TierType names an optional price/capacity bracket within an event.
type TierType string

const (
	TierTypeRegular TierType = "regular"
	TierTypeVIP     TierType = "vip"
	TierTypeStudent TierType = "student"
	TierTypeChild   TierType = "child"
)

func (t TierType) IsValid() bool {
	switch t {
	case TierTypeRegular, TierTypeVIP, TierTypeStudent, TierTypeChild:
		return true
	}
	return false
}

// Event is a bookable tour or experience with a fixed schedule and capacity.
type Event struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title            string    `json:"title" gorm:"not null;size:200"`
	Slug             string    `json:"slug" gorm:"uniqueIndex;not null;size:220"`
	Description      string    `json:"description" gorm:"type:text"`
	ShortDescription string    `json:"short_description" gorm:"size:300"`
	EventType        string    `json:"event_type" gorm:"size:50;index"`

	CategoryID uuid.UUID  `json:"category_id" gorm:"type:uuid;not null;index"`
	LocationID *uuid.UUID `json:"location_id,omitempty" gorm:"type:uuid;index"`

	// Scheduling window
	StartDate       time.Time  `json:"start_date" gorm:"not null;index"`
	EndDate         time.Time  `json:"end_date" gorm:"not null"`
	DurationDays    int        `json:"duration_days" gorm:"default:1"`
	BookingDeadline *time.Time `json:"booking_deadline,omitempty"`

	// Capacity counters; CurrentBookings is mutated only by the capacity tracker
	MaxParticipants int `json:"max_participants" gorm:"not null;check:max_participants > 0"`
	MinParticipants int `json:"min_participants" gorm:"default:1;check:min_participants >= 1"`
	CurrentBookings int `json:"current_bookings" gorm:"default:0;check:current_bookings >= 0"`

	// Pricing; child price is event-level and applies regardless of tier
	BasePrice               float64  `json:"base_price" gorm:"type:decimal(10,2);not null;check:base_price >= 0"`
	ChildPrice              *float64 `json:"child_price,omitempty" gorm:"type:decimal(10,2)"`
	VIPPrice                *float64 `json:"vip_price,omitempty" gorm:"type:decimal(10,2)"`
	GroupDiscountPercentage float64  `json:"group_discount_percentage" gorm:"type:decimal(5,2);default:0"`

	Includes     string `json:"includes" gorm:"type:text"`
	Excludes     string `json:"excludes" gorm:"type:text"`
	Requirements string `json:"requirements" gorm:"type:text"`

	// Booking settings
	CancellationPolicy string `json:"cancellation_policy" gorm:"type:text"`
	WhatsAppBooking    bool   `json:"whatsapp_booking" gorm:"default:true"`
	OnlinePayment      bool   `json:"online_payment" gorm:"default:true"`

	Status   EventStatus `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	Featured bool        `json:"featured" gorm:"default:false"`
	ImageURL string      `json:"image_url" gorm:"size:500"`

	Category *catalog.Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Location *catalog.Location `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	Tiers    []PricingTier     `json:"tiers,omitempty" gorm:"foreignKey:EventID"`

	CreatedBy uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `json:"updated_by,omitempty" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// PricingTier is an optional price/capacity bracket within one event.
// The tier counter is independent of the event counter but bounded by it.
type PricingTier struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	EventID         uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_event_tier_type"`
	TierType        TierType  `json:"tier_type" gorm:"type:varchar(20);not null;uniqueIndex:idx_event_tier_type"`
	Name            string    `json:"name" gorm:"not null;size:100"`
	Price           float64   `json:"price" gorm:"type:decimal(10,2);not null;check:price >= 0"`
	MaxCapacity     int       `json:"max_capacity" gorm:"not null;check:max_capacity > 0"`
	CurrentBookings int       `json:"current_bookings" gorm:"default:0;check:current_bookings >= 0"`
	IsActive        bool      `json:"is_active" gorm:"default:true"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Event) TableName() string       { return "events" }
func (PricingTier) TableName() string { return "pricing_tiers" }

// AvailableSpots is how many participants the event can still take.
func (e *Event) AvailableSpots() int {
	spots := e.MaxParticipants - e.CurrentBookings
	if spots < 0 {
		return 0
	}
	return spots
}

// IsBookingOpen is computed, never stored: the event must be published,
// the deadline (or start date when no deadline is set) must not have
// passed, and there must be room left.
func (e *Event) IsBookingOpen(now time.Time) bool {
	if !e.Status.CanAcceptBookings() {
		return false
	}
	cutoff := e.StartDate
	if e.BookingDeadline != nil {
		cutoff = *e.BookingDeadline
	}
	if !now.Before(cutoff) {
		return false
	}
	return e.AvailableSpots() > 0
}

// AvailableSpots is how many participants the tier can still take.
func (t *PricingTier) AvailableSpots() int {
	spots := t.MaxCapacity - t.CurrentBookings
	if spots < 0 {
		return 0
	}
	return spots
}

type CreateEventRequest struct {
	Title            string  `json:"title" binding:"required,min=3,max=200"`
	Slug             string  `json:"slug" binding:"omitempty,max=220"`
	Description      string  `json:"description" binding:"max=10000"`
	ShortDescription string  `json:"short_description" binding:"max=300"`
	EventType        string  `json:"event_type" binding:"max=50"`
	CategoryID       string  `json:"category_id" binding:"required,uuid"`
	LocationID       *string `json:"location_id" binding:"omitempty,uuid"`

	StartDate       time.Time  `json:"start_date" binding:"required"`
	EndDate         time.Time  `json:"end_date" binding:"required"`
	DurationDays    int        `json:"duration_days" binding:"omitempty,min=1"`
	BookingDeadline *time.Time `json:"booking_deadline"`

	MaxParticipants int `json:"max_participants" binding:"required,min=1,max=10000"`
	MinParticipants int `json:"min_participants" binding:"omitempty,min=1"`

	BasePrice               float64  `json:"base_price" binding:"required,min=0"`
	ChildPrice              *float64 `json:"child_price" binding:"omitempty,min=0"`
	VIPPrice                *float64 `json:"vip_price" binding:"omitempty,min=0"`
	GroupDiscountPercentage float64  `json:"group_discount_percentage" binding:"omitempty,min=0,max=100"`

	Includes     string `json:"includes" binding:"max=5000"`
	Excludes     string `json:"excludes" binding:"max=5000"`
	Requirements string `json:"requirements" binding:"max=5000"`

	CancellationPolicy string `json:"cancellation_policy" binding:"max=5000"`
	WhatsAppBooking    *bool  `json:"whatsapp_booking"`
	OnlinePayment      *bool  `json:"online_payment"`

	Featured bool   `json:"featured"`
	ImageURL string `json:"image_url" binding:"omitempty,url"`
}

type UpdateEventRequest struct {
	Title            *string `json:"title" binding:"omitempty,min=3,max=200"`
	Description      *string `json:"description" binding:"omitempty,max=10000"`
	ShortDescription *string `json:"short_description" binding:"omitempty,max=300"`
	EventType        *string `json:"event_type" binding:"omitempty,max=50"`
	CategoryID       *string `json:"category_id" binding:"omitempty,uuid"`
	LocationID       *string `json:"location_id" binding:"omitempty,uuid"`

	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	DurationDays    *int       `json:"duration_days" binding:"omitempty,min=1"`
	BookingDeadline *time.Time `json:"booking_deadline"`

	MaxParticipants *int `json:"max_participants" binding:"omitempty,min=1,max=10000"`
	MinParticipants *int `json:"min_participants" binding:"omitempty,min=1"`

	BasePrice               *float64 `json:"base_price" binding:"omitempty,min=0"`
	ChildPrice              *float64 `json:"child_price" binding:"omitempty,min=0"`
	VIPPrice                *float64 `json:"vip_price" binding:"omitempty,min=0"`
	GroupDiscountPercentage *float64 `json:"group_discount_percentage" binding:"omitempty,min=0,max=100"`

	Includes     *string `json:"includes" binding:"omitempty,max=5000"`
	Excludes     *string `json:"excludes" binding:"omitempty,max=5000"`
	Requirements *string `json:"requirements" binding:"omitempty,max=5000"`

	CancellationPolicy *string `json:"cancellation_policy" binding:"omitempty,max=5000"`
	WhatsAppBooking    *bool   `json:"whatsapp_booking"`
	OnlinePayment      *bool   `json:"online_payment"`

	Featured *bool   `json:"featured"`
	ImageURL *string `json:"image_url" binding:"omitempty,url"`
}

type CreatePricingTierRequest struct {
	TierType    string  `json:"tier_type" binding:"required,oneof=regular vip student child"`
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Price       float64 `json:"price" binding:"required,min=0"`
	MaxCapacity int     `json:"max_capacity" binding:"required,min=1"`
}

type EventListQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search    string `form:"search"`
	Category  string `form:"category" binding:"omitempty,uuid"`
	Location  string `form:"location" binding:"omitempty,uuid"`
	EventType string `form:"event_type"`
	Status    string `form:"status" binding:"omitempty,oneof=draft published suspended cancelled"`
	Featured  *bool  `form:"featured"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
}

type EventResponse struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	Slug             string      `json:"slug"`
	Description      string      `json:"description"`
	ShortDescription string      `json:"short_description"`
	EventType        string      `json:"event_type"`
	CategoryID       string      `json:"category_id"`
	LocationID       *string     `json:"location_id,omitempty"`
	StartDate        time.Time   `json:"start_date"`
	EndDate          time.Time   `json:"end_date"`
	DurationDays     int         `json:"duration_days"`
	BookingDeadline  *time.Time  `json:"booking_deadline,omitempty"`
	MaxParticipants  int         `json:"max_participants"`
	MinParticipants  int         `json:"min_participants"`
	CurrentBookings  int         `json:"current_bookings"`
	AvailableSpots   int         `json:"available_spots"`
	IsBookingOpen    bool        `json:"is_booking_open"`
	BasePrice        float64     `json:"base_price"`
	ChildPrice       *float64    `json:"child_price,omitempty"`
	VIPPrice         *float64    `json:"vip_price,omitempty"`
	GroupDiscountPct float64     `json:"group_discount_percentage"`
	Includes         string      `json:"includes"`
	Excludes         string      `json:"excludes"`
	Requirements     string      `json:"requirements"`
	Cancellation     string      `json:"cancellation_policy"`
	WhatsAppBooking  bool        `json:"whatsapp_booking"`
	OnlinePayment    bool        `json:"online_payment"`
	Status           EventStatus `json:"status"`
	Featured         bool        `json:"featured"`
	ImageURL         string      `json:"image_url"`

	Category *catalog.Category `json:"category,omitempty"`
	Location *catalog.Location `json:"location,omitempty"`
	Tiers    []PricingTier     `json:"tiers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PaginatedEvents struct {
	Events     []EventResponse `json:"events"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

type EventAnalytics struct {
	EventID             string         `json:"event_id"`
	EventTitle          string         `json:"event_title"`
	TotalBookings       int            `json:"total_bookings"`
	TotalParticipants   int            `json:"total_participants"`
	TotalRevenue        float64        `json:"total_revenue"`
	CapacityUtilization float64        `json:"capacity_utilization"`
	CancellationRate    float64        `json:"cancellation_rate"`
	BookingsByDay       []DailyBooking `json:"bookings_by_day"`
}

type DailyBooking struct {
	Date     string  `json:"date"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

type GlobalAnalytics struct {
	TotalEvents        int               `json:"total_events"`
	TotalBookings      int               `json:"total_bookings"`
	TotalRevenue       float64           `json:"total_revenue"`
	AverageUtilization float64           `json:"average_utilization"`
	MostPopularEvents  []EventPopularity `json:"most_popular_events"`
	EventsByStatus     map[string]int    `json:"events_by_status"`
	RevenueByMonth     []MonthlyRevenue  `json:"revenue_by_month"`
}

type EventPopularity struct {
	EventID      string  `json:"event_id"`
	EventTitle   string  `json:"event_title"`
	Participants int     `json:"participants"`
	Utilization  float64 `json:"utilization"`
	Revenue      float64 `json:"revenue"`
}

type MonthlyRevenue struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Bookings int     `json:"bookings"`
}

// ToResponse converts the model to its API shape with computed fields.
func (e *Event) ToResponse(now time.Time) EventResponse {
	var locationID *string
	if e.LocationID != nil {
		id := e.LocationID.String()
		locationID = &id
	}

	return EventResponse{
		ID:               e.ID.String(),
		Title:            e.Title,
		Slug:             e.Slug,
		Description:      e.Description,
		ShortDescription: e.ShortDescription,
		EventType:        e.EventType,
		CategoryID:       e.CategoryID.String(),
		LocationID:       locationID,
		StartDate:        e.StartDate,
		EndDate:          e.EndDate,
		DurationDays:     e.DurationDays,
		BookingDeadline:  e.BookingDeadline,
		MaxParticipants:  e.MaxParticipants,
		MinParticipants:  e.MinParticipants,
		CurrentBookings:  e.CurrentBookings,
		AvailableSpots:   e.AvailableSpots(),
		IsBookingOpen:    e.IsBookingOpen(now),
		BasePrice:        e.BasePrice,
		ChildPrice:       e.ChildPrice,
		VIPPrice:         e.VIPPrice,
		GroupDiscountPct: e.GroupDiscountPercentage,
		Includes:         e.Includes,
		Excludes:         e.Excludes,
		Requirements:     e.Requirements,
		Cancellation:     e.CancellationPolicy,
		WhatsAppBooking:  e.WhatsAppBooking,
		OnlinePayment:    e.OnlinePayment,
		Status:           e.Status,
		Featured:         e.Featured,
		ImageURL:         e.ImageURL,
		Category:         e.Category,
		Location:         e.Location,
		Tiers:            e.Tiers,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}
