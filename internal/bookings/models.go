package bookings

import (
	"time"

	"wildquest/internal/events"

	"github.com/google/uuid"
)

// Booking is the aggregate root of a customer reservation. Customer
// contact details are snapshotted on the booking because customers do
// not hold accounts.
type Booking struct {
	ID      uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	EventID uuid.UUID  `json:"event_id" gorm:"type:uuid;not null;index"`
	TierID  *uuid.UUID `json:"tier_id,omitempty" gorm:"type:uuid;index"`

	// Customer snapshot
	CustomerName    string `json:"customer_name" gorm:"not null;size:100"`
	CustomerEmail   string `json:"customer_email" gorm:"not null;size:254;index"`
	CustomerPhone   string `json:"customer_phone" gorm:"not null;size:20;index"`
	CustomerAddress string `json:"customer_address" gorm:"size:300"`

	EmergencyContactName  string `json:"emergency_contact_name" gorm:"size:100"`
	EmergencyContactPhone string `json:"emergency_contact_phone" gorm:"size:20"`

	Adults   int `json:"adults" gorm:"not null;check:adults >= 1"`
	Children int `json:"children" gorm:"default:0;check:children >= 0"`

	// Price breakdown, computed once at creation: total = base - discount + tax
	BaseAmount     float64 `json:"base_amount" gorm:"type:decimal(10,2);not null;check:base_amount >= 0"`
	DiscountAmount float64 `json:"discount_amount" gorm:"type:decimal(10,2);default:0;check:discount_amount >= 0"`
	TaxAmount      float64 `json:"tax_amount" gorm:"type:decimal(10,2);default:0;check:tax_amount >= 0"`
	TotalAmount    float64 `json:"total_amount" gorm:"type:decimal(10,2);not null;check:total_amount >= 0"`

	Method BookingMethod `json:"method" gorm:"type:varchar(20);default:'online'"`
	Status BookingStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	SpecialRequests     string `json:"special_requests" gorm:"type:text"`
	DietaryRequirements string `json:"dietary_requirements" gorm:"type:text"`

	BookedAt    time.Time  `json:"booked_at" gorm:"not null;index"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	Event        *events.Event        `json:"event,omitempty" gorm:"foreignKey:EventID"`
	Tier         *events.PricingTier  `json:"tier,omitempty" gorm:"foreignKey:TierID"`
	Participants []BookingParticipant `json:"participants,omitempty" gorm:"foreignKey:BookingID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// BookingParticipant is one named person covered by a booking. Rows are
// owned exclusively by the booking and created together with it.
type BookingParticipant struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID uuid.UUID `json:"booking_id" gorm:"type:uuid;not null;index"`

	Name           string          `json:"name" gorm:"not null;size:100"`
	Age            *int            `json:"age,omitempty"`
	Type           ParticipantType `json:"type" gorm:"type:varchar(10);default:'adult'"`
	IDNumber       string          `json:"id_number" gorm:"size:30"`
	PassportNumber string          `json:"passport_number" gorm:"size:30"`
	MedicalNotes   string          `json:"medical_notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Booking) TableName() string            { return "bookings" }
func (BookingParticipant) TableName() string { return "booking_participants" }

// TotalParticipants is the headcount the booking reserves.
func (b *Booking) TotalParticipants() int {
	return b.Adults + b.Children
}

type ParticipantInput struct {
	Name           string `json:"name" binding:"max=100"`
	Age            *int   `json:"age" binding:"omitempty,min=0,max=120"`
	Type           string `json:"type" binding:"omitempty,oneof=adult child infant"`
	IDNumber       string `json:"id_number" binding:"max=30"`
	PassportNumber string `json:"passport_number" binding:"max=30"`
	MedicalNotes   string `json:"medical_notes" binding:"max=2000"`
}

type CreateBookingRequest struct {
	EventID string  `json:"event_id" binding:"required,uuid"`
	TierID  *string `json:"tier_id" binding:"omitempty,uuid"`

	CustomerName    string `json:"customer_name" binding:"required,min=2,max=100"`
	CustomerEmail   string `json:"customer_email" binding:"required,email"`
	CustomerPhone   string `json:"customer_phone" binding:"required,min=7,max=20"`
	CustomerAddress string `json:"customer_address" binding:"max=300"`

	EmergencyContactName  string `json:"emergency_contact_name" binding:"max=100"`
	EmergencyContactPhone string `json:"emergency_contact_phone" binding:"max=20"`

	Adults   int `json:"adults" binding:"required,min=1"`
	Children int `json:"children" binding:"min=0"`

	Method       string             `json:"method" binding:"omitempty,oneof=online whatsapp phone email"`
	Participants []ParticipantInput `json:"participants" binding:"omitempty,dive"`

	SpecialRequests     string `json:"special_requests" binding:"max=2000"`
	DietaryRequirements string `json:"dietary_requirements" binding:"max=2000"`
}

type BookingListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=pending confirmed paid completed cancelled"`
	EventID  string `form:"event_id" binding:"omitempty,uuid"`
	Method   string `form:"method" binding:"omitempty,oneof=online whatsapp phone email"`
	Search   string `form:"search"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

type PaginatedBookings struct {
	Bookings   []Booking `json:"bookings"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}
