package whatsapp

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the intake lifecycle: new -> contacted -> converted
// or closed. Converted requests keep a link to the booking they became.
type RequestStatus string

const (
	RequestNew       RequestStatus = "new"
	RequestContacted RequestStatus = "contacted"
	RequestConverted RequestStatus = "converted"
	RequestClosed    RequestStatus = "closed"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestNew, RequestContacted, RequestConverted, RequestClosed:
		return true
	}
	return false
}

// IsOpen reports whether staff can still act on the request.
func (s RequestStatus) IsOpen() bool {
	return s == RequestNew || s == RequestContacted
}

// Request is a customer's expression of interest that arrived through
// the WhatsApp funnel. Staff follow up manually and either convert it
// into a booking or close it.
type Request struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	EventID uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index"`

	CustomerName  string `json:"customer_name" gorm:"not null;size:100"`
	CustomerPhone string `json:"customer_phone" gorm:"not null;size:20;index"`
	CustomerEmail string `json:"customer_email" gorm:"size:254"`

	Adults   int    `json:"adults" gorm:"default:1;check:adults >= 1"`
	Children int    `json:"children" gorm:"default:0;check:children >= 0"`
	Message  string `json:"message" gorm:"type:text"`

	Status RequestStatus `json:"status" gorm:"type:varchar(20);default:'new';index"`

	ProcessedBy *uuid.UUID `json:"processed_by,omitempty" gorm:"type:uuid"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	BookingID   *uuid.UUID `json:"booking_id,omitempty" gorm:"type:uuid"`
	StaffNotes  string     `json:"staff_notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Request) TableName() string { return "whatsapp_requests" }

type CaptureRequestInput struct {
	EventID       string `json:"event_id" binding:"required,uuid"`
	CustomerName  string `json:"customer_name" binding:"required,min=2,max=100"`
	CustomerPhone string `json:"customer_phone" binding:"required,min=7,max=20"`
	CustomerEmail string `json:"customer_email" binding:"omitempty,email"`
	Adults        int    `json:"adults" binding:"omitempty,min=1"`
	Children      int    `json:"children" binding:"min=0"`
	Message       string `json:"message" binding:"max=2000"`
}

// CaptureResult carries the stored request plus the pre-filled
// wa.me link the frontend opens for the customer.
type CaptureResult struct {
	Request      *Request `json:"request"`
	WhatsAppLink string   `json:"whatsapp_link"`
}

type ConvertRequestInput struct {
	CustomerEmail   string  `json:"customer_email" binding:"required,email"`
	CustomerAddress string  `json:"customer_address" binding:"max=300"`
	TierID          *string `json:"tier_id" binding:"omitempty,uuid"`
	Adults          *int    `json:"adults" binding:"omitempty,min=1"`
	Children        *int    `json:"children" binding:"omitempty,min=0"`
	SpecialRequests string  `json:"special_requests" binding:"max=2000"`
}

type RequestListQuery struct {
	Page    int    `form:"page" binding:"omitempty,min=1"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status  string `form:"status" binding:"omitempty,oneof=new contacted converted closed"`
	EventID string `form:"event_id" binding:"omitempty,uuid"`
	Search  string `form:"search"`
}

type PaginatedRequests struct {
	Requests   []Request `json:"requests"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}
