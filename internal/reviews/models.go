package reviews

import (
	"time"

	"github.com/google/uuid"
)

// ModerationStatus is the review moderation lifecycle. Only approved
// reviews are visible to the public.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

func (s ModerationStatus) IsValid() bool {
	switch s {
	case ModerationPending, ModerationApproved, ModerationRejected:
		return true
	}
	return false
}

// Review is customer feedback on an event. A review that references a
// completed booking with a matching email is marked verified.
type Review struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	EventID   uuid.UUID  `json:"event_id" gorm:"type:uuid;not null;index"`
	BookingID *uuid.UUID `json:"booking_id,omitempty" gorm:"type:uuid;index"`

	CustomerName  string `json:"customer_name" gorm:"not null;size:100"`
	CustomerEmail string `json:"-" gorm:"not null;size:254"`

	Rating  int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Title   string `json:"title" gorm:"size:150"`
	Comment string `json:"comment" gorm:"type:text"`

	Verified bool             `json:"verified" gorm:"default:false"`
	Status   ModerationStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	ModeratedBy *uuid.UUID `json:"moderated_by,omitempty" gorm:"type:uuid"`
	ModeratedAt *time.Time `json:"moderated_at,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Review) TableName() string { return "reviews" }

type SubmitReviewRequest struct {
	EventID       string  `json:"event_id" binding:"required,uuid"`
	BookingID     *string `json:"booking_id" binding:"omitempty,uuid"`
	CustomerName  string  `json:"customer_name" binding:"required,min=2,max=100"`
	CustomerEmail string  `json:"customer_email" binding:"required,email"`
	Rating        int     `json:"rating" binding:"required,min=1,max=5"`
	Title         string  `json:"title" binding:"max=150"`
	Comment       string  `json:"comment" binding:"max=4000"`
}

type ReviewListQuery struct {
	Page    int    `form:"page" binding:"omitempty,min=1"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status  string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	EventID string `form:"event_id" binding:"omitempty,uuid"`
	Rating  int    `form:"rating" binding:"omitempty,min=1,max=5"`
}

type PaginatedReviews struct {
	Reviews    []Review `json:"reviews"`
	TotalCount int64    `json:"total_count"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"total_pages"`
}

// EventRating summarises approved reviews for an event.
type EventRating struct {
	EventID       uuid.UUID `json:"event_id"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int64     `json:"review_count"`
	VerifiedCount int64     `json:"verified_count"`
}
