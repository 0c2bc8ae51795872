package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	TypeBookingConfirmed        NotificationType = "BOOKING_CONFIRMED"
	TypeBookingCancelled        NotificationType = "BOOKING_CANCELLED"
	TypePaymentCompleted        NotificationType = "PAYMENT_COMPLETED"
	TypeWhatsAppRequestReceived NotificationType = "WHATSAPP_REQUEST_RECEIVED"
)

type NotificationStatus string

const (
	StatusPending NotificationStatus = "PENDING"
	StatusQueued  NotificationStatus = "QUEUED"
	StatusSending NotificationStatus = "SENDING"
	StatusSent    NotificationStatus = "SENT"
	StatusFailed  NotificationStatus = "FAILED"
)

// Notification is the message shape published to Kafka and consumed by
// the email workers.
type Notification struct {
	ID   uuid.UUID        `json:"id"`
	Type NotificationType `json:"type"`

	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`
	RecipientPhone string `json:"recipient_phone,omitempty"`

	Subject      string                 `json:"subject"`
	TemplateData map[string]interface{} `json:"template_data"`

	BookingID *uuid.UUID `json:"booking_id,omitempty"`
	EventID   *uuid.UUID `json:"event_id,omitempty"`

	Status     NotificationStatus `json:"status"`
	RetryCount int                `json:"retry_count"`
	MaxRetries int                `json:"max_retries"`
	LastError  *string            `json:"last_error,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
}

func NewNotification(notType NotificationType, email, name string) *Notification {
	now := time.Now()
	return &Notification{
		ID:             uuid.New(),
		Type:           notType,
		RecipientEmail: email,
		RecipientName:  name,
		TemplateData:   make(map[string]interface{}),
		Status:         StatusPending,
		MaxRetries:     3,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// GetPartitionKey routes all messages for one customer to one partition
// so their notifications arrive in order.
func (n *Notification) GetPartitionKey() string {
	return n.RecipientEmail
}

func (n *Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func (n *Notification) MarkSent() {
	now := time.Now()
	n.Status = StatusSent
	n.SentAt = &now
	n.UpdatedAt = now
}

func (n *Notification) MarkFailed(err error) {
	n.Status = StatusFailed
	n.UpdatedAt = time.Now()
	errStr := err.Error()
	n.LastError = &errStr
}
