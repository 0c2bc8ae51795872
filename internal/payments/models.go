package payments

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is how the money moved.
type PaymentMethod string

const (
	MethodMpesa        PaymentMethod = "mpesa"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCash         PaymentMethod = "cash"
	MethodCard         PaymentMethod = "card"
	MethodPaypal       PaymentMethod = "paypal"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodMpesa, MethodBankTransfer, MethodCash, MethodCard, MethodPaypal:
		return true
	}
	return false
}

// Payment is one payment attempt against a booking. A booking can carry
// several payments (deposit then balance, or a failed attempt then a
// successful retry).
type Payment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID uuid.UUID `json:"booking_id" gorm:"type:uuid;not null;index"`

	Amount float64       `json:"amount" gorm:"type:decimal(10,2);not null;check:amount > 0"`
	Method PaymentMethod `json:"method" gorm:"type:varchar(20);not null"`
	Status PaymentStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	// Gateway correlation, e.g. an M-Pesa transaction code
	GatewayReference string `json:"gateway_reference" gorm:"size:100;index"`
	FailureReason    string `json:"failure_reason,omitempty" gorm:"size:300"`

	Notes string `json:"notes,omitempty" gorm:"type:text"`

	InitiatedAt time.Time  `json:"initiated_at" gorm:"not null"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	RefundedAt  *time.Time `json:"refunded_at,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Payment) TableName() string { return "payments" }

type InitiatePaymentRequest struct {
	BookingID string   `json:"booking_id" binding:"required,uuid"`
	Amount    *float64 `json:"amount" binding:"omitempty,gt=0"`
	Method    string   `json:"method" binding:"required,oneof=mpesa bank_transfer cash card paypal"`
	Notes     string   `json:"notes" binding:"max=2000"`
}

type GatewayCallbackRequest struct {
	Status           string `json:"status" binding:"required,oneof=processing completed failed cancelled"`
	GatewayReference string `json:"gateway_reference" binding:"max=100"`
	FailureReason    string `json:"failure_reason" binding:"max=300"`
}

// BookingPaymentSummary reports where a booking stands financially.
type BookingPaymentSummary struct {
	BookingID   uuid.UUID `json:"booking_id"`
	TotalAmount float64   `json:"total_amount"`
	PaidAmount  float64   `json:"paid_amount"`
	Balance     float64   `json:"balance"`
	Payments    []Payment `json:"payments"`
}
