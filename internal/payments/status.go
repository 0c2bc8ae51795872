package payments

import "errors"

// ErrInvalidTransition is returned for any illegal payment status change.
var ErrInvalidTransition = errors.New("payments: illegal status transition")

// PaymentStatus is the payment sub-lifecycle. It runs independently of
// the booking lifecycle; a completed payment covering the full balance
// is what promotes the booking to paid.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentRefunded   PaymentStatus = "refunded"
	PaymentCancelled  PaymentStatus = "cancelled"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentProcessing, PaymentCompleted, PaymentFailed, PaymentRefunded, PaymentCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the transition s -> to is legal.
func (s PaymentStatus) CanTransitionTo(to PaymentStatus) bool {
	switch s {
	case PaymentPending:
		return to == PaymentProcessing || to == PaymentCompleted || to == PaymentFailed || to == PaymentCancelled
	case PaymentProcessing:
		return to == PaymentCompleted || to == PaymentFailed || to == PaymentCancelled
	case PaymentCompleted:
		return to == PaymentRefunded
	default:
		// failed, refunded and cancelled are terminal
		return false
	}
}

// IsTerminal reports whether no further transitions are possible.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentFailed || s == PaymentRefunded || s == PaymentCancelled
}
