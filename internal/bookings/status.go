package bookings

import "errors"

// ErrInvalidTransition is returned for any illegal booking status change,
// including a second cancel of an already cancelled booking.
var ErrInvalidTransition = errors.New("bookings: illegal status transition")

// BookingStatus is the booking lifecycle:
// pending -> confirmed -> paid -> completed, with cancellation possible
// from pending and confirmed. Bookings are never deleted.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusPaid      BookingStatus = "paid"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPaid, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the transition s -> to is legal.
func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	switch s {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusPaid || to == StatusCancelled
	case StatusPaid:
		return to == StatusCompleted
	default:
		// completed and cancelled are terminal
		return false
	}
}

// IsCancellable reports whether the booking may still be cancelled and
// its capacity released.
func (s BookingStatus) IsCancellable() bool {
	return s == StatusPending || s == StatusConfirmed
}
