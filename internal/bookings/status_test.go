package bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPaid, false},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusPaid, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, false},
		{StatusPaid, StatusCompleted, true},
		{StatusPaid, StatusCancelled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusCancelled, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatesRejectEverything(t *testing.T) {
	all := []BookingStatus{StatusPending, StatusConfirmed, StatusPaid, StatusCompleted, StatusCancelled}
	for _, terminal := range []BookingStatus{StatusCompleted, StatusCancelled} {
		for _, to := range all {
			assert.False(t, terminal.CanTransitionTo(to), "%s -> %s should be rejected", terminal, to)
		}
	}
}

func TestIsCancellable(t *testing.T) {
	assert.True(t, StatusPending.IsCancellable())
	assert.True(t, StatusConfirmed.IsCancellable())
	assert.False(t, StatusPaid.IsCancellable())
	assert.False(t, StatusCompleted.IsCancellable())
	assert.False(t, StatusCancelled.IsCancellable())
}
