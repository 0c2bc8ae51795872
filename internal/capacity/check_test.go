package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckAccepts(t *testing.T) {
	event := EventCapacity{MinParticipants: 1, MaxParticipants: 10, CurrentBookings: 4}

	assert.NoError(t, Check(event, nil, 6))
	assert.NoError(t, Check(event, nil, 1))
}

func TestCheckBelowMinimum(t *testing.T) {
	event := EventCapacity{MinParticipants: 3, MaxParticipants: 10}

	err := Check(event, nil, 2)
	assert.ErrorIs(t, err, ErrBelowMinimumParticipants)
}

func TestCheckAboveMaximum(t *testing.T) {
	event := EventCapacity{MinParticipants: 1, MaxParticipants: 10}

	err := Check(event, nil, 11)
	assert.ErrorIs(t, err, ErrAboveMaximumParticipants)
}

func TestCheckInsufficientSpots(t *testing.T) {
	// 10 max, 8 taken: a request for 3 must fail with 2 spots left
	event := EventCapacity{MinParticipants: 1, MaxParticipants: 10, CurrentBookings: 8}

	err := Check(event, nil, 3)
	assert.ErrorIs(t, err, ErrInsufficientSpots)

	assert.NoError(t, Check(event, nil, 2))
}

func TestCheckTierInsufficientSpots(t *testing.T) {
	event := EventCapacity{MinParticipants: 1, MaxParticipants: 20, CurrentBookings: 0}
	tier := &TierCapacity{MaxCapacity: 5, CurrentBookings: 4}

	err := Check(event, tier, 2)
	assert.ErrorIs(t, err, ErrTierInsufficientSpots)

	assert.NoError(t, Check(event, tier, 1))
}

func TestCheckErrorOrder(t *testing.T) {
	// Event spots run out before the tier is consulted
	event := EventCapacity{MinParticipants: 1, MaxParticipants: 10, CurrentBookings: 9}
	tier := &TierCapacity{MaxCapacity: 2, CurrentBookings: 2}

	err := Check(event, tier, 2)
	assert.ErrorIs(t, err, ErrInsufficientSpots)
}

func TestAvailableSpotsClampsAtZero(t *testing.T) {
	event := EventCapacity{MaxParticipants: 10, CurrentBookings: 12}
	assert.Equal(t, 0, event.AvailableSpots())

	tier := TierCapacity{MaxCapacity: 5, CurrentBookings: 7}
	assert.Equal(t, 0, tier.AvailableSpots())
}
