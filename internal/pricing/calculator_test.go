package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float64Ptr(v float64) *float64 { return &v }

func TestQuoteBasePricing(t *testing.T) {
	calc := NewCalculator(0.16, 5)
	event := EventRates{
		EventID:   uuid.New(),
		BasePrice: 1000,
	}

	breakdown, err := calc.Quote(event, nil, 2, 0)
	require.NoError(t, err)

	assert.Equal(t, 2000.0, breakdown.Base)
	assert.Equal(t, 0.0, breakdown.Discount)
	assert.Equal(t, 320.0, breakdown.Tax)
	assert.Equal(t, 2320.0, breakdown.Total)
}

func TestQuoteGroupDiscountWithChildren(t *testing.T) {
	calc := NewCalculator(0.16, 5)
	event := EventRates{
		EventID:                 uuid.New(),
		BasePrice:               1000,
		ChildPrice:              float64Ptr(500),
		GroupDiscountPercentage: 10,
	}

	// 4 adults + 2 children = 6 participants, group discount applies
	breakdown, err := calc.Quote(event, nil, 4, 2)
	require.NoError(t, err)

	assert.Equal(t, 5000.0, breakdown.Base)
	assert.Equal(t, 500.0, breakdown.Discount)
	assert.Equal(t, 720.0, breakdown.Tax)
	assert.Equal(t, 5220.0, breakdown.Total)
}

func TestQuoteGroupDiscountBelowThreshold(t *testing.T) {
	calc := NewCalculator(0.16, 5)
	event := EventRates{
		EventID:                 uuid.New(),
		BasePrice:               1000,
		GroupDiscountPercentage: 10,
	}

	breakdown, err := calc.Quote(event, nil, 4, 0)
	require.NoError(t, err)

	assert.Equal(t, 4000.0, breakdown.Base)
	assert.Equal(t, 0.0, breakdown.Discount, "discount needs 5 or more participants")
}

func TestQuoteTierPriceAppliesToAdultsOnly(t *testing.T) {
	calc := NewCalculator(0.16, 5)
	eventID := uuid.New()
	event := EventRates{
		EventID:    eventID,
		BasePrice:  1000,
		ChildPrice: float64Ptr(500),
	}
	tier := &TierRates{
		TierID:  uuid.New(),
		EventID: eventID,
		Price:   1500,
	}

	breakdown, err := calc.Quote(event, tier, 2, 1)
	require.NoError(t, err)

	// Adults at the tier price, child at the event-level child price
	assert.Equal(t, 3500.0, breakdown.Base)
}

func TestQuoteChildrenWithoutChildPrice(t *testing.T) {
	calc := NewCalculator(0.16, 5)
	event := EventRates{
		EventID:   uuid.New(),
		BasePrice: 1000,
	}

	// No child price set: children ride free
	breakdown, err := calc.Quote(event, nil, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, breakdown.Base)
}

func TestQuoteInvalidParticipantCounts(t *testing.T) {
	calc := NewCalculator(0.16, 5)
	event := EventRates{EventID: uuid.New(), BasePrice: 1000}

	_, err := calc.Quote(event, nil, 0, 2)
	assert.ErrorIs(t, err, ErrInvalidParticipantCount, "at least one adult required")

	_, err = calc.Quote(event, nil, 1, -1)
	assert.ErrorIs(t, err, ErrInvalidParticipantCount)
}

func TestQuoteForeignTierRejected(t *testing.T) {
	calc := NewCalculator(0.16, 5)
	event := EventRates{EventID: uuid.New(), BasePrice: 1000}
	tier := &TierRates{
		TierID:  uuid.New(),
		EventID: uuid.New(),
		Price:   1500,
	}

	_, err := calc.Quote(event, tier, 2, 0)
	assert.ErrorIs(t, err, ErrUnknownPricingTier)
}

func TestQuoteTotalInvariant(t *testing.T) {
	calc := NewCalculator(0.16, 5)
	event := EventRates{
		EventID:                 uuid.New(),
		BasePrice:               1234.56,
		ChildPrice:              float64Ptr(617.28),
		GroupDiscountPercentage: 7.5,
	}

	breakdown, err := calc.Quote(event, nil, 5, 3)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, breakdown.Base, 0.0)
	assert.GreaterOrEqual(t, breakdown.Discount, 0.0)
	assert.GreaterOrEqual(t, breakdown.Tax, 0.0)
	assert.InDelta(t, breakdown.Base-breakdown.Discount+breakdown.Tax, breakdown.Total, 0.011)
}

func TestQuoteZeroTaxRate(t *testing.T) {
	calc := NewCalculator(0, 5)
	event := EventRates{EventID: uuid.New(), BasePrice: 800}

	breakdown, err := calc.Quote(event, nil, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, breakdown.Tax)
	assert.Equal(t, 2400.0, breakdown.Total)
}
