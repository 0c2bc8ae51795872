package pricing

import (
	"errors"
	"math"

	"github.com/google/uuid"
)

var (
	ErrInvalidParticipantCount = errors.New("pricing: invalid participant count")
	ErrUnknownPricingTier      = errors.New("pricing: tier does not belong to event")
)

// EventRates is the pricing snapshot of an event.
type EventRates struct {
	EventID                 uuid.UUID
	BasePrice               float64
	ChildPrice              *float64
	GroupDiscountPercentage float64
}

// TierRates is the pricing snapshot of an optional tier. Tier price applies
// to adults only; the child price stays event-level regardless of tier.
type TierRates struct {
	TierID  uuid.UUID
	EventID uuid.UUID
	Price   float64
}

// Breakdown is the computed cost of a booking.
// Invariant: all fields non-negative and Total = Base - Discount + Tax.
type Breakdown struct {
	Base     float64 `json:"base_amount"`
	Discount float64 `json:"discount_amount"`
	Tax      float64 `json:"tax_amount"`
	Total    float64 `json:"total_amount"`
}

// Calculator computes booking price breakdowns. It is pure: no storage,
// no clock. Tax is applied to (base - discount) on every path, the single
// policy used by bookings, seed data and reports alike.
type Calculator struct {
	TaxRate              float64
	GroupMinParticipants int
}

func NewCalculator(taxRate float64, groupMinParticipants int) Calculator {
	return Calculator{TaxRate: taxRate, GroupMinParticipants: groupMinParticipants}
}

// Quote computes the price breakdown for adults+children participants.
func (c Calculator) Quote(event EventRates, tier *TierRates, adults, children int) (Breakdown, error) {
	if adults < 1 || children < 0 {
		return Breakdown{}, ErrInvalidParticipantCount
	}
	if tier != nil && tier.EventID != event.EventID {
		return Breakdown{}, ErrUnknownPricingTier
	}

	adultPrice := event.BasePrice
	if tier != nil {
		adultPrice = tier.Price
	}

	base := adultPrice * float64(adults)
	if children > 0 && event.ChildPrice != nil {
		base += *event.ChildPrice * float64(children)
	}

	var discount float64
	totalParticipants := adults + children
	if totalParticipants >= c.GroupMinParticipants && event.GroupDiscountPercentage > 0 {
		discount = base * event.GroupDiscountPercentage / 100
	}

	tax := (base - discount) * c.TaxRate

	base = round2(base)
	discount = round2(discount)
	tax = round2(tax)

	return Breakdown{
		Base:     base,
		Discount: discount,
		Tax:      tax,
		Total:    round2(base - discount + tax),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
