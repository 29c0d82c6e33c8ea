// Package pricing implements the deterministic print-job price calculator:
// base price scaled by option multipliers, quantity, and a volume discount
// tier table. It is a pure estimation layer with no error returns; invalid
// numeric input degrades to zero instead of failing.
package pricing

import "math"

// quantityTier maps an inclusive quantity range to a volume discount scale.
type quantityTier struct {
	Min   int
	Max   int // inclusive; math.MaxInt marks the open-ended top tier
	Scale float64
}

var quantityTiers = []quantityTier{
	{1, 99, 1.00},
	{100, 249, 0.95},
	{250, 499, 0.90},
	{500, 999, 0.85},
	{1000, 2499, 0.80},
	{2500, 4999, 0.75},
	{5000, 9999, 0.70},
	{10000, math.MaxInt, 0.65},
}

// QuantityScale returns the volume discount factor for the given quantity.
// Quantities below 1 are treated as 1, so the result is always in (0, 1].
func QuantityScale(quantity int) float64 {
	if quantity < 1 {
		quantity = 1
	}
	for _, t := range quantityTiers {
		if quantity >= t.Min && quantity <= t.Max {
			return t.Scale
		}
	}
	// Unreachable: the tiers cover every integer from 1 upward.
	return 1.0
}

// CalculatePrice computes the total price for a configured print job:
//
//	round2(basePrice * size * paper * side * quantity * QuantityScale(quantity))
//
// A negative base price or a quantity below 1 yields 0. Multipliers are
// trusted as supplied; callers validate them before calling in.
func CalculatePrice(basePrice, sizeMult, paperMult, sideMult float64, quantity int) float64 {
	if basePrice < 0 || quantity < 1 {
		return 0
	}
	total := basePrice * sizeMult * paperMult * sideMult * float64(quantity) * QuantityScale(quantity)
	return Round2(total)
}

// CalculateUnitPrice returns the per-unit price after the volume discount.
// A quantity below 1 yields 0.
func CalculateUnitPrice(basePrice, sizeMult, paperMult, sideMult float64, quantity int) float64 {
	if quantity < 1 {
		return 0
	}
	return Round2(CalculatePrice(basePrice, sizeMult, paperMult, sideMult, quantity) / float64(quantity))
}

// CalculateSavings returns how much the volume discount saves compared to the
// undiscounted tier. It is 0 when the quantity does not reach a discount tier.
func CalculateSavings(basePrice, sizeMult, paperMult, sideMult float64, quantity int) float64 {
	if basePrice < 0 || quantity < 1 {
		return 0
	}
	scale := QuantityScale(quantity)
	if scale >= 1.0 {
		return 0
	}
	full := basePrice * sizeMult * paperMult * sideMult * float64(quantity)
	return Round2(full - full*scale)
}

// DiscountPercentage returns the volume discount as a whole percentage,
// always within [0, 100].
func DiscountPercentage(quantity int) int {
	return int(math.Round((1 - QuantityScale(quantity)) * 100))
}

// Breakdown is a fully computed quote for one print-job configuration.
type Breakdown struct {
	TotalPrice         float64 `json:"totalPrice"`
	UnitPrice          float64 `json:"unitPrice"`
	Savings            float64 `json:"savings"`
	DiscountPercentage int     `json:"discountPercentage"`
	QuantityScale      float64 `json:"quantityScale"`
}

// Quote computes every pricing figure for one configuration in a single call.
func Quote(basePrice, sizeMult, paperMult, sideMult float64, quantity int) Breakdown {
	return Breakdown{
		TotalPrice:         CalculatePrice(basePrice, sizeMult, paperMult, sideMult, quantity),
		UnitPrice:          CalculateUnitPrice(basePrice, sizeMult, paperMult, sideMult, quantity),
		Savings:            CalculateSavings(basePrice, sizeMult, paperMult, sideMult, quantity),
		DiscountPercentage: DiscountPercentage(quantity),
		QuantityScale:      QuantityScale(quantity),
	}
}

// Round2 rounds to two decimal places, half away from zero, matching the
// usual round-to-cents behavior.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
