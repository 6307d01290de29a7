package order

import (
	"fmt"
	"math"

	"swiftdrop/internal/pkg/errs"
)

// PriceRoundingTolerance is the accepted gap, in currency units, between Total
// and the literal sum of the rounded components. Individual fees are rounded to
// cents before composition so the displayed breakdown sums consistently; the
// documented cost is that Total may differ from a naive re-sum by one cent.
const PriceRoundingTolerance = 0.01

// PriceBreakdown is the immutable result of pricing an order.
// All monetary fields are rounded to two decimal places using
// round-half-away-from-zero at the point of output.
//
// Invariants:
//   - Total == SubtotalAfterDiscount + Tax (within PriceRoundingTolerance)
//   - Subtotal == (BasePrice + DistanceFee + WeightFee + PackageFee) * WindowMultiplier
//   - every monetary field is non-negative
//
// Fields are exported because the breakdown is a plain output value serialized
// into the orders table and over the API; it is never mutated after creation.
type PriceBreakdown struct {
	BasePrice             float64 `json:"base_price"`
	DistanceFee           float64 `json:"distance_fee"`
	WeightFee             float64 `json:"weight_fee"`
	PackageFee            float64 `json:"package_fee"`
	WindowMultiplier      float64 `json:"window_multiplier"`
	Subtotal              float64 `json:"subtotal"`
	LoyaltyDiscount       float64 `json:"loyalty_discount"`
	SubtotalAfterDiscount float64 `json:"subtotal_after_discount"`
	Tax                   float64 `json:"tax"`
	Total                 float64 `json:"total"`
}

// Validate checks the breakdown's internal consistency.
func (p PriceBreakdown) Validate() error {
	for name, v := range map[string]float64{
		"base price":              p.BasePrice,
		"distance fee":            p.DistanceFee,
		"weight fee":              p.WeightFee,
		"package fee":             p.PackageFee,
		"window multiplier":       p.WindowMultiplier,
		"subtotal":                p.Subtotal,
		"loyalty discount":        p.LoyaltyDiscount,
		"subtotal after discount": p.SubtotalAfterDiscount,
		"tax":                     p.Tax,
		"total":                   p.Total,
	} {
		if v < 0 {
			return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%.2f is negative", v))
		}
	}

	if math.Abs(p.Total-(p.SubtotalAfterDiscount+p.Tax)) > PriceRoundingTolerance {
		return errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%.2f does not equal subtotal after discount %.2f plus tax %.2f",
				p.Total, p.SubtotalAfterDiscount, p.Tax))
	}

	return nil
}

// IsEqual compares two breakdowns field by field. Pricing is deterministic, so
// identical inputs must produce breakdowns that compare equal.
func (p PriceBreakdown) IsEqual(other PriceBreakdown) bool {
	return p == other
}
