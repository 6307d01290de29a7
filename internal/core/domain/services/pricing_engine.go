package services

import (
	"errors"
	"fmt"
	"math"

	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/pkg/errs"
)

// Tariff holds the pricing constants of the engine. It is an explicit immutable
// configuration value passed in at construction rather than module-level state,
// so tests can vary rates without global side effects.
type Tariff struct {
	// BaseFee is the fixed job fee charged on every order.
	BaseFee float64

	// FreeDistanceKm is the distance included in the base fee.
	// Only kilometers strictly beyond it are charged.
	FreeDistanceKm float64

	// PerKmRate is the fee per kilometer beyond FreeDistanceKm.
	PerKmRate float64

	// FreeWeightLb is the manifest weight included in the base fee.
	// Only pounds strictly beyond it are charged.
	FreeWeightLb float64

	// ExcessWeightRate is the starting per-pound rate for excess weight.
	ExcessWeightRate float64

	// WeightRateDecay is the multiplicative reduction applied to the rate for
	// each full WeightBandLb increment beyond the first band.
	WeightRateDecay float64

	// MinExcessWeightRate is the floor the decayed rate never drops below.
	MinExcessWeightRate float64

	// WeightBandLb is the size of one weight band.
	WeightBandLb float64

	// ExtraPackageFee is charged per package beyond the first.
	ExtraPackageFee float64

	// TaxRate is the flat consumption tax applied after the loyalty discount.
	TaxRate float64
}

// DefaultTariff returns the production rates.
func DefaultTariff() Tariff {
	return Tariff{
		BaseFee:             15.00,
		FreeDistanceKm:      15,
		PerKmRate:           0.75,
		FreeWeightLb:        25,
		ExcessWeightRate:    0.25,
		WeightRateDecay:     0.85,
		MinExcessWeightRate: 0.07,
		WeightBandLb:        50,
		ExtraPackageFee:     2.00,
		TaxRate:             0.05,
	}
}

// Validate checks the tariff for values that would produce nonsensical prices.
func (t Tariff) Validate() error {
	for name, v := range map[string]float64{
		"base fee":               t.BaseFee,
		"free distance":          t.FreeDistanceKm,
		"per km rate":            t.PerKmRate,
		"free weight":            t.FreeWeightLb,
		"excess weight rate":     t.ExcessWeightRate,
		"min excess weight rate": t.MinExcessWeightRate,
		"extra package fee":      t.ExtraPackageFee,
	} {
		if v < 0 {
			return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%.2f is negative", v))
		}
	}

	if t.WeightBandLb <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"weight band", fmt.Errorf("%.2f is not greater than 0", t.WeightBandLb))
	}

	if t.WeightRateDecay <= 0 || t.WeightRateDecay > 1 {
		return errs.NewValueIsOutOfRangeError("weight rate decay", t.WeightRateDecay, 0, 1)
	}

	if t.TaxRate < 0 || t.TaxRate >= 1 {
		return errs.NewValueIsOutOfRangeError("tax rate", t.TaxRate, 0, 1)
	}

	return nil
}

// PricingEngine is a pure domain service that prices delivery orders.
// Quote has no side effects and no I/O: for a fixed tariff, identical inputs
// always produce an identical breakdown, which is what lets a pre-purchase
// quote match the price persisted at order creation byte for byte.
//
// Example usage:
//
//	engine, _ := services.NewPricingEngine(services.DefaultTariff())
//	breakdown, err := engine.Quote(42.5, manifest, order.SameDay, order.Silver)
//	if err != nil {
//	    // invalid input: negative distance or empty manifest
//	}
//	fmt.Printf("total: %.2f", breakdown.Total)
type PricingEngine struct {
	tariff Tariff
}

// NewPricingEngine creates a pricing engine with the given tariff.
func NewPricingEngine(tariff Tariff) (PricingEngine, error) {
	if err := tariff.Validate(); err != nil {
		return PricingEngine{}, err
	}

	return PricingEngine{tariff: tariff}, nil
}

// Tariff returns the tariff the engine was constructed with.
func (e PricingEngine) Tariff() Tariff {
	return e.tariff
}

// Quote computes the full price breakdown for an order.
//
// The composition is:
//
//	subtotal  = (base + distance fee + weight fee + package fee) * window multiplier
//	discount  = subtotal * loyalty percent / 100
//	tax       = (subtotal - discount) * tax rate
//	total     = subtotal - discount + tax
//
// The distance, weight, and package fees are each rounded to cents before the
// subtotal is composed, so the displayed breakdown sums consistently; the
// accepted cost is that Total may differ from a naive re-sum of unrounded
// components by at most one cent (order.PriceRoundingTolerance).
//
// Rejects negative distance and an empty or invalid manifest. There are no
// other failure modes.
func (e PricingEngine) Quote(
	distanceKm float64,
	manifest order.Manifest,
	window order.DeliveryWindow,
	loyalty order.LoyaltyTier,
) (order.PriceBreakdown, error) {
	if distanceKm < 0 {
		return order.PriceBreakdown{}, errs.NewValueIsInvalidErrorWithCause(
			"distance", fmt.Errorf("%.2f km is negative", distanceKm))
	}

	if err := errors.Join(manifest.Validate(), window.Validate(), loyalty.Validate()); err != nil {
		return order.PriceBreakdown{}, err
	}

	distanceFee := roundCents(e.distanceFee(distanceKm))
	weightFee := roundCents(e.weightFee(manifest.TotalWeightLb()))
	packageFee := roundCents(e.packageFee(manifest.Count()))

	subtotal := roundCents((e.tariff.BaseFee + distanceFee + weightFee + packageFee) * window.Multiplier())
	discount := roundCents(subtotal * loyalty.DiscountPercent() / 100)
	afterDiscount := roundCents(subtotal - discount)
	tax := roundCents(afterDiscount * e.tariff.TaxRate)
	total := roundCents(afterDiscount + tax)

	return order.PriceBreakdown{
		BasePrice:             roundCents(e.tariff.BaseFee),
		DistanceFee:           distanceFee,
		WeightFee:             weightFee,
		PackageFee:            packageFee,
		WindowMultiplier:      window.Multiplier(),
		Subtotal:              subtotal,
		LoyaltyDiscount:       discount,
		SubtotalAfterDiscount: afterDiscount,
		Tax:                   tax,
		Total:                 total,
	}, nil
}

// distanceFee charges only kilometers strictly beyond the included distance.
// Exactly FreeDistanceKm is free.
func (e PricingEngine) distanceFee(distanceKm float64) float64 {
	return math.Max(0, distanceKm-e.tariff.FreeDistanceKm) * e.tariff.PerKmRate
}

// weightFee charges the excess over the included weight at a single blended
// per-pound rate. The rate starts at ExcessWeightRate and decays by
// WeightRateDecay for each full band beyond the first, floored at
// MinExcessWeightRate. The blended rate applies uniformly to the ENTIRE excess,
// determined by total weight alone; it is not integrated band by band, so the
// marginal cost is non-monotonic at band boundaries. Load-bearing billing
// behavior: tests pin it down, do not "fix" it here.
func (e PricingEngine) weightFee(totalWeightLb float64) float64 {
	if totalWeightLb <= e.tariff.FreeWeightLb {
		return 0
	}

	excess := totalWeightLb - e.tariff.FreeWeightLb
	rate := e.tariff.ExcessWeightRate
	if totalWeightLb > e.tariff.WeightBandLb {
		k := math.Floor((totalWeightLb - e.tariff.WeightBandLb) / e.tariff.WeightBandLb)
		rate = math.Max(e.tariff.MinExcessWeightRate, e.tariff.ExcessWeightRate*math.Pow(e.tariff.WeightRateDecay, k))
	}

	return excess * rate
}

// packageFee charges every package beyond the first.
func (e PricingEngine) packageFee(count int) float64 {
	if count <= 1 {
		return 0
	}
	return float64(count-1) * e.tariff.ExtraPackageFee
}

// roundCents rounds to two decimal places, half away from zero.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
