package order

import (
	"fmt"

	"swiftdrop/internal/pkg/errs"
)

// PackageItem describes one package in an order's manifest.
// Weight may be zero (an envelope still occupies a stop); dimensions must be
// positive. Fields are exported because the item is a plain data value that is
// serialized into the orders table and over the API.
type PackageItem struct {
	WeightLb float64 `json:"weight_lb"`
	LengthIn float64 `json:"length_in"`
	WidthIn  float64 `json:"width_in"`
	HeightIn float64 `json:"height_in"`
	Fragile  bool    `json:"fragile"`
}

// Validate checks the item's physical plausibility.
func (p PackageItem) Validate() error {
	if p.WeightLb < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"package weight", fmt.Errorf("%.2f lb is negative", p.WeightLb))
	}

	for name, dim := range map[string]float64{
		"package length": p.LengthIn,
		"package width":  p.WidthIn,
		"package height": p.HeightIn,
	} {
		if dim <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				name, fmt.Errorf("%.2f in is not greater than 0", dim))
		}
	}

	return nil
}

// Manifest is the ordered list of packages in a delivery order.
// Insertion order is irrelevant for pricing, but the count matters: every
// package beyond the first adds a handling fee. An empty manifest is invalid.
type Manifest []PackageItem

// Validate rejects an empty manifest and any invalid item.
func (m Manifest) Validate() error {
	if len(m) == 0 {
		return errs.NewValueIsRequiredError("manifest must contain at least one package")
	}

	for i, item := range m {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("manifest item %d", i), err)
		}
	}

	return nil
}

// TotalWeightLb returns the combined weight of all packages.
func (m Manifest) TotalWeightLb() float64 {
	var total float64
	for _, item := range m {
		total += item.WeightLb
	}
	return total
}

// Count returns the number of packages in the manifest.
func (m Manifest) Count() int {
	return len(m)
}
