package order

import (
	"fmt"

	"swiftdrop/internal/pkg/errs"
)

// DeliveryWindow is the named service level a customer picks for an order.
// Each window carries a fixed price multiplier applied to the pre-discount
// subtotal. Cutoff-time scheduling is an external concern; the core only
// prices the multiplier.
type DeliveryWindow int

const (
	// WindowUnknown represents an invalid or undefined delivery window.
	WindowUnknown DeliveryWindow = iota

	// NextDay is the standard service level with no surcharge.
	NextDay

	// SameDay delivers the same day at a 25% premium.
	SameDay

	// Rush delivers as fast as possible at a 75% premium.
	Rush
)

func getWindowStrings() map[DeliveryWindow]string {
	return map[DeliveryWindow]string{
		WindowUnknown: "Unknown",
		NextDay:       "NextDay",
		SameDay:       "SameDay",
		Rush:          "Rush",
	}
}

func getValidWindowStrings() map[DeliveryWindow]string {
	//nolint:exhaustive // WindowUnknown is intentionally excluded as it's invalid
	return map[DeliveryWindow]string{
		NextDay: "NextDay",
		SameDay: "SameDay",
		Rush:    "Rush",
	}
}

// DeliveryWindowFromString parses a window name as stored in the database or
// received over the API.
func DeliveryWindowFromString(s string) (DeliveryWindow, error) {
	for window, name := range getValidWindowStrings() {
		if name == s {
			return window, nil
		}
	}
	return WindowUnknown, errs.NewValueIsInvalidErrorWithCause(
		"delivery window", fmt.Errorf("%q is not a valid delivery window", s))
}

// Multiplier returns the price multiplier for the window.
// NextDay 1.0, SameDay 1.25, Rush 1.75. Unknown windows return 0 so that a
// missed validation shows up as an obviously broken price, not a silent default.
func (w DeliveryWindow) Multiplier() float64 {
	switch w {
	case NextDay:
		return 1.0
	case SameDay:
		return 1.25
	case Rush:
		return 1.75
	default:
		return 0
	}
}

// Validate checks if the DeliveryWindow value is valid.
func (w DeliveryWindow) Validate() error {
	if _, ok := getValidWindowStrings()[w]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery window", fmt.Errorf("%d is not a valid delivery window", w))
	}
	return nil
}

// String returns the human-readable name of the delivery window.
func (w DeliveryWindow) String() string {
	if str, ok := getWindowStrings()[w]; ok {
		return str
	}
	return "Unknown"
}
