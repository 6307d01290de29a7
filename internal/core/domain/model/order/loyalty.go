package order

import (
	"fmt"

	"swiftdrop/internal/pkg/errs"
)

// Delivered-order counts at which a customer moves up a loyalty tier.
const (
	SilverTierThreshold = 5
	GoldTierThreshold   = 15
)

// LoyaltyTier is a discount bracket derived from a customer's historical
// delivered-order count. The tier is resolved by the caller (account service)
// and passed into pricing as an input; the engine never counts orders itself.
type LoyaltyTier int

const (
	// TierUnknown represents an invalid or undefined loyalty tier.
	TierUnknown LoyaltyTier = iota

	// Bronze is the default tier with no discount.
	Bronze

	// Silver grants a 10% discount on the pre-tax subtotal.
	Silver

	// Gold grants a 15% discount on the pre-tax subtotal.
	Gold
)

func getTierStrings() map[LoyaltyTier]string {
	return map[LoyaltyTier]string{
		TierUnknown: "Unknown",
		Bronze:      "Bronze",
		Silver:      "Silver",
		Gold:        "Gold",
	}
}

func getValidTierStrings() map[LoyaltyTier]string {
	//nolint:exhaustive // TierUnknown is intentionally excluded as it's invalid
	return map[LoyaltyTier]string{
		Bronze: "Bronze",
		Silver: "Silver",
		Gold:   "Gold",
	}
}

// LoyaltyTierFromString parses a tier name received over the API.
func LoyaltyTierFromString(s string) (LoyaltyTier, error) {
	for tier, name := range getValidTierStrings() {
		if name == s {
			return tier, nil
		}
	}
	return TierUnknown, errs.NewValueIsInvalidErrorWithCause(
		"loyalty tier", fmt.Errorf("%q is not a valid loyalty tier", s))
}

// LoyaltyTierForDeliveredOrders maps a customer's delivered-order count to the
// tier it earns: 15 or more deliveries reach Gold, 5 or more reach Silver,
// everyone else is Bronze.
func LoyaltyTierForDeliveredOrders(delivered int) LoyaltyTier {
	switch {
	case delivered >= GoldTierThreshold:
		return Gold
	case delivered >= SilverTierThreshold:
		return Silver
	default:
		return Bronze
	}
}

// DiscountPercent returns the discount applied to the pre-tax subtotal.
// Bronze 0, Silver 10, Gold 15. Unknown tiers return 0.
func (t LoyaltyTier) DiscountPercent() float64 {
	switch t {
	case Silver:
		return 10
	case Gold:
		return 15
	default:
		return 0
	}
}

// Validate checks if the LoyaltyTier value is valid.
func (t LoyaltyTier) Validate() error {
	if _, ok := getValidTierStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"loyalty tier", fmt.Errorf("%d is not a valid loyalty tier", t))
	}
	return nil
}

// String returns the human-readable name of the loyalty tier.
func (t LoyaltyTier) String() string {
	if str, ok := getTierStrings()[t]; ok {
		return str
	}
	return "Unknown"
}
