package order_test

import (
	"testing"

	"swiftdrop/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceBreakdown_Validate(t *testing.T) {
	t.Run("accepts a consistent breakdown", func(t *testing.T) {
		p := order.PriceBreakdown{
			BasePrice:             15.00,
			DistanceFee:           25.99,
			WeightFee:             40.25,
			PackageFee:            10.00,
			WindowMultiplier:      1.0,
			Subtotal:              91.24,
			SubtotalAfterDiscount: 91.24,
			Tax:                   4.56,
			Total:                 95.80,
		}

		require.NoError(t, p.Validate())
	})

	t.Run("tolerates a one-cent rounding gap", func(t *testing.T) {
		p := validPrice()
		p.Total += order.PriceRoundingTolerance

		require.NoError(t, p.Validate())
	})

	t.Run("rejects a total that does not add up", func(t *testing.T) {
		p := validPrice()
		p.Total += 0.02

		err := p.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not equal subtotal after discount")
	})

	t.Run("rejects negative fields", func(t *testing.T) {
		p := validPrice()
		p.WeightFee = -1

		require.Error(t, p.Validate())
	})
}

func TestPriceBreakdown_IsEqual(t *testing.T) {
	a := validPrice()
	b := validPrice()

	assert.True(t, a.IsEqual(b))

	b.Tax += 0.01
	assert.False(t, a.IsEqual(b))
}
