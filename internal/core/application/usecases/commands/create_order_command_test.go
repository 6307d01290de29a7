package commands_test

import (
	"testing"

	"swiftdrop/internal/core/application/usecases/commands"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validManifest() order.Manifest {
	return order.Manifest{
		{WeightLb: 20, LengthIn: 12, WidthIn: 8, HeightIn: 6},
	}
}

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("creates a valid command", func(t *testing.T) {
		orderID := kernel.NewUUID()
		customerID := kernel.NewUUID()

		cmd, err := commands.NewCreateOrderCommand(
			orderID, customerID, "12 Harbor St", "77 Mill Rd",
			10, validManifest(), order.NextDay, order.Bronze,
		)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.CustomerID().IsEqual(customerID))
		assert.Equal(t, "12 Harbor St", cmd.PickupAddress())
		assert.Equal(t, "77 Mill Rd", cmd.DropoffAddress())
		assert.InDelta(t, 10.0, cmd.DistanceKm(), 1e-9)
		assert.Equal(t, order.NextDay, cmd.Window())
		assert.Equal(t, order.Bronze, cmd.Loyalty())
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		orderID := kernel.NewUUID()
		customerID := kernel.NewUUID()

		cases := map[string]func() error{
			"invalid order id": func() error {
				_, err := commands.NewCreateOrderCommand(
					kernel.UUID{}, customerID, "a", "b", 10, validManifest(), order.NextDay, order.Bronze)
				return err
			},
			"invalid customer id": func() error {
				_, err := commands.NewCreateOrderCommand(
					orderID, kernel.UUID{}, "a", "b", 10, validManifest(), order.NextDay, order.Bronze)
				return err
			},
			"empty pickup address": func() error {
				_, err := commands.NewCreateOrderCommand(
					orderID, customerID, "", "b", 10, validManifest(), order.NextDay, order.Bronze)
				return err
			},
			"empty dropoff address": func() error {
				_, err := commands.NewCreateOrderCommand(
					orderID, customerID, "a", "", 10, validManifest(), order.NextDay, order.Bronze)
				return err
			},
			"negative distance": func() error {
				_, err := commands.NewCreateOrderCommand(
					orderID, customerID, "a", "b", -1, validManifest(), order.NextDay, order.Bronze)
				return err
			},
			"empty manifest": func() error {
				_, err := commands.NewCreateOrderCommand(
					orderID, customerID, "a", "b", 10, order.Manifest{}, order.NextDay, order.Bronze)
				return err
			},
			"invalid window": func() error {
				_, err := commands.NewCreateOrderCommand(
					orderID, customerID, "a", "b", 10, validManifest(), order.WindowUnknown, order.Bronze)
				return err
			},
			"invalid loyalty tier": func() error {
				_, err := commands.NewCreateOrderCommand(
					orderID, customerID, "a", "b", 10, validManifest(), order.NextDay, order.TierUnknown)
				return err
			},
		}

		for name, build := range cases {
			t.Run(name, func(t *testing.T) {
				require.Error(t, build())
			})
		}
	})

	t.Run("zero value fails Validate", func(t *testing.T) {
		cmd := commands.CreateOrderCommand{}

		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
