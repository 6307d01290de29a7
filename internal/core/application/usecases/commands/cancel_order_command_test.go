package commands_test

import (
	"testing"

	"swiftdrop/internal/core/application/usecases/commands"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCancelOrderCommand(t *testing.T) {
	t.Run("creates a valid command", func(t *testing.T) {
		orderID := kernel.NewUUID()
		actorID := kernel.NewUUID()

		cmd, err := commands.NewCancelOrderCommand(orderID, actorID, order.RoleCustomer)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.Actor().ID().IsEqual(actorID))
		assert.Equal(t, order.RoleCustomer, cmd.Actor().Role())
	})

	t.Run("rejects an invalid order id", func(t *testing.T) {
		_, err := commands.NewCancelOrderCommand(kernel.UUID{}, kernel.NewUUID(), order.RoleCustomer)

		require.Error(t, err)
	})

	t.Run("rejects an invalid actor", func(t *testing.T) {
		_, err := commands.NewCancelOrderCommand(kernel.NewUUID(), kernel.NewUUID(), order.RoleUnknown)

		require.Error(t, err)
	})

	t.Run("zero value fails Validate", func(t *testing.T) {
		cmd := commands.CancelOrderCommand{}

		require.ErrorIs(t, cmd.Validate(), commands.ErrCancelOrderCommandIsNotConstructed)
	})
}
