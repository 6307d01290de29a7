package commands_test

import (
	"testing"
	"time"

	"swiftdrop/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpirePendingOrdersCommand(t *testing.T) {
	t.Run("creates a valid command", func(t *testing.T) {
		cmd, err := commands.NewExpirePendingOrdersCommand(30 * time.Minute)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, 30*time.Minute, cmd.TTL())
	})

	t.Run("rejects a non-positive TTL", func(t *testing.T) {
		_, err := commands.NewExpirePendingOrdersCommand(0)
		require.Error(t, err)

		_, err = commands.NewExpirePendingOrdersCommand(-time.Minute)
		require.Error(t, err)
	})

	t.Run("zero value fails Validate", func(t *testing.T) {
		cmd := commands.ExpirePendingOrdersCommand{}

		require.ErrorIs(t, cmd.Validate(), commands.ErrExpirePendingOrdersCommandIsNotConstructed)
	})
}
