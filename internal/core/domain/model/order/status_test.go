package order_test

import (
	"fmt"
	"testing"

	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Pending))
		assert.Equal(t, 2, int(order.Assigned))
		assert.Equal(t, 3, int(order.PickedUp))
		assert.Equal(t, 4, int(order.InTransit))
		assert.Equal(t, 5, int(order.Delivered))
		assert.Equal(t, 6, int(order.Cancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Pending,
			order.Assigned,
			order.PickedUp,
			order.InTransit,
			order.Delivered,
			order.Cancelled,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "status is invalid")
	})

	t.Run("should reject out-of-range status values", func(t *testing.T) {
		for _, status := range []order.Status{order.Status(-1), order.Status(7), order.Status(100)} {
			err := status.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return correct names", func(t *testing.T) {
		assert.Equal(t, "Pending", order.Pending.String())
		assert.Equal(t, "Assigned", order.Assigned.String())
		assert.Equal(t, "PickedUp", order.PickedUp.String())
		assert.Equal(t, "InTransit", order.InTransit.String())
		assert.Equal(t, "Delivered", order.Delivered.String())
		assert.Equal(t, "Cancelled", order.Cancelled.String())
	})

	t.Run("should return Unknown for invalid values", func(t *testing.T) {
		assert.Equal(t, "Unknown", order.Unknown.String())
		assert.Equal(t, "Unknown", order.Status(42).String())
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("round-trips all valid statuses", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Pending, order.Assigned, order.PickedUp,
			order.InTransit, order.Delivered, order.Cancelled,
		} {
			parsed, err := order.StatusFromString(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("Unknown")
		require.Error(t, err)

		_, err = order.StatusFromString("shipped")
		require.Error(t, err)
	})
}

func TestStatus_Claim(t *testing.T) {
	t.Run("Pending can be claimed", func(t *testing.T) {
		newStatus, err := order.Pending.Claim()

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, newStatus)
	})

	t.Run("every other status rejects a claim", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Assigned, order.PickedUp, order.InTransit,
			order.Delivered, order.Cancelled,
		} {
			_, err := status.Claim()

			require.Error(t, err)
			assert.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestStatus_Advance(t *testing.T) {
	t.Run("legal edges succeed", func(t *testing.T) {
		edges := map[order.Status]order.Status{
			order.Assigned:  order.PickedUp,
			order.PickedUp:  order.InTransit,
			order.InTransit: order.Delivered,
		}

		for from, to := range edges {
			newStatus, err := from.Advance(to)

			require.NoError(t, err)
			assert.Equal(t, to, newStatus)
		}
	})

	t.Run("Pending cannot advance to Assigned except through claim", func(t *testing.T) {
		_, err := order.Pending.Advance(order.Assigned)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("skipping a stage is rejected with the specific edge", func(t *testing.T) {
		_, err := order.Pending.Advance(order.Delivered)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "Pending -> Delivered")
	})

	t.Run("terminal states never advance", func(t *testing.T) {
		for _, terminal := range []order.Status{order.Delivered, order.Cancelled} {
			for _, target := range []order.Status{
				order.Assigned, order.PickedUp, order.InTransit, order.Delivered,
			} {
				_, err := terminal.Advance(target)
				require.Error(t, err)
			}
		}
	})

	t.Run("advancing to an invalid target is rejected", func(t *testing.T) {
		_, err := order.Assigned.Advance(order.Unknown)
		require.Error(t, err)
	})
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("Pending can be cancelled", func(t *testing.T) {
		newStatus, err := order.Pending.Cancel()

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, newStatus)
	})

	t.Run("Assigned can be cancelled", func(t *testing.T) {
		newStatus, err := order.Assigned.Cancel()

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, newStatus)
	})

	t.Run("PickedUp and later cannot be cancelled", func(t *testing.T) {
		for _, status := range []order.Status{
			order.PickedUp, order.InTransit, order.Delivered, order.Cancelled,
		} {
			_, err := status.Cancel()

			require.Error(t, err)
			assert.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Assigned.IsTerminal())
	assert.False(t, order.PickedUp.IsTerminal())
	assert.False(t, order.InTransit.IsTerminal())
}

func TestStatus_ValidateCanHaveDriver(t *testing.T) {
	t.Run("Pending must not have a driver", func(t *testing.T) {
		require.NoError(t, order.Pending.ValidateCanHaveDriver(false))
		require.Error(t, order.Pending.ValidateCanHaveDriver(true))
	})

	t.Run("active and delivered statuses require a driver", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Assigned, order.PickedUp, order.InTransit, order.Delivered,
		} {
			require.NoError(t, status.ValidateCanHaveDriver(true))
			require.Error(t, status.ValidateCanHaveDriver(false))
		}
	})

	t.Run("Cancelled accepts either", func(t *testing.T) {
		require.NoError(t, order.Cancelled.ValidateCanHaveDriver(true))
		require.NoError(t, order.Cancelled.ValidateCanHaveDriver(false))
	})
}
