package commands

import (
	"errors"
	"fmt"
	"time"

	"swiftdrop/internal/pkg/errs"
	"swiftdrop/internal/pkg/guard"
)

var ErrExpirePendingOrdersCommandIsNotConstructed = errors.New(
	"ExpirePendingOrdersCommand must be created via NewExpirePendingOrdersCommand constructor",
)

// ExpirePendingOrdersCommand represents a sweep of orders left Pending longer
// than the given time-to-live. Issued periodically by the background job.
type ExpirePendingOrdersCommand struct { //nolint:recvcheck //using for validation
	ttl time.Duration

	guard guard.ConstructorGuard
}

// NewExpirePendingOrdersCommand creates a command to expire stale pending orders.
// The TTL must be positive. Returns an error if validation fails.
func NewExpirePendingOrdersCommand(ttl time.Duration) (ExpirePendingOrdersCommand, error) {
	expireCommand := ExpirePendingOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := expireCommand.setTTL(ttl); err != nil {
		return ExpirePendingOrdersCommand{}, err
	}

	return expireCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrExpirePendingOrdersCommandIsNotConstructed if validation fails.
func (c ExpirePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingOrdersCommandIsNotConstructed)
}

// TTL returns how long an order may stay Pending before it is expired.
func (c ExpirePendingOrdersCommand) TTL() time.Duration {
	return c.ttl
}

func (c *ExpirePendingOrdersCommand) setTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"ttl", fmt.Errorf("%s is not greater than 0", ttl))
	}

	c.ttl = ttl
	return nil
}
