package commands

import (
	"errors"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/errs"
	"swiftdrop/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand represents a driver's request for exclusive assignment of a
// pending order.
//
// Example:
//
//	cmd, err := NewClaimOrderCommand(orderID, driverID)
//	if err != nil {
//	    return fmt.Errorf("invalid claim: %w", err)
//	}
//
//	handler := NewClaimOrderCommandHandler(uowFactory, 3*time.Second)
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrOrderNoLongerAvailable):
//	    // another driver won the race
//	case errors.Is(err, ErrOperationTimedOut):
//	    // outcome unknown, tell the driver to check their assignments
//	}
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a command for a driver to claim an order.
// Validates both identifiers. Returns an error if any validation fails.
func NewClaimOrderCommand(orderID kernel.UUID, driverID kernel.UUID) (ClaimOrderCommand, error) {
	claimCommand := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		claimCommand.setOrderID(orderID),
		claimCommand.setDriverID(driverID),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return claimCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrClaimOrderCommandIsNotConstructed if validation fails.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being claimed.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the identifier of the claiming driver.
func (c ClaimOrderCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *ClaimOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ClaimOrderCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driver id", err)
	}

	c.driverID = driverID
	return nil
}
