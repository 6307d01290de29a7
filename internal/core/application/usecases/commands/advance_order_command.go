package commands

import (
	"errors"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand represents a request to move an order one step along the
// fulfillment chain (Assigned -> PickedUp -> InTransit -> Delivered).
// The target status is explicit so a stale client cannot accidentally skip a
// stage; whether the edge is legal is decided by the aggregate.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command to advance an order's status.
// Validates the order ID, the target status, and the acting party.
// Returns an error if any validation fails.
func NewAdvanceOrderCommand(
	orderID kernel.UUID, target order.Status, actorID kernel.UUID, role order.Role,
) (AdvanceOrderCommand, error) {
	advanceCommand := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		advanceCommand.setOrderID(orderID),
		advanceCommand.setTarget(target),
		advanceCommand.setActor(actorID, role),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return advanceCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdvanceOrderCommandIsNotConstructed if validation fails.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being advanced.
func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the status the order should advance to.
func (c AdvanceOrderCommand) Target() order.Status {
	return c.target
}

// Actor returns the party requesting the transition.
func (c AdvanceOrderCommand) Actor() order.Actor {
	return c.actor
}

func (c *AdvanceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *AdvanceOrderCommand) setActor(actorID kernel.UUID, role order.Role) error {
	actor, err := order.NewActor(actorID, role)
	if err != nil {
		return err
	}

	c.actor = actor
	return nil
}
