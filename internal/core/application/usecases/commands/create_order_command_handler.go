package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/core/domain/services"
	"swiftdrop/internal/core/ports"
)

// trackingNumberAttempts bounds retries on tracking number collisions.
// The number carries 4 random characters on top of a timestamp, so a second
// collision in a row already means something is wrong with the clock or rng.
const trackingNumberAttempts = 3

// CreateOrderCommandHandler handles the business logic for order creation.
// Prices the order through the pricing engine, generates a tracking number,
// and persists the order in Pending status.
//
// The persisted price breakdown is exactly what CalculateQuote returns for the
// same inputs; the engine is deterministic and nothing re-prices afterwards.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     services.PricingEngine
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence and a PricingEngine.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory, engine services.PricingEngine,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle processes the order creation command.
// Prices the order, then inserts it with a fresh tracking number, retrying the
// insert with a regenerated number if it collides with an existing order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	price, err := h.engine.Quote(cmd.DistanceKm(), cmd.Manifest(), cmd.Window(), cmd.Loyalty())
	if err != nil {
		return err
	}

	// A unique violation aborts the whole transaction, so each attempt gets
	// its own unit of work with a freshly generated tracking number.
	for attempt := 1; ; attempt++ {
		err = h.addOnce(ctx, cmd, price)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ports.ErrTrackingNumberTaken) || attempt == trackingNumberAttempts {
			return fmt.Errorf("add order: %w", err)
		}
	}
}

func (h *CreateOrderCommandHandler) addOnce(
	ctx context.Context, cmd CreateOrderCommand, price order.PriceBreakdown,
) error {
	now := time.Now().UTC()
	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.PickupAddress(),
		cmd.DropoffAddress(),
		cmd.DistanceKm(),
		cmd.Manifest(),
		cmd.Window(),
		price,
		kernel.NewTrackingNumber(now),
		now,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
