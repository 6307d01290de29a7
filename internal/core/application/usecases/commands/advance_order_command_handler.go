package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"swiftdrop/internal/pkg/errs"
)

// AdvanceOrderCommandHandler handles status advancement along the fulfillment
// chain. Authorization (assigned driver or admin) and edge legality are decided
// by the aggregate; the handler contributes the read-transition-conditional-write
// discipline that protects against concurrent modification.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAdvanceOrderCommandHandler creates a handler for advance operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the advance command.
// Returns ErrOrderStateChanged when the order moved between the handler's read
// and its conditional write; the caller should re-fetch and reassess.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	expected := aggregate.Status()
	if err = aggregate.Advance(cmd.Target(), cmd.Actor(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.UpdateIfStatus(ctx, aggregate, expected); err != nil {
		if errors.Is(err, errs.ErrStateConflict) {
			return fmt.Errorf("%w: %w", ErrOrderStateChanged, err)
		}
		return err
	}

	return uow.Commit(ctx)
}
