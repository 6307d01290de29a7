package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"swiftdrop/internal/pkg/errs"
)

// CancelOrderCommandHandler handles order cancellation.
// Uses the same read-transition-conditional-write discipline as every other
// lifecycle transition, so a cancellation racing a claim resolves cleanly:
// whichever write lands first wins and the loser sees a state change.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for cancel operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancel command.
// Returns ErrOrderStateChanged when the order moved between the handler's read
// and its conditional write.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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
	if err = aggregate.Cancel(cmd.Actor(), time.Now().UTC()); err != nil {
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
