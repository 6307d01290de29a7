package commands

import (
	"context"
	"errors"
	"time"

	"swiftdrop/internal/pkg/errs"
)

// ExpirePendingOrdersCommandHandler cancels orders nobody claimed within the
// TTL. Each expiration is a conditional write keyed on Pending, so a claim
// racing the sweep wins cleanly: the conflicting expiration is skipped, never
// applied over the claim.
type ExpirePendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewExpirePendingOrdersCommandHandler creates a handler for expiration sweeps.
// Requires an OrderUoWFactory for transactional persistence.
func NewExpirePendingOrdersCommandHandler(uowFactory OrderUoWFactory) ExpirePendingOrdersCommandHandler {
	return ExpirePendingOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the expiration sweep.
// Returns how many orders were expired. Orders claimed or cancelled mid-sweep
// are skipped; any other failure aborts the sweep.
func (h *ExpirePendingOrdersCommandHandler) Handle(
	ctx context.Context, cmd ExpirePendingOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	orderRepo := uow.OrderRepository()
	stale, err := orderRepo.GetAllPendingOlderThan(ctx, now.Add(-cmd.TTL()))
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, aggregate := range stale {
		expected := aggregate.Status()
		if err = aggregate.Expire(now); err != nil {
			continue
		}

		err = orderRepo.UpdateIfStatus(ctx, aggregate, expected)
		if errors.Is(err, errs.ErrStateConflict) || errors.Is(err, errs.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return expired, err
		}

		expired++
	}

	if err = uow.Commit(ctx); err != nil {
		return expired, err
	}

	return expired, nil
}
