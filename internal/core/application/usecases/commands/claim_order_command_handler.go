package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/pkg/errs"
)

// ClaimOrderCommandHandler handles exclusive order claiming.
//
// Exclusivity is enforced by the repository's conditional update: the handler
// reads the order, runs the claim in memory, then writes back conditioned on
// the status still being Pending. Of N concurrent claims on the same order
// exactly one write lands; every loser gets ErrOrderNoLongerAvailable. There
// is no in-process locking, the database is the arbiter.
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	timeout    time.Duration
}

// NewClaimOrderCommandHandler creates a handler for claim operations.
// The timeout bounds the whole claim round-trip; an expired deadline surfaces
// as ErrOperationTimedOut with an unknown outcome.
func NewClaimOrderCommandHandler(
	uowFactory OrderUoWFactory, timeout time.Duration,
) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		timeout:    timeout,
	}
}

// Handle processes the claim command.
//
// Returns ErrOrderNoLongerAvailable when the order exists but is not claimable
// anymore (already claimed, cancelled, or claimed between read and write),
// errs.ErrObjectNotFound when it never existed, and ErrOperationTimedOut when
// the deadline expired before the outcome was known.
func (h *ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	if err := h.claim(ctx, cmd); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %w", ErrOperationTimedOut, err)
		}
		return err
	}

	return nil
}

func (h *ClaimOrderCommandHandler) claim(ctx context.Context, cmd ClaimOrderCommand) error {
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
	if err = aggregate.Claim(cmd.DriverID(), time.Now().UTC()); err != nil {
		// A claim on a non-pending order is a lost race, not bad input.
		if errors.Is(err, order.ErrInvalidTransition) ||
			errors.Is(err, order.ErrDriverAlreadyAssigned) {
			return fmt.Errorf("%w: %w", ErrOrderNoLongerAvailable, err)
		}
		return err
	}

	if err = orderRepo.UpdateIfStatus(ctx, aggregate, expected); err != nil {
		if errors.Is(err, errs.ErrStateConflict) {
			return fmt.Errorf("%w: %w", ErrOrderNoLongerAvailable, err)
		}
		return err
	}

	return uow.Commit(ctx)
}
