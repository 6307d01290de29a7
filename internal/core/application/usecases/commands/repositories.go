// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// and a conditional write keyed on the status the handler read.
package commands

import (
	"context"
	"errors"

	"swiftdrop/internal/core/ports"
)

// Sentinels for lifecycle races. Handlers translate the repository's low-level
// conflict signal into one of these so callers can distinguish "somebody beat
// you to it" from "you sent nonsense".
var (
	// ErrOrderNoLongerAvailable reports a claim that lost the race: the order
	// existed but was no longer open by the time the write landed.
	ErrOrderNoLongerAvailable = errors.New("order is no longer available for claiming")

	// ErrOrderStateChanged reports a transition that hit a stale status: the
	// order moved between the handler's read and its conditional write.
	// Callers should re-fetch and retry or surface a conflict.
	ErrOrderStateChanged = errors.New("order state changed concurrently")

	// ErrOperationTimedOut reports that a command ran out of time with an
	// unknown outcome. It is deliberately not converted into a business error:
	// the write may or may not have landed.
	ErrOperationTimedOut = errors.New("operation timed out, outcome unknown")
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
