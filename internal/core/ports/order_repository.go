// Package ports defines repository and gateway interfaces for the delivery domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"errors"
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"
)

// ErrTrackingNumberTaken reports a tracking number collision on insert.
// The number carries only 4 random characters, so collisions are rare but
// expected; callers regenerate and retry.
var ErrTrackingNumberTaken = errors.New("tracking number is already taken")

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and claim state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	// Returns ErrTrackingNumberTaken when the tracking number collides with
	// an existing order.
	Add(ctx context.Context, aggregate *order.Order) error

	// UpdateIfStatus persists changes to an existing order aggregate, but only
	// if its stored status still equals expected. This is the conditional write
	// every lifecycle transition goes through: the caller loads the order, runs
	// the transition in memory, then writes back conditioned on the status it
	// read. When the stored status no longer matches, nothing is written and
	// errs.ErrStateConflict is returned; when the order does not exist at all,
	// errs.ErrObjectNotFound is returned instead.
	UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its current status and claim state.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByTrackingNumber retrieves an order aggregate by its public tracking number.
	GetByTrackingNumber(ctx context.Context, trackingNumber kernel.TrackingNumber) (*order.Order, error)

	// GetAllPending retrieves all orders that are open for drivers to claim,
	// oldest first.
	GetAllPending(ctx context.Context) ([]*order.Order, error)

	// GetAllPendingOlderThan retrieves pending orders created at or before the
	// cutoff. Used by the expiration job to sweep orders nobody claimed.
	GetAllPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
