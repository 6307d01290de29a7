package queries

import (
	"errors"
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/guard"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery retrieves all orders open for drivers to claim.
// Returns pending, unassigned orders oldest first so the longest-waiting
// shipments surface at the top of a driver's feed.
//
// Example:
//
//	query := NewGetAvailableOrdersQuery()
//	handler := NewGetAvailableOrdersQueryHandler(db)
//
//	available, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get available orders: %w", err)
//	}
//	fmt.Printf("%d orders waiting for a driver\n", len(available))
type GetAvailableOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery creates a query to retrieve claimable orders.
// This is a parameterless query that fetches all pending orders.
func NewGetAvailableOrdersQuery() GetAvailableOrdersQuery {
	return GetAvailableOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAvailableOrdersQueryIsNotConstructed if validation fails.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

// GetAvailableOrdersQueryResponse is the driver-facing summary of a claimable
// order: enough to decide whether the job is worth taking, nothing more.
type GetAvailableOrdersQueryResponse struct {
	ID             kernel.UUID
	TrackingNumber string
	PickupAddress  string
	DropoffAddress string
	DistanceKm     float64
	Window         string
	PriceTotal     float64
	CreatedAt      time.Time
}
