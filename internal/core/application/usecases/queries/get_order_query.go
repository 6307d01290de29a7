package queries

import (
	"errors"
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery or NewGetOrderByTrackingNumberQuery constructor",
)

// GetOrderQuery retrieves a single order view, either by its internal ID or by
// its customer-facing tracking number. Exactly one lookup key is set, decided
// by which constructor built the query.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return fmt.Errorf("invalid order id: %w", err)
//	}
//
//	handler := NewGetOrderQueryHandler(db)
//	view, err := handler.Handle(ctx, query)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID        *kernel.UUID
	trackingNumber *kernel.TrackingNumber

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve an order by its internal ID.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: &orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// NewGetOrderByTrackingNumberQuery creates a query to retrieve an order by its
// tracking number, the lookup customers use.
func NewGetOrderByTrackingNumberQuery(trackingNumber kernel.TrackingNumber) (GetOrderQuery, error) {
	if err := trackingNumber.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		trackingNumber: &trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the lookup ID, or nil for tracking-number lookups.
func (q GetOrderQuery) OrderID() *kernel.UUID {
	return q.orderID
}

// TrackingNumber returns the lookup tracking number, or nil for ID lookups.
func (q GetOrderQuery) TrackingNumber() *kernel.TrackingNumber {
	return q.trackingNumber
}

// GetOrderQueryResponse is the full order view returned to customers, drivers,
// and operators.
type GetOrderQueryResponse struct {
	ID             kernel.UUID
	CustomerID     kernel.UUID
	DriverID       *kernel.UUID
	PickupAddress  string
	DropoffAddress string
	DistanceKm     float64
	Manifest       order.Manifest
	Window         string
	Status         string
	TrackingNumber string
	Price          order.PriceBreakdown
	PickupTime     *time.Time
	DeliveryTime   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
