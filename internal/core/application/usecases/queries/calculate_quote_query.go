// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read straight from the database (or, for pricing, from the
// pure pricing engine) and return response structs shaped for presentation,
// bypassing the aggregate and its transactional machinery.
package queries

import (
	"errors"
	"fmt"

	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/pkg/errs"
	"swiftdrop/internal/pkg/guard"
)

var ErrCalculateQuoteQueryIsNotConstructed = errors.New(
	"CalculateQuoteQuery must be created via NewCalculateQuoteQuery constructor",
)

// CalculateQuoteQuery requests a price for a prospective order without
// persisting anything. The returned breakdown is exactly what order creation
// would store for identical inputs.
//
// Example:
//
//	query, err := NewCalculateQuoteQuery(42.5, manifest, order.SameDay, order.Silver)
//	if err != nil {
//	    return fmt.Errorf("invalid quote request: %w", err)
//	}
//
//	handler := NewCalculateQuoteQueryHandler(engine)
//	breakdown, err := handler.Handle(ctx, query)
type CalculateQuoteQuery struct { //nolint:recvcheck //using for validation
	distanceKm float64
	manifest   order.Manifest
	window     order.DeliveryWindow
	loyalty    order.LoyaltyTier

	guard guard.ConstructorGuard
}

// NewCalculateQuoteQuery creates a quote request.
// Validates the distance, manifest, window, and loyalty tier.
// Returns an error if any validation fails.
func NewCalculateQuoteQuery(
	distanceKm float64,
	manifest order.Manifest,
	window order.DeliveryWindow,
	loyalty order.LoyaltyTier,
) (CalculateQuoteQuery, error) {
	quoteQuery := CalculateQuoteQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		quoteQuery.setDistanceKm(distanceKm),
		quoteQuery.setManifest(manifest),
		quoteQuery.setWindow(window),
		quoteQuery.setLoyalty(loyalty),
	); err != nil {
		return CalculateQuoteQuery{}, err
	}

	return quoteQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrCalculateQuoteQueryIsNotConstructed if validation fails.
func (q CalculateQuoteQuery) Validate() error {
	return q.guard.Validate(ErrCalculateQuoteQueryIsNotConstructed)
}

// DistanceKm returns the driving distance to price.
func (q CalculateQuoteQuery) DistanceKm() float64 {
	return q.distanceKm
}

// Manifest returns the package manifest to price.
func (q CalculateQuoteQuery) Manifest() order.Manifest {
	return q.manifest
}

// Window returns the delivery window to price.
func (q CalculateQuoteQuery) Window() order.DeliveryWindow {
	return q.window
}

// Loyalty returns the loyalty tier to price.
func (q CalculateQuoteQuery) Loyalty() order.LoyaltyTier {
	return q.loyalty
}

func (q *CalculateQuoteQuery) setDistanceKm(distanceKm float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"distance", fmt.Errorf("%.2f km is negative", distanceKm))
	}

	q.distanceKm = distanceKm
	return nil
}

func (q *CalculateQuoteQuery) setManifest(manifest order.Manifest) error {
	if err := manifest.Validate(); err != nil {
		return err
	}

	q.manifest = manifest
	return nil
}

func (q *CalculateQuoteQuery) setWindow(window order.DeliveryWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}

	q.window = window
	return nil
}

func (q *CalculateQuoteQuery) setLoyalty(loyalty order.LoyaltyTier) error {
	if err := loyalty.Validate(); err != nil {
		return err
	}

	q.loyalty = loyalty
	return nil
}
