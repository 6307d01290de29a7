package queries

import (
	"context"

	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/core/domain/services"
)

// CalculateQuoteQueryHandler prices prospective orders.
// The only dependency is the pure pricing engine; no database is touched and
// the quote leaves no trace.
type CalculateQuoteQueryHandler struct {
	engine services.PricingEngine
}

// NewCalculateQuoteQueryHandler creates a handler for quote calculations.
func NewCalculateQuoteQueryHandler(engine services.PricingEngine) CalculateQuoteQueryHandler {
	return CalculateQuoteQueryHandler{engine: engine}
}

// Handle computes the price breakdown for the requested shipment.
func (h CalculateQuoteQueryHandler) Handle(
	_ context.Context, query CalculateQuoteQuery,
) (order.PriceBreakdown, error) {
	if err := query.Validate(); err != nil {
		return order.PriceBreakdown{}, err
	}

	return h.engine.Quote(query.DistanceKm(), query.Manifest(), query.Window(), query.Loyalty())
}
