package queries

import (
	"context"
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler retrieves claimable orders from the database.
// Reads straight from the orders table; the claim race itself is decided by
// the conditional write, so a slightly stale feed is harmless.
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for available-order queries.
// Requires a GORM database connection for query execution.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all pending, unassigned orders.
// Results are sorted oldest first.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]GetAvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	available := make([]GetAvailableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_number,
			pickup_address,
			dropoff_address,
			distance_km,
			delivery_window,
			price_total,
			created_at
		FROM orders
		WHERE status = ? AND driver_id IS NULL
		ORDER BY created_at
	`, order.Pending).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAvailableOrdersQueryResponse
		var id uuid.UUID
		var window int
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&resp.TrackingNumber,
			&resp.PickupAddress,
			&resp.DropoffAddress,
			&resp.DistanceKm,
			&window,
			&resp.PriceTotal,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Window = order.DeliveryWindow(window).String()
		resp.CreatedAt = createdAt
		available = append(available, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return available, nil
}
