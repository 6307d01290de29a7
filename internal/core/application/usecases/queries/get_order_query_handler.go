package queries

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// orderRow mirrors the orders table for the read side. Kept private to the
// query package; the write side has its own DTO in the repository adapter.
type orderRow struct {
	ID                         uuid.UUID  `gorm:"column:id"`
	CustomerID                 uuid.UUID  `gorm:"column:customer_id"`
	DriverID                   *uuid.UUID `gorm:"column:driver_id"`
	PickupAddress              string     `gorm:"column:pickup_address"`
	DropoffAddress             string     `gorm:"column:dropoff_address"`
	DistanceKm                 float64    `gorm:"column:distance_km"`
	Manifest                   []byte     `gorm:"column:manifest"`
	DeliveryWindow             int        `gorm:"column:delivery_window"`
	Status                     int        `gorm:"column:status"`
	TrackingNumber             string     `gorm:"column:tracking_number"`
	PriceBasePrice             float64    `gorm:"column:price_base_price"`
	PriceDistanceFee           float64    `gorm:"column:price_distance_fee"`
	PriceWeightFee             float64    `gorm:"column:price_weight_fee"`
	PricePackageFee            float64    `gorm:"column:price_package_fee"`
	PriceWindowMultiplier      float64    `gorm:"column:price_window_multiplier"`
	PriceSubtotal              float64    `gorm:"column:price_subtotal"`
	PriceLoyaltyDiscount       float64    `gorm:"column:price_loyalty_discount"`
	PriceSubtotalAfterDiscount float64    `gorm:"column:price_subtotal_after_discount"`
	PriceTax                   float64    `gorm:"column:price_tax"`
	PriceTotal                 float64    `gorm:"column:price_total"`
	PickupTime                 *time.Time `gorm:"column:pickup_time"`
	DeliveryTime               *time.Time `gorm:"column:delivery_time"`
	CreatedAt                  time.Time  `gorm:"column:created_at"`
	UpdatedAt                  time.Time  `gorm:"column:updated_at"`
}

// GetOrderQueryHandler retrieves single order views from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup by ID or tracking number.
// Returns errs.ErrObjectNotFound when no order matches.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context, query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	tx := h.db.WithContext(ctx).Table("orders")
	var row orderRow
	var err error

	switch {
	case query.OrderID() != nil:
		err = tx.Where("id = ?", query.OrderID().Bytes()).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
	default:
		err = tx.Where("tracking_number = ?", query.TrackingNumber().String()).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GetOrderQueryResponse{},
				errs.NewObjectNotFoundError("tracking number", query.TrackingNumber().String())
		}
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return toResponse(row)
}

func toResponse(row orderRow) (GetOrderQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	customerID, err := kernel.UUIDFromBytes(row.CustomerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	var driverID *kernel.UUID
	if row.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*row.DriverID)[:])
		if driverErr != nil {
			return GetOrderQueryResponse{}, driverErr
		}
		driverID = &dID
	}

	var manifest order.Manifest
	if err = json.Unmarshal(row.Manifest, &manifest); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		ID:             id,
		CustomerID:     customerID,
		DriverID:       driverID,
		PickupAddress:  row.PickupAddress,
		DropoffAddress: row.DropoffAddress,
		DistanceKm:     row.DistanceKm,
		Manifest:       manifest,
		Window:         order.DeliveryWindow(row.DeliveryWindow).String(),
		Status:         order.Status(row.Status).String(),
		TrackingNumber: row.TrackingNumber,
		Price: order.PriceBreakdown{
			BasePrice:             row.PriceBasePrice,
			DistanceFee:           row.PriceDistanceFee,
			WeightFee:             row.PriceWeightFee,
			PackageFee:            row.PricePackageFee,
			WindowMultiplier:      row.PriceWindowMultiplier,
			Subtotal:              row.PriceSubtotal,
			LoyaltyDiscount:       row.PriceLoyaltyDiscount,
			SubtotalAfterDiscount: row.PriceSubtotalAfterDiscount,
			Tax:                   row.PriceTax,
			Total:                 row.PriceTotal,
		},
		PickupTime:   row.PickupTime,
		DeliveryTime: row.DeliveryTime,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}
