// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with indexing for
// the hot paths: status scans for the driver feed and expiration sweeps, and
// the unique tracking number lookup.
type OrderDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID     uuid.UUID  `gorm:"type:uuid;index"`
	DriverID       *uuid.UUID `gorm:"type:uuid;index"`
	PickupAddress  string
	DropoffAddress string
	DistanceKm     float64
	Manifest       []byte   `gorm:"type:jsonb"`
	DeliveryWindow int      `gorm:"column:delivery_window"`
	Status         int      `gorm:"index"`
	TrackingNumber string   `gorm:"uniqueIndex"`
	Price          PriceDTO `gorm:"embedded;embeddedPrefix:price_"`
	PickupTime     *time.Time
	DeliveryTime   *time.Time
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// PriceDTO represents the embedded price breakdown columns within the order
// table. The full breakdown is persisted so the price shown later is exactly
// the price charged, independent of any tariff change.
type PriceDTO struct {
	BasePrice             float64
	DistanceFee           float64
	WeightFee             float64
	PackageFee            float64
	WindowMultiplier      float64
	Subtotal              float64
	LoyaltyDiscount       float64
	SubtotalAfterDiscount float64
	Tax                   float64
	Total                 float64
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including the optional driver assignment.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	manifest, err := json.Marshal(aggregate.Manifest())
	if err != nil {
		return OrderDTO{}, err
	}

	price := aggregate.Price()
	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		CustomerID:     aggregate.CustomerID().Bytes(),
		DriverID:       driverID,
		PickupAddress:  aggregate.PickupAddress(),
		DropoffAddress: aggregate.DropoffAddress(),
		DistanceKm:     aggregate.DistanceKm(),
		Manifest:       manifest,
		DeliveryWindow: int(aggregate.Window()),
		Status:         int(aggregate.Status()),
		TrackingNumber: aggregate.TrackingNumber().String(),
		Price: PriceDTO{
			BasePrice:             price.BasePrice,
			DistanceFee:           price.DistanceFee,
			WeightFee:             price.WeightFee,
			PackageFee:            price.PackageFee,
			WindowMultiplier:      price.WindowMultiplier,
			Subtotal:              price.Subtotal,
			LoyaltyDiscount:       price.LoyaltyDiscount,
			SubtotalAfterDiscount: price.SubtotalAfterDiscount,
			Tax:                   price.Tax,
			Total:                 price.Total,
		},
		PickupTime:   aggregate.PickupTime(),
		DeliveryTime: aggregate.DeliveryTime(),
		CreatedAt:    aggregate.CreatedAt(),
		UpdatedAt:    aggregate.UpdatedAt(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status, driver assignment, and
// lifecycle timestamps using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}

		driverID = &dID
	}

	var manifest order.Manifest
	if err = json.Unmarshal(dto.Manifest, &manifest); err != nil {
		return nil, err
	}

	trackingNumber, err := kernel.TrackingNumberFromString(dto.TrackingNumber)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		customerID,
		driverID,
		dto.PickupAddress,
		dto.DropoffAddress,
		dto.DistanceKm,
		manifest,
		order.DeliveryWindow(dto.DeliveryWindow),
		order.PriceBreakdown{
			BasePrice:             dto.Price.BasePrice,
			DistanceFee:           dto.Price.DistanceFee,
			WeightFee:             dto.Price.WeightFee,
			PackageFee:            dto.Price.PackageFee,
			WindowMultiplier:      dto.Price.WindowMultiplier,
			Subtotal:              dto.Price.Subtotal,
			LoyaltyDiscount:       dto.Price.LoyaltyDiscount,
			SubtotalAfterDiscount: dto.Price.SubtotalAfterDiscount,
			Tax:                   dto.Price.Tax,
			Total:                 dto.Price.Total,
		},
		order.Status(dto.Status),
		trackingNumber,
		dto.PickupTime,
		dto.DeliveryTime,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
