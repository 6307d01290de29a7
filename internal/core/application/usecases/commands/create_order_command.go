package commands

import (
	"errors"
	"fmt"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/pkg/errs"
	"swiftdrop/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to create a new delivery order.
// Carries the resolved driving distance; address-to-distance resolution happens
// at the edge so a failed lookup is rejected before a command ever exists.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(
//	    orderID, customerID, "12 Harbor St", "77 Mill Rd",
//	    10, manifest, order.NextDay, order.Bronze,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, engine)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	customerID     kernel.UUID
	pickupAddress  string
	dropoffAddress string
	distanceKm     float64
	manifest       order.Manifest
	window         order.DeliveryWindow
	loyalty        order.LoyaltyTier

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Validates identifiers, addresses, distance, manifest, window, and loyalty tier.
// Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	pickupAddress string,
	dropoffAddress string,
	distanceKm float64,
	manifest order.Manifest,
	window order.DeliveryWindow,
	loyalty order.LoyaltyTier,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setAddresses(pickupAddress, dropoffAddress),
		orderCommand.setDistanceKm(distanceKm),
		orderCommand.setManifest(manifest),
		orderCommand.setWindow(window),
		orderCommand.setLoyalty(loyalty),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identifier of the customer placing the order.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// PickupAddress returns the pickup address text.
func (c CreateOrderCommand) PickupAddress() string {
	return c.pickupAddress
}

// DropoffAddress returns the dropoff address text.
func (c CreateOrderCommand) DropoffAddress() string {
	return c.dropoffAddress
}

// DistanceKm returns the resolved driving distance.
func (c CreateOrderCommand) DistanceKm() float64 {
	return c.distanceKm
}

// Manifest returns the package manifest.
func (c CreateOrderCommand) Manifest() order.Manifest {
	return c.manifest
}

// Window returns the chosen delivery window.
func (c CreateOrderCommand) Window() order.DeliveryWindow {
	return c.window
}

// Loyalty returns the customer's loyalty tier at order time.
func (c CreateOrderCommand) Loyalty() order.LoyaltyTier {
	return c.loyalty
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setAddresses(pickup string, dropoff string) error {
	if pickup == "" {
		return errs.NewValueIsRequiredError("pickup address")
	}
	if dropoff == "" {
		return errs.NewValueIsRequiredError("dropoff address")
	}

	c.pickupAddress = pickup
	c.dropoffAddress = dropoff
	return nil
}

func (c *CreateOrderCommand) setDistanceKm(distanceKm float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"distance", fmt.Errorf("%.2f km is negative", distanceKm))
	}

	c.distanceKm = distanceKm
	return nil
}

func (c *CreateOrderCommand) setManifest(manifest order.Manifest) error {
	if err := manifest.Validate(); err != nil {
		return err
	}

	c.manifest = manifest
	return nil
}

func (c *CreateOrderCommand) setWindow(window order.DeliveryWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}

	c.window = window
	return nil
}

func (c *CreateOrderCommand) setLoyalty(loyalty order.LoyaltyTier) error {
	if err := loyalty.Validate(); err != nil {
		return err
	}

	c.loyalty = loyalty
	return nil
}
