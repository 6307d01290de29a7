package order

import (
	"errors"
	"fmt"
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrDriverAlreadyAssigned is returned when a claim reaches an order that
	// already carries a driver. The driver is set exactly once, never reassigned.
	ErrDriverAlreadyAssigned = errors.New("order already has an assigned driver")
)

// Order represents a point-to-point delivery order. It is the aggregate root that
// manages the order lifecycle from creation through claim, pickup, and delivery.
//
// Order follows these invariants:
//   - Must have valid order and customer identifiers and a valid tracking number
//   - Distance must be non-negative; the manifest must contain at least one package
//   - The driver is set exactly once, by a successful claim, and never reassigned
//   - Status transitions follow the rules encoded in Status
//   - Can only be created through NewOrder or rehydrated through RestoreOrder
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods. Transition methods mutate the in-memory
// aggregate only; persistence is expected to apply them with a conditional
// update keyed on the prior status, so a stale copy can never overwrite a
// concurrent change.
type Order struct {
	id             kernel.UUID
	customerID     kernel.UUID
	driverID       *kernel.UUID
	pickupAddress  string
	dropoffAddress string
	distanceKm     float64
	manifest       Manifest
	window         DeliveryWindow
	price          PriceBreakdown
	status         Status
	trackingNumber kernel.TrackingNumber
	pickupTime     *time.Time
	deliveryTime   *time.Time
	createdAt      time.Time
	updatedAt      time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Pending status with validation.
// The price breakdown is computed by the pricing engine before construction and
// stored verbatim; the aggregate never re-prices itself.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	pickupAddress string,
	dropoffAddress string,
	distanceKm float64,
	manifest Manifest,
	window DeliveryWindow,
	price PriceBreakdown,
	trackingNumber kernel.TrackingNumber,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setAddresses(pickupAddress, dropoffAddress),
		o.setDistanceKm(distanceKm),
		o.setManifest(manifest),
		o.setWindow(window),
		o.setPrice(price),
		o.setTrackingNumber(trackingNumber),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rehydrates an Order from persistence without re-running creation
// rules that only apply to new orders. It still validates the stored state:
// the status must be a real status and must be consistent with the presence of
// a driver.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	driverID *kernel.UUID,
	pickupAddress string,
	dropoffAddress string,
	distanceKm float64,
	manifest Manifest,
	window DeliveryWindow,
	price PriceBreakdown,
	status Status,
	trackingNumber kernel.TrackingNumber,
	pickupTime *time.Time,
	deliveryTime *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		status.Validate(),
		status.ValidateCanHaveDriver(driverID != nil),
	); err != nil {
		return nil, err
	}

	o, err := NewOrder(
		id, customerID, pickupAddress, dropoffAddress,
		distanceKm, manifest, window, price, trackingNumber, createdAt,
	)
	if err != nil {
		return nil, err
	}

	o.status = status
	o.driverID = driverID
	o.pickupTime = pickupTime
	o.deliveryTime = deliveryTime
	o.updatedAt = updatedAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a factory method.
// Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Driver returns the assigned driver's ID, or nil before a successful claim.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// PickupAddress returns the pickup address text.
func (o *Order) PickupAddress() string {
	return o.pickupAddress
}

// DropoffAddress returns the dropoff address text.
func (o *Order) DropoffAddress() string {
	return o.dropoffAddress
}

// DistanceKm returns the resolved driving distance between the addresses.
func (o *Order) DistanceKm() float64 {
	return o.distanceKm
}

// Manifest returns the package manifest.
func (o *Order) Manifest() Manifest {
	return o.manifest
}

// Window returns the delivery window chosen for the order.
func (o *Order) Window() DeliveryWindow {
	return o.window
}

// Price returns the price breakdown computed at creation.
func (o *Order) Price() PriceBreakdown {
	return o.price
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// TrackingNumber returns the immutable customer-facing tracking number.
func (o *Order) TrackingNumber() kernel.TrackingNumber {
	return o.trackingNumber
}

// PickupTime returns when the package was picked up, or nil.
func (o *Order) PickupTime() *time.Time {
	return o.pickupTime
}

// DeliveryTime returns when the package was delivered, or nil.
func (o *Order) DeliveryTime() *time.Time {
	return o.deliveryTime
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Claim assigns the order to a driver and moves it to Assigned.
//
// Business rules:
//   - The driver ID must be valid
//   - The order must be Pending with no driver set; the driver is set exactly
//     once and never reassigned
//
// Claim only mutates the in-memory aggregate. Exclusivity under concurrency is
// the repository's job: the update is persisted conditionally on the status
// still being Pending, so of N racing claimers exactly one write lands.
func (o *Order) Claim(driverID kernel.UUID, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if o.driverID != nil {
		return ErrDriverAlreadyAssigned
	}

	newStatus, err := o.status.Claim()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = &driverID
	o.updatedAt = now
	return nil
}

// Advance moves the order along the fulfillment chain
// (Assigned -> PickedUp -> InTransit -> Delivered).
//
// Authorization: only the assigned driver or an admin may advance an order.
// Side effects: reaching PickedUp records the pickup time, reaching Delivered
// records the delivery time.
func (o *Order) Advance(target Status, actor Actor, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	if err := o.authorizeAdvance(actor, target); err != nil {
		return err
	}

	newStatus, err := o.status.Advance(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	switch newStatus { //nolint:exhaustive // only two statuses carry side effects
	case PickedUp:
		o.pickupTime = &now
	case Delivered:
		o.deliveryTime = &now
	}
	o.updatedAt = now
	return nil
}

// Cancel withdraws the order before pickup.
//
// Authorization: only the owning customer or an admin may cancel.
// Legal only while the order is Pending or Assigned.
func (o *Order) Cancel(actor Actor, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	if err := o.authorizeCancel(actor); err != nil {
		return err
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// Expire cancels an order that was never claimed. Used by the background
// expiration job; legal only while the order is still Pending.
func (o *Order) Expire(now time.Time) error {
	if o.status != Pending {
		return &InvalidTransitionError{From: o.status, To: Cancelled}
	}

	o.status = Cancelled
	o.updatedAt = now
	return nil
}

func (o *Order) authorizeAdvance(actor Actor, target Status) error {
	if actor.Role() == RoleAdmin {
		return nil
	}

	if actor.Role() == RoleDriver && o.driverID != nil && actor.ID().IsEqual(*o.driverID) {
		return nil
	}

	return &ActorNotAllowedError{Role: actor.Role(), Action: fmt.Sprintf("advance order to %s", target)}
}

func (o *Order) authorizeCancel(actor Actor) error {
	if actor.Role() == RoleAdmin {
		return nil
	}

	if actor.Role() == RoleCustomer && actor.ID().IsEqual(o.customerID) {
		return nil
	}

	return &ActorNotAllowedError{Role: actor.Role(), Action: "cancel order"}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setAddresses(pickup string, dropoff string) error {
	if pickup == "" {
		return errs.NewValueIsRequiredError("pickup address")
	}
	if dropoff == "" {
		return errs.NewValueIsRequiredError("dropoff address")
	}
	o.pickupAddress = pickup
	o.dropoffAddress = dropoff
	return nil
}

func (o *Order) setDistanceKm(distanceKm float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"distance", fmt.Errorf("%.2f km is negative", distanceKm))
	}
	o.distanceKm = distanceKm
	return nil
}

func (o *Order) setManifest(manifest Manifest) error {
	if err := manifest.Validate(); err != nil {
		return err
	}
	o.manifest = manifest
	return nil
}

func (o *Order) setWindow(window DeliveryWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}
	o.window = window
	return nil
}

func (o *Order) setPrice(price PriceBreakdown) error {
	if err := price.Validate(); err != nil {
		return err
	}
	o.price = price
	return nil
}

func (o *Order) setTrackingNumber(trackingNumber kernel.TrackingNumber) error {
	if err := trackingNumber.Validate(); err != nil {
		return err
	}
	o.trackingNumber = trackingNumber
	return nil
}
