// Package order provides domain entities and business logic for delivery order
// management. It implements the Order aggregate root with lifecycle management,
// transition authorization, and the value objects an order is made of.
//
// The package includes:
//   - Order: the aggregate root managing identity, manifest, price, and lifecycle
//   - Status: a state machine enforcing valid order status transitions
//   - Manifest / PackageItem: the packages being delivered
//   - DeliveryWindow: the service level and its price multiplier
//   - LoyaltyTier: the customer's discount bracket
//   - PriceBreakdown: the immutable pricing result stored on the order
//   - Actor / Role: the party requesting a transition, for authorization
//
// Key business rules:
//   - Orders are created Pending and move through Assigned, PickedUp, InTransit
//     to Delivered; Pending and Assigned orders may be Cancelled
//   - A driver claims a Pending order exactly once; the driver is never reassigned
//   - Only the assigned driver (or an admin) advances an order; only the owning
//     customer (or an admin) cancels one
//   - Terminal states (Delivered, Cancelled) are never exited
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
