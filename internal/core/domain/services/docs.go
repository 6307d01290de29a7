// Package services provides domain services that implement business logic which
// doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - PricingEngine: a pure, deterministic service that prices delivery orders
//     from distance, manifest, delivery window, and loyalty tier
//
// Domain services hold no mutable state; the PricingEngine carries only its
// immutable Tariff configuration.
package services
