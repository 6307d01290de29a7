// Package kernel provides shared value objects used across the domain model.
//
// The package contains:
//   - UUID: validated wrapper around github.com/google/uuid used as entity identity
//   - TrackingNumber: the customer-facing order identifier with its generation rules
//
// All kernel types are immutable value objects. Their zero values are invalid:
// instances must be created through the provided constructor functions, and
// Validate() detects objects that bypassed construction.
package kernel
