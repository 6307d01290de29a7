package order

import (
	"errors"
	"fmt"

	"swiftdrop/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel for every rejected status transition.
// Use errors.Is to classify; the concrete *InvalidTransitionError names the edge.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports the specific illegal edge that was attempted.
// Callers surface it verbatim so an out-of-order request (e.g. marking Delivered
// before PickedUp) names exactly what was rejected.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Pending ──claim──> Assigned ──> PickedUp ──> InTransit ──> Delivered
//	   │                   │
//	   └───────┬───────────┘
//	           v
//	       Cancelled
//
// Pending and Assigned may be cancelled; once a package is picked up the order
// can no longer be cancelled. Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// Orders in this status are waiting for a driver to claim them.
	Pending

	// Assigned indicates exactly one driver has claimed the order.
	Assigned

	// PickedUp indicates the driver has collected the package.
	PickedUp

	// InTransit indicates the package is on its way to the dropoff address.
	InTransit

	// Delivered indicates the package reached its destination.
	// This is a terminal state.
	Delivered

	// Cancelled indicates the order was withdrawn before pickup.
	// This is a terminal state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Assigned:  "Assigned",
		PickedUp:  "PickedUp",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Assigned:  "Assigned",
		PickedUp:  "PickedUp",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// advanceEdges holds the only legal advance transitions. Pending -> Assigned is
// deliberately absent: that edge exists only through the exclusive claim.
func advanceEdges() map[Status]Status {
	return map[Status]Status{
		Assigned:  PickedUp,
		PickedUp:  InTransit,
		InTransit: Delivered,
	}
}

// StatusFromString parses a status name as stored in the database or received
// over the API. Returns an error for unknown names, including "Unknown".
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Valid statuses are Pending through Cancelled; Unknown and out-of-range values fail.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateCanHaveDriver validates the consistency between order status and driver
// assignment when rehydrating an order from persistence.
//
// Rules:
//   - Pending orders must not have a driver
//   - Assigned, PickedUp, InTransit, and Delivered orders must have a driver
//   - Cancelled orders may or may not have one, depending on when they were cancelled
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	if s == Cancelled {
		return nil
	}

	if hasDriver && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a driver", s.String()),
		)
	}

	if !hasDriver && s != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no driver", s.String()),
		)
	}

	return nil
}

// Claim transitions the status to Assigned.
//
// Valid transitions:
//   - Pending -> Assigned (a driver takes exclusive ownership)
//
// Every other starting status is rejected: a claim on an already-assigned or
// terminal order is by definition an invalid edge.
func (s Status) Claim() (Status, error) {
	if s != Pending {
		return Unknown, &InvalidTransitionError{From: s, To: Assigned}
	}

	return Assigned, nil
}

// Advance transitions the status along the fulfillment chain.
//
// Valid transitions:
//   - Assigned -> PickedUp
//   - PickedUp -> InTransit
//   - InTransit -> Delivered
//
// Pending -> Assigned is not an advance edge; it happens only through Claim.
// Any other requested edge returns an InvalidTransitionError naming it.
func (s Status) Advance(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if next, ok := advanceEdges()[s]; ok && next == target {
		return target, nil
	}

	return Unknown, &InvalidTransitionError{From: s, To: target}
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled
//   - Assigned -> Cancelled
//
// Once the package is picked up, cancellation is rejected.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Assigned {
		return Unknown, &InvalidTransitionError{From: s, To: Cancelled}
	}

	return Cancelled, nil
}
