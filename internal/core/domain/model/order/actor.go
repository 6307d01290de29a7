package order

import (
	"errors"
	"fmt"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/errs"
)

// ErrActorNotAllowed is the sentinel for every rejected authorization check.
var ErrActorNotAllowed = errors.New("actor is not allowed to perform this transition")

// ActorNotAllowedError reports which actor attempted which transition.
type ActorNotAllowedError struct {
	Role   Role
	Action string
}

func (e *ActorNotAllowedError) Error() string {
	return fmt.Sprintf("%s: %s cannot %s", ErrActorNotAllowed, e.Role, e.Action)
}

func (e *ActorNotAllowedError) Unwrap() error {
	return ErrActorNotAllowed
}

// Role identifies the kind of party requesting a lifecycle transition.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer is the party who placed the order.
	RoleCustomer

	// RoleDriver is a courier; only the assigned driver may advance an order.
	RoleDriver

	// RoleAdmin is an administrative operator allowed any legal transition.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "Unknown",
		RoleCustomer: "Customer",
		RoleDriver:   "Driver",
		RoleAdmin:    "Admin",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleCustomer: "Customer",
		RoleDriver:   "Driver",
		RoleAdmin:    "Admin",
	}
}

// RoleFromString parses a role name received over the API.
func RoleFromString(s string) (Role, error) {
	for role, name := range getValidRoleStrings() {
		if name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// Actor is the identified party requesting a transition: a customer, a driver,
// or an administrative operator. The aggregate checks the actor's relationship
// to the order (assigned driver, owning customer) when authorizing transitions.
type Actor struct {
	id   kernel.UUID
	role Role
}

// NewActor creates an actor with a validated identity and role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}

	return Actor{id: id, role: role}, nil
}

// ID returns the actor's identity.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// Validate checks that the actor carries a valid identity and role.
func (a Actor) Validate() error {
	return errors.Join(a.id.Validate(), a.role.Validate())
}
