package kernel

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Role identifies the capability class of an authenticated actor. Every
// operation declares the roles it accepts, and handlers additionally check
// entity-level ownership (a customer may only confirm receipt of their own
// order, a courier only of orders assigned to them).
type Role string

const (
	// RoleAdmin is the platform operator with unrestricted access.
	RoleAdmin Role = "admin"
	// RoleRestaurantOwner manages restaurants and drives kitchen-side
	// status transitions.
	RoleRestaurantOwner Role = "restaurant_owner"
	// RoleDelivery is a courier fulfilling deliveries.
	RoleDelivery Role = "delivery"
	// RoleCustomer places orders and confirms receipt.
	RoleCustomer Role = "customer"
)

// ParseRole converts a string into a Role, failing with a validation error
// for anything outside the recognized set.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleRestaurantOwner, RoleDelivery, RoleCustomer:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a recognized role", s))
	}
}

// Validate checks that the Role value belongs to the recognized set.
func (r Role) Validate() error {
	_, err := ParseRole(string(r))
	return err
}

// IsOneOf reports whether the role is in the given set.
func (r Role) IsOneOf(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// String returns the wire representation of the role.
func (r Role) String() string {
	return string(r)
}
