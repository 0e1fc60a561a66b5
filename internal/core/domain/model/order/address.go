package order

import (
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// ErrDeliveryAddressIsRequired is returned when creating an order without a
// delivery address.
var ErrDeliveryAddressIsRequired = errs.NewValueIsRequiredError("deliveryAddress")

// Address is the delivery destination snapshot taken when an order is
// created. It is copied from the customer's live address record and stays
// frozen for the life of the order: later edits to the address book never
// affect orders already placed.
type Address struct {
	street     string
	city       string
	state      string
	postalCode string
	notes      string

	guard guard.ConstructorGuard
}

// NewAddress creates a delivery address snapshot. Only the street line is
// mandatory; everything else is free-form.
func NewAddress(street, city, state, postalCode, notes string) (Address, error) {
	if street == "" {
		return Address{}, ErrDeliveryAddressIsRequired
	}

	return Address{
		street:     street,
		city:       city,
		state:      state,
		postalCode: postalCode,
		notes:      notes,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrDeliveryAddressIsRequired)
}

// Street returns the street line of the address.
func (a Address) Street() string { return a.street }

// City returns the city of the address.
func (a Address) City() string { return a.city }

// State returns the state or province of the address.
func (a Address) State() string { return a.state }

// PostalCode returns the postal code of the address.
func (a Address) PostalCode() string { return a.postalCode }

// Notes returns delivery instructions attached to the address.
func (a Address) Notes() string { return a.notes }
