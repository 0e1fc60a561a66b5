package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateCourierLocationCommandIsNotConstructed = errors.New(
	"UpdateCourierLocationCommand must be created via NewUpdateCourierLocationCommand constructor",
)

// UpdateCourierLocationCommand represents a location report from the
// courier's device.
type UpdateCourierLocationCommand struct { //nolint:recvcheck //using for validation
	courierUserID kernel.UUID
	location      kernel.Location

	guard guard.ConstructorGuard
}

// NewUpdateCourierLocationCommand creates a command to record a courier's
// current location.
func NewUpdateCourierLocationCommand(
	courierUserID kernel.UUID,
	location kernel.Location,
) (UpdateCourierLocationCommand, error) {
	if err := errors.Join(
		courierUserID.Validate(),
		location.Validate(),
	); err != nil {
		return UpdateCourierLocationCommand{}, err
	}

	return UpdateCourierLocationCommand{
		courierUserID: courierUserID,
		location:      location,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCourierLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierLocationCommandIsNotConstructed)
}

// CourierUserID returns the courier's user account identifier.
func (c UpdateCourierLocationCommand) CourierUserID() kernel.UUID { return c.courierUserID }

// Location returns the reported position.
func (c UpdateCourierLocationCommand) Location() kernel.Location { return c.location }
