package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateCourierStatusCommandIsNotConstructed = errors.New(
	"UpdateCourierStatusCommand must be created via NewUpdateCourierStatusCommand constructor",
)

// UpdateCourierStatusCommand represents a courier toggling their own
// online and availability flags. Nil fields are left unchanged.
type UpdateCourierStatusCommand struct { //nolint:recvcheck //using for validation
	courierUserID kernel.UUID
	isOnline      *bool
	isAvailable   *bool

	guard guard.ConstructorGuard
}

// NewUpdateCourierStatusCommand creates a command to update a courier's
// presence flags. At least one flag must be present.
func NewUpdateCourierStatusCommand(
	courierUserID kernel.UUID,
	isOnline *bool,
	isAvailable *bool,
) (UpdateCourierStatusCommand, error) {
	if err := courierUserID.Validate(); err != nil {
		return UpdateCourierStatusCommand{}, err
	}
	if isOnline == nil && isAvailable == nil {
		return UpdateCourierStatusCommand{}, errs.NewValueIsRequiredError("isOnline or isAvailable")
	}

	return UpdateCourierStatusCommand{
		courierUserID: courierUserID,
		isOnline:      isOnline,
		isAvailable:   isAvailable,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCourierStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierStatusCommandIsNotConstructed)
}

// CourierUserID returns the courier's user account identifier.
func (c UpdateCourierStatusCommand) CourierUserID() kernel.UUID { return c.courierUserID }

// IsOnline returns the requested online flag, nil to leave unchanged.
func (c UpdateCourierStatusCommand) IsOnline() *bool { return c.isOnline }

// IsAvailable returns the requested availability flag, nil to leave
// unchanged.
func (c UpdateCourierStatusCommand) IsAvailable() *bool { return c.isAvailable }
