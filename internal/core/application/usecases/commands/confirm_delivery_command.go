package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand is step one of the delivery handshake: the
// assigned courier declares the order handed over.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	courierUserID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates a command for a courier to declare
// delivery.
func NewConfirmDeliveryCommand(orderID, courierUserID kernel.UUID) (ConfirmDeliveryCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		courierUserID.Validate(),
	); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return ConfirmDeliveryCommand{
		orderID:       orderID,
		courierUserID: courierUserID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

// OrderID returns the delivered order's identifier.
func (c ConfirmDeliveryCommand) OrderID() kernel.UUID { return c.orderID }

// CourierUserID returns the declaring courier's user account identifier.
func (c ConfirmDeliveryCommand) CourierUserID() kernel.UUID { return c.courierUserID }
