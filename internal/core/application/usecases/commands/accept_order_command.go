package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand represents a courier pulling an order from the
// available queue. The courier is identified by their user account, as
// that is what the access token carries.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	courierUserID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command for a courier to accept an order.
func NewAcceptOrderCommand(orderID, courierUserID kernel.UUID) (AcceptOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		courierUserID.Validate(),
	); err != nil {
		return AcceptOrderCommand{}, err
	}

	return AcceptOrderCommand{
		orderID:       orderID,
		courierUserID: courierUserID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderID returns the order to accept.
func (c AcceptOrderCommand) OrderID() kernel.UUID { return c.orderID }

// CourierUserID returns the accepting courier's user account identifier.
func (c AcceptOrderCommand) CourierUserID() kernel.UUID { return c.courierUserID }
