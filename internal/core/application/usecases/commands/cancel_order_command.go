package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to cancel an order. The actor's
// role decides the ownership check: customers cancel their own orders,
// couriers orders assigned to them, operators any order.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	actorUserID kernel.UUID
	actorRole   kernel.Role
	reason      string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
func NewCancelOrderCommand(
	orderID kernel.UUID,
	actorUserID kernel.UUID,
	actorRole kernel.Role,
	reason string,
) (CancelOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		actorUserID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderID:     orderID,
		actorUserID: actorUserID,
		actorRole:   actorRole,
		reason:      reason,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }

// ActorUserID returns the requesting user's identifier.
func (c CancelOrderCommand) ActorUserID() kernel.UUID { return c.actorUserID }

// ActorRole returns the requesting user's role.
func (c CancelOrderCommand) ActorRole() kernel.Role { return c.actorRole }

// Reason returns the cancellation reason, empty if none given.
func (c CancelOrderCommand) Reason() string { return c.reason }
