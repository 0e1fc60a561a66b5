package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a staff request to move an order to a
// new lifecycle status. The actor's role decides which targets are allowed.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	target    order.Status
	note      string
	actorRole kernel.Role

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to change an order's
// status. The target must be a recognized status and the actor role a
// recognized role; the state machine itself is enforced by the aggregate.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	note string,
	actorRole kernel.Role,
) (ChangeOrderStatusCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		target.Validate(),
		actorRole.Validate(),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		orderID:   orderID,
		target:    target,
		note:      note,
		actorRole: actorRole,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// Target returns the requested status.
func (c ChangeOrderStatusCommand) Target() order.Status { return c.target }

// Note returns the free-form note attached to the history entry.
func (c ChangeOrderStatusCommand) Note() string { return c.note }

// ActorRole returns the role of the requesting user.
func (c ChangeOrderStatusCommand) ActorRole() kernel.Role { return c.actorRole }
