package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrConfirmReceiptCommandIsNotConstructed = errors.New(
	"ConfirmReceiptCommand must be created via NewConfirmReceiptCommand constructor",
)

// ConfirmReceiptCommand is step two of the delivery handshake: the ordering
// customer acknowledges the handover.
type ConfirmReceiptCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmReceiptCommand creates a command for a customer to confirm
// receipt.
func NewConfirmReceiptCommand(orderID, customerID kernel.UUID) (ConfirmReceiptCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		customerID.Validate(),
	); err != nil {
		return ConfirmReceiptCommand{}, err
	}

	return ConfirmReceiptCommand{
		orderID:    orderID,
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmReceiptCommand) Validate() error {
	return c.guard.Validate(ErrConfirmReceiptCommandIsNotConstructed)
}

// OrderID returns the received order's identifier.
func (c ConfirmReceiptCommand) OrderID() kernel.UUID { return c.orderID }

// CustomerID returns the confirming customer's identifier.
func (c ConfirmReceiptCommand) CustomerID() kernel.UUID { return c.customerID }
