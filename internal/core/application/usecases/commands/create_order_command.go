package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a customer's checkout: the order lines, the
// delivery address snapshot, the adjustments (fee, tip, coupon), and the
// payment method.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID

	items           []order.Item
	deliveryAddress order.Address

	deliveryFee *kernel.Money
	tip         kernel.Money
	couponCode  string

	paymentMethod         string
	customerNotes         string
	estimatedDeliveryTime string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order. Items and
// the address arrive already constructed, so their own invariants hold; the
// command validates identity and the adjustments. A nil deliveryFee means
// the platform default fee.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	items []order.Item,
	deliveryAddress order.Address,
	deliveryFee *kernel.Money,
	tip kernel.Money,
	couponCode string,
	paymentMethod string,
	customerNotes string,
	estimatedDeliveryTime string,
) (CreateOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		customerID.Validate(),
		restaurantID.Validate(),
		deliveryAddress.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	if len(items) == 0 {
		return CreateOrderCommand{}, order.ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return CreateOrderCommand{}, err
		}
	}

	return CreateOrderCommand{
		orderID:               orderID,
		customerID:            customerID,
		restaurantID:          restaurantID,
		items:                 append([]order.Item(nil), items...),
		deliveryAddress:       deliveryAddress,
		deliveryFee:           deliveryFee,
		tip:                   tip,
		couponCode:            couponCode,
		paymentMethod:         paymentMethod,
		customerNotes:         customerNotes,
		estimatedDeliveryTime: estimatedDeliveryTime,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// CustomerID returns the ordering customer's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.customerID }

// RestaurantID returns the restaurant's identifier.
func (c CreateOrderCommand) RestaurantID() kernel.UUID { return c.restaurantID }

// Items returns a copy of the order lines.
func (c CreateOrderCommand) Items() []order.Item { return append([]order.Item(nil), c.items...) }

// DeliveryAddress returns the delivery address snapshot.
func (c CreateOrderCommand) DeliveryAddress() order.Address { return c.deliveryAddress }

// DeliveryFee returns the requested fee, nil for the platform default.
func (c CreateOrderCommand) DeliveryFee() *kernel.Money { return c.deliveryFee }

// Tip returns the courier tip, zero if none.
func (c CreateOrderCommand) Tip() kernel.Money { return c.tip }

// CouponCode returns the coupon code to redeem, empty if none.
func (c CreateOrderCommand) CouponCode() string { return c.couponCode }

// PaymentMethod returns the chosen payment method, empty for the default.
func (c CreateOrderCommand) PaymentMethod() string { return c.paymentMethod }

// CustomerNotes returns free-form notes for the restaurant and courier.
func (c CreateOrderCommand) CustomerNotes() string { return c.customerNotes }

// EstimatedDeliveryTime returns the quoted window, empty for the default.
func (c CreateOrderCommand) EstimatedDeliveryTime() string { return c.estimatedDeliveryTime }
