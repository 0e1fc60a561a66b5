package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads the full detail view of one order. Customers may only
// read their own orders and couriers only orders assigned to them; staff
// roles read any order.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	actorUserID kernel.UUID
	actorRole   kernel.Role

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates an order detail query.
func NewGetOrderQuery(
	orderID kernel.UUID,
	actorUserID kernel.UUID,
	actorRole kernel.Role,
) (GetOrderQuery, error) {
	if err := errors.Join(
		orderID.Validate(),
		actorUserID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID:     orderID,
		actorUserID: actorUserID,
		actorRole:   actorRole,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to read.
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// ActorUserID returns the requesting user's identifier.
func (q GetOrderQuery) ActorUserID() kernel.UUID { return q.actorUserID }

// ActorRole returns the requesting user's role.
func (q GetOrderQuery) ActorRole() kernel.Role { return q.actorRole }

// OrderLineResponse is one order line in the detail view.
type OrderLineResponse struct {
	DishID         string
	Name           string
	Quantity       int
	UnitPrice      string
	Subtotal       string
	Customizations []string
}

// OrderAddressResponse is the delivery address snapshot in the detail view.
type OrderAddressResponse struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Notes      string
}

// OrderStatusChangeResponse is one status history entry in the detail view.
type OrderStatusChangeResponse struct {
	Status    string
	Timestamp time.Time
	Note      string
}

// OrderDetailsResponse is the full read model of one order.
type OrderDetailsResponse struct {
	ID           kernel.UUID
	Number       string
	CustomerID   kernel.UUID
	RestaurantID kernel.UUID
	CourierID    *kernel.UUID

	Items           []OrderLineResponse
	DeliveryAddress OrderAddressResponse

	Subtotal    string
	DeliveryFee string
	Discount    string
	Tax         string
	Tip         string
	Total       string
	CouponCode  string

	Status        string
	StatusHistory []OrderStatusChangeResponse
	PaymentMethod string
	PaymentStatus string

	CustomerNotes         string
	EstimatedDeliveryTime string

	CancellationReason string
	CancelledBy        string

	CreatedAt time.Time
	UpdatedAt time.Time
}
