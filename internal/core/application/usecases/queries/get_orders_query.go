// Package queries contains read-side operations in the CQRS architecture.
// Query handlers read the database directly with raw SQL and return flat
// read models; they never load aggregates or modify state.
package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery lists orders scoped to the requesting actor: customers see
// their own orders, couriers the orders assigned to them, restaurant owners
// their restaurant's orders, operators everything. An optional status
// filter narrows the result.
type GetOrdersQuery struct { //nolint:recvcheck //using for validation
	actorUserID  kernel.UUID
	actorRole    kernel.Role
	status       *order.Status
	restaurantID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates an actor-scoped order listing query.
// restaurantID is required for restaurant owners and ignored otherwise.
func NewGetOrdersQuery(
	actorUserID kernel.UUID,
	actorRole kernel.Role,
	status *order.Status,
	restaurantID *kernel.UUID,
) (GetOrdersQuery, error) {
	if err := errors.Join(
		actorUserID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return GetOrdersQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	return GetOrdersQuery{
		actorUserID:  actorUserID,
		actorRole:    actorRole,
		status:       status,
		restaurantID: restaurantID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// ActorUserID returns the requesting user's identifier.
func (q GetOrdersQuery) ActorUserID() kernel.UUID { return q.actorUserID }

// ActorRole returns the requesting user's role.
func (q GetOrdersQuery) ActorRole() kernel.Role { return q.actorRole }

// Status returns the status filter, nil for all statuses.
func (q GetOrdersQuery) Status() *order.Status { return q.status }

// RestaurantID returns the restaurant scope, nil when not scoped.
func (q GetOrdersQuery) RestaurantID() *kernel.UUID { return q.restaurantID }

// OrderSummaryResponse is one row of an order listing.
type OrderSummaryResponse struct {
	ID            kernel.UUID
	Number        string
	CustomerID    kernel.UUID
	RestaurantID  kernel.UUID
	CourierID     *kernel.UUID
	Status        string
	Total         string
	PaymentStatus string
	CreatedAt     time.Time
}
