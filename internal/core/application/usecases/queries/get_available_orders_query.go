package queries

import (
	"errors"

	"fooddelivery/internal/pkg/guard"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// availableOrdersLimit caps the queue page couriers see.
const availableOrdersLimit = 50

// GetAvailableOrdersQuery retrieves the queue of orders a courier can pull:
// unassigned orders that have not gone out for delivery yet.
type GetAvailableOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery creates a query for the courier-facing order
// queue. Parameterless: the queue is the same for every courier.
func NewGetAvailableOrdersQuery() GetAvailableOrdersQuery {
	return GetAvailableOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}
