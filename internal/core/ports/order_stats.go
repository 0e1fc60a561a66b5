package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
)

// OrderStats records denormalized order counters kept for restaurants and
// dishes. Counter bumps are best-effort: they run after the order commits
// and a failure never fails the order.
type OrderStats interface {
	// BumpRestaurantOrders increments the restaurant's lifetime order
	// counter.
	BumpRestaurantOrders(ctx context.Context, restaurantID kernel.UUID) error

	// BumpDishOrders increments a dish's order counter by the quantity
	// sold.
	BumpDishOrders(ctx context.Context, dishID kernel.UUID, quantity int) error
}
