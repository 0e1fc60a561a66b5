package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Besides plain CRUD it carries the atomic primitives the dispatch flow
// depends on: the per-day order-number counter, the assign-if-unassigned
// courier binding, and the row lock that serializes mutations per order.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order while locking its row for the
	// duration of the surrounding transaction. Mutating handlers use this
	// so concurrent updates to the same order serialize instead of
	// clobbering each other.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// NextDailySequence atomically allocates the next order sequence
	// number for the given day. Concurrent callers each get a distinct
	// number with no gaps under contention.
	NextDailySequence(ctx context.Context, day time.Time) (int, error)

	// AssignCourierIfUnassigned binds a courier to the order only if no
	// courier is bound yet. Returns true when this call won the binding,
	// false when another courier got there first.
	AssignCourierIfUnassigned(ctx context.Context, orderID, courierID kernel.UUID) (bool, error)

	// CountByCustomer returns how many orders the customer has placed.
	// Backs the new-users-only coupon rule.
	CountByCustomer(ctx context.Context, customerID kernel.UUID) (int64, error)
}
