package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetByUserID retrieves the courier profile backed by the given user
	// account.
	GetByUserID(ctx context.Context, userID kernel.UUID) (*courier.Courier, error)

	// Reserve atomically flips the courier to busy, but only while the
	// courier is online and available. Returns true when the reservation
	// succeeded, false when the courier was already busy or offline.
	Reserve(ctx context.Context, id kernel.UUID) (bool, error)

	// Release marks the courier available again after a delivery ends.
	Release(ctx context.Context, id kernel.UUID) error
}
