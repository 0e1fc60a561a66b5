package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/coupon"
)

// CouponRepository defines the persistence contract for coupon aggregates.
type CouponRepository interface {
	// Add persists a new coupon aggregate to storage.
	Add(ctx context.Context, aggregate *coupon.Coupon) error

	// GetActiveByCode retrieves an active coupon by its normalized code.
	GetActiveByCode(ctx context.Context, code string) (*coupon.Coupon, error)

	// IncrementUsage atomically bumps the coupon's usage counter.
	// Called in the same transaction as the order insert so a redeemed
	// coupon and its order commit or roll back together.
	IncrementUsage(ctx context.Context, code string) error

	// DeactivateExpired turns off every active coupon whose validity
	// window ended before the given time. Returns how many coupons were
	// deactivated.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}
