package couponrepo

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/coupon"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCouponRepository implements CouponRepository using GORM.
type GormCouponRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCouponRepository creates a new GORM coupon repository.
func NewGormCouponRepository(db *gorm.DB, tracker aggregateTracker) *GormCouponRepository {
	return &GormCouponRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new coupon to the database.
func (r *GormCouponRepository) Add(ctx context.Context, aggregate *coupon.Coupon) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetActiveByCode retrieves an active coupon by its normalized code.
func (r *GormCouponRepository) GetActiveByCode(
	ctx context.Context,
	code string,
) (*coupon.Coupon, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var dto CouponDTO
	err := r.db.WithContext(ctx).First(&dto, "code = ? AND is_active", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("couponCode", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

// IncrementUsage atomically bumps the coupon's usage counter. Runs in the
// same transaction as the order insert so the redemption and the order
// commit or roll back together.
func (r *GormCouponRepository) IncrementUsage(ctx context.Context, code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}

	result := r.db.WithContext(ctx).
		Model(&CouponDTO{}).
		Where("code = ?", code).
		Update("usage_count", gorm.Expr("usage_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("couponCode", code)
	}

	return nil
}

// DeactivateExpired turns off every active coupon whose validity window
// ended before the given time. Returns how many coupons were deactivated.
func (r *GormCouponRepository) DeactivateExpired(
	ctx context.Context,
	now time.Time,
) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&CouponDTO{}).
		Where("is_active AND valid_until < ?", now).
		Update("is_active", false)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
