package jobs

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// couponExpirySchedule runs at the top of every hour. Checkout also rejects
// expired coupons on its own, so an hour of lag never lets one through.
const couponExpirySchedule = "0 0 * * * *"

// CouponExpiryJob deactivates coupons whose validity window has passed.
type CouponExpiryJob struct {
	coupons ports.CouponRepository
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCouponExpiryJob creates a new job for expiring coupons.
func NewCouponExpiryJob(coupons ports.CouponRepository, logger *slog.Logger) *CouponExpiryJob {
	return &CouponExpiryJob{
		coupons: coupons,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "coupon_expiry_job"),
	}
}

// Start begins the coupon expiry job to run hourly.
func (j *CouponExpiryJob) Start() error {
	_, err := j.cron.AddFunc(couponExpirySchedule, func() {
		ctx := context.Background()

		deactivated, err := j.coupons.DeactivateExpired(ctx, time.Now().UTC())
		if err != nil {
			j.logger.ErrorContext(ctx, "Coupon expiry job failed", "error", err)
			return
		}
		if deactivated > 0 {
			j.logger.InfoContext(ctx, "Deactivated expired coupons", "count", deactivated)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Coupon expiry job started (running hourly)")
	return nil
}

// Stop stops the coupon expiry job.
func (j *CouponExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Coupon expiry job stopped")
}
