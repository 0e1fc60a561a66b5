package jobs

import (
	"fmt"
	"log/slog"

	"fooddelivery/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	couponExpiryJob *CouponExpiryJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(coupons ports.CouponRepository, logger *slog.Logger) *JobManager {
	return &JobManager{
		couponExpiryJob: NewCouponExpiryJob(coupons, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.couponExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start coupon expiry job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.couponExpiryJob.Stop()
}
