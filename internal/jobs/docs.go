// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3, and are managed
// through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(couponRepository, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// 1. CouponExpiryJob - Runs hourly to deactivate coupons past their validity
// window, so lookups and listings never surface coupons that can no longer
// be redeemed.
package jobs
