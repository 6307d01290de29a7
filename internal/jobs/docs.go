// Package jobs provides scheduled background tasks for the delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery service.
//
// # Available Jobs
//
// 1. OrderExpirationJob - Runs every minute to cancel orders that have waited
// in Pending longer than the configured TTL without being claimed.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(expireOrdersHandler, pendingOrderTTL, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The expiration job uses the cron expression "0 * * * * *", once a minute at
// second zero. Expiration is a cleanup sweep; sub-minute latency buys nothing.
//
// # Error Handling
//
// The expiration sweep skips orders that were claimed between its read and its
// conditional write; a lost race is the claim winning, not a failure. Real
// failures are logged and retried on the next tick.
package jobs
