package jobs

import (
	"context"
	"log/slog"
	"time"

	"swiftdrop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderExpirationJob cancels orders that sat in Pending longer than the TTL.
// Runs every minute; each sweep uses the same conditional-update discipline as
// the interactive commands, so a claim racing the sweep wins cleanly.
type OrderExpirationJob struct {
	handler commands.ExpirePendingOrdersCommandHandler
	ttl     time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderExpirationJob creates a job that expires stale pending orders.
// The TTL is how long an order may wait for a driver before being cancelled.
func NewOrderExpirationJob(
	handler commands.ExpirePendingOrdersCommandHandler,
	ttl time.Duration,
	logger *slog.Logger,
) *OrderExpirationJob {
	return &OrderExpirationJob{
		handler: handler,
		ttl:     ttl,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "order_expiration_job"),
	}
}

// Start begins the expiration job to run every minute.
func (j *OrderExpirationJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewExpirePendingOrdersCommand(j.ttl)
		if err != nil {
			j.logger.ErrorContext(ctx, "Order expiration job misconfigured", "error", err)
			return
		}

		expired, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Order expiration job failed", "error", err)
			return
		}

		if expired > 0 {
			j.logger.InfoContext(ctx, "Expired stale pending orders", "count", expired, "ttl", j.ttl)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order expiration job started (running every minute)")
	return nil
}

// Stop stops the expiration job.
func (j *OrderExpirationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order expiration job stopped")
}
