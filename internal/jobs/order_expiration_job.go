package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
)

// expirationSchedule runs the sweep shortly after UTC midnight, once the
// previous calendar day is fully in the past.
const expirationSchedule = "15 0 * * *"

// OrderExpirationJob flips Active orders whose delivery window has passed to
// Expired. Runs daily; each run is idempotent, so a missed run is caught up
// by the next.
type OrderExpirationJob struct {
	handler commands.ExpireOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderExpirationJob creates the daily expiration job.
func NewOrderExpirationJob(handler commands.ExpireOrdersCommandHandler, logger *slog.Logger) *OrderExpirationJob {
	return &OrderExpirationJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "order_expiration_job"),
	}
}

// Start schedules the daily sweep and runs one sweep immediately so a
// freshly started process does not wait a day to catch up.
func (j *OrderExpirationJob) Start() error {
	_, err := j.cron.AddFunc(expirationSchedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "order expiration job started", "schedule", expirationSchedule)

	go j.run()
	return nil
}

// Stop stops the expiration job.
func (j *OrderExpirationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "order expiration job stopped")
}

func (j *OrderExpirationJob) run() {
	ctx := context.Background()

	cmd, err := commands.NewExpireOrdersCommand(kernel.Today())
	if err != nil {
		j.logger.ErrorContext(ctx, "order expiration sweep failed", "error", err)
		return
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "order expiration sweep failed", "error", err)
		return
	}
	if expired > 0 {
		j.logger.InfoContext(ctx, "order expiration sweep done", "expired", expired)
	}
}
