// Package jobs provides the scheduled background tasks of the fulfillment
// service, built on github.com/robfig/cron/v3. The only job today is the
// daily order expiration sweep; JobManager exists so new jobs slot in
// without touching the entrypoint.
package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	orderExpirationJob *OrderExpirationJob
}

// NewJobManager creates a job manager wired to the command handlers the jobs
// execute.
func NewJobManager(
	expireOrdersHandler commands.ExpireOrdersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderExpirationJob: NewOrderExpirationJob(expireOrdersHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.orderExpirationJob.Start(); err != nil {
		return fmt.Errorf("failed to start order expiration job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderExpirationJob.Stop()
}
