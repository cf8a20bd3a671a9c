package jobs

import (
	"fmt"
	"log/slog"

	"localeats/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	poolRefreshJob *RefreshJob
	feedResyncJob  *RefreshJob
}

// NewJobManager wires the refresh jobs to the order feed. isPool tells
// pool subscriptions apart from the rest.
func NewJobManager(
	refresher ports.OrderFeedRefresher,
	isPool func(ports.OrderFilter) bool,
	poolRefreshSpec, feedResyncSpec string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		poolRefreshJob: NewPoolRefreshJob(poolRefreshSpec, refresher, isPool, logger),
		feedResyncJob:  NewFeedResyncJob(feedResyncSpec, refresher, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.poolRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start pool refresh job: %w", err)
	}

	if err := jm.feedResyncJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.poolRefreshJob.Stop()
		return fmt.Errorf("failed to start feed resync job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.feedResyncJob.Stop()
	jm.poolRefreshJob.Stop()
}
