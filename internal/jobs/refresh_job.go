package jobs

import (
	"context"
	"log/slog"
	"time"

	"localeats/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const (
	DefaultPoolRefreshSpec = "@every 30s"
	DefaultFeedResyncSpec  = "@every 5m"
)

// RefreshJob periodically re-runs the queries of the feed subscriptions
// selected by match, so a lost change notification delays an update by at
// most one period.
type RefreshJob struct {
	name      string
	spec      string
	refresher ports.OrderFeedRefresher
	match     func(ports.OrderFilter) bool
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPoolRefreshJob refreshes the driver pool subscriptions.
func NewPoolRefreshJob(
	spec string,
	refresher ports.OrderFeedRefresher,
	isPool func(ports.OrderFilter) bool,
	logger *slog.Logger,
) *RefreshJob {
	if spec == "" {
		spec = DefaultPoolRefreshSpec
	}
	return newRefreshJob("pool_refresh_job", spec, refresher, isPool, logger)
}

// NewFeedResyncJob refreshes every subscription.
func NewFeedResyncJob(spec string, refresher ports.OrderFeedRefresher, logger *slog.Logger) *RefreshJob {
	if spec == "" {
		spec = DefaultFeedResyncSpec
	}
	return newRefreshJob("feed_resync_job", spec, refresher, nil, logger)
}

func newRefreshJob(
	name, spec string,
	refresher ports.OrderFeedRefresher,
	match func(ports.OrderFilter) bool,
	logger *slog.Logger,
) *RefreshJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &RefreshJob{
		name:      name,
		spec:      spec,
		refresher: refresher,
		match:     match,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", name),
	}
}

// Start schedules the job. An invalid spec is returned as an error.
func (j *RefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, j.Run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Refresh job started", "schedule", j.spec)
	return nil
}

// Run performs one refresh.
func (j *RefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	j.refresher.Refresh(ctx, j.match)
	j.logger.DebugContext(ctx, "Refreshed feed subscriptions")
}

// Stop waits for a running refresh to finish.
func (j *RefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Refresh job stopped")
}
