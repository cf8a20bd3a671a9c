// Package jobs provides scheduled background tasks for LocalEats.
//
// Jobs are cron-based (github.com/robfig/cron/v3). Both of them force the
// order feed to re-run subscription queries, which bounds how stale a live
// view can get when a change notification is lost on the bus.
//
// # Available Jobs
//
// 1. Pool refresh - refreshes driver pool subscriptions (default "@every 30s")
// 2. Feed resync - refreshes every subscription (default "@every 5m")
//
// # Usage
//
//	jobManager := jobs.NewJobManager(hub, views.IsPoolFilter, "", "", logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// A schedule that does not parse fails StartAll; already started jobs are
// stopped again.
package jobs
