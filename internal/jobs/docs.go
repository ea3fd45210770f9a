// Package jobs provides scheduled background tasks for the freight service.
//
// Jobs use github.com/robfig/cron/v3 and are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewStopReconciliationJob(loadRepo, reconcileHandler, cfg.StopReconcileCron, logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Stop reconciliation
//
// StopReconciliationJob walks every load that is not COMPLETED and rewrites
// its stop list from the stop rows, repairing lists left stale by an
// interrupted two-step stop write. The schedule accepts standard five field
// cron expressions, an optional leading seconds field and descriptors such
// as "@every 15m". An empty schedule disables the job.
package jobs
