// Package jobs runs the background work of the fulfillment service.
//
// # Components
//
//  1. Dispatcher - a bounded queue drained by a fixed pool of workers. It implements
//     ports.JobDispatcher and runs ProcessFulfillmentJobCommandHandler for every job id
//     it receives.
//  2. RetrySweepJob - every minute re-dispatches queued jobs whose retry time has come,
//     and jobs whose dispatch was lost.
//  3. TrackingSyncJob - every six hours pulls tracking for shipped jobs.
//
// The scheduled jobs use github.com/robfig/cron/v3 with second precision and skip a
// tick while the previous run is still going.
//
// # Usage
//
//	dispatcher := jobs.NewDispatcher(processHandler, workers, queueSize, logger)
//	manager := jobs.NewJobManager(dispatcher, syncHandler, retryHandler, jobs.Schedules{}, logger)
//
//	if err := manager.StartAll(); err != nil {
//		log.Fatalf("failed to start jobs: %v", err)
//	}
//	defer manager.StopAll()
//
// The dispatcher must exist before the command handlers that dispatch to it, so it is
// built first and started by the manager.
package jobs
