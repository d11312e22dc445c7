package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates the dispatcher and the scheduled jobs.
type JobManager struct {
	dispatcher      *Dispatcher
	trackingSyncJob *TrackingSyncJob
	retrySweepJob   *RetrySweepJob
}

type Schedules struct {
	TrackingSync string
	RetrySweep   string
}

func NewJobManager(
	dispatcher *Dispatcher,
	syncHandler SyncTrackingHandler,
	retryHandler RetryDueJobsHandler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dispatcher:      dispatcher,
		trackingSyncJob: NewTrackingSyncJob(syncHandler, schedules.TrackingSync, logger),
		retrySweepJob:   NewRetrySweepJob(retryHandler, schedules.RetrySweep, logger),
	}
}

// StartAll starts the dispatcher first so that the sweep has workers to feed.
// On failure everything already started is stopped again.
func (jm *JobManager) StartAll() error {
	if err := jm.dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start job dispatcher: %w", err)
	}

	if err := jm.retrySweepJob.Start(); err != nil {
		jm.dispatcher.Stop()
		return fmt.Errorf("failed to start retry sweep job: %w", err)
	}

	if err := jm.trackingSyncJob.Start(); err != nil {
		jm.retrySweepJob.Stop()
		jm.dispatcher.Stop()
		return fmt.Errorf("failed to start tracking sync job: %w", err)
	}

	return nil
}

// StopAll stops the scheduled jobs, then drains the workers.
func (jm *JobManager) StopAll() {
	jm.trackingSyncJob.Stop()
	jm.retrySweepJob.Stop()
	jm.dispatcher.Stop()
}
