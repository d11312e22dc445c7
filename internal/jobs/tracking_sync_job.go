package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultTrackingSyncSchedule runs the sync every six hours on the hour.
const DefaultTrackingSyncSchedule = "0 0 */6 * * *"

type SyncTrackingHandler interface {
	Handle(ctx context.Context, command commands.SyncTrackingCommand) (commands.SyncTrackingResult, error)
}

// TrackingSyncJob periodically pulls tracking for every shipped job.
type TrackingSyncJob struct {
	handler  SyncTrackingHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewTrackingSyncJob(handler SyncTrackingHandler, schedule string, logger *slog.Logger) *TrackingSyncJob {
	if schedule == "" {
		schedule = DefaultTrackingSyncSchedule
	}
	return &TrackingSyncJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "tracking_sync_job"),
	}
}

func (j *TrackingSyncJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Tracking sync job started", "schedule", j.schedule)
	return nil
}

// Run performs one sync pass.
func (j *TrackingSyncJob) Run() {
	ctx := context.Background()

	result, err := j.handler.Handle(ctx, commands.NewSyncTrackingCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Tracking sync failed", "error", err)
		return
	}
	j.logger.InfoContext(ctx, "Tracking sync finished", "synced", result.Synced, "errors", result.Errors)
}

// Stop waits for a running pass to finish.
func (j *TrackingSyncJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Tracking sync job stopped")
}
