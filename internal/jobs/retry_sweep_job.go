package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultRetrySweepSchedule runs the sweep at the start of every minute.
const DefaultRetrySweepSchedule = "0 * * * * *"

type RetryDueJobsHandler interface {
	Handle(ctx context.Context, command commands.RetryDueJobsCommand) (int, error)
}

// RetrySweepJob re-dispatches jobs whose retry time has come and jobs whose
// dispatch was lost.
type RetrySweepJob struct {
	handler  RetryDueJobsHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewRetrySweepJob(handler RetryDueJobsHandler, schedule string, logger *slog.Logger) *RetrySweepJob {
	if schedule == "" {
		schedule = DefaultRetrySweepSchedule
	}
	return &RetrySweepJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "retry_sweep_job"),
	}
}

func (j *RetrySweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Retry sweep job started", "schedule", j.schedule)
	return nil
}

func (j *RetrySweepJob) Run() {
	ctx := context.Background()

	n, err := j.handler.Handle(ctx, commands.NewRetryDueJobsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Retry sweep failed", "error", err)
		return
	}
	if n > 0 {
		j.logger.InfoContext(ctx, "Retry sweep dispatched jobs", "count", n)
	}
}

func (j *RetrySweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Retry sweep job stopped")
}
