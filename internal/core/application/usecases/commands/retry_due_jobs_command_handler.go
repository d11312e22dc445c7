package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/ports"
)

// RetryDueJobsCommandHandler re-dispatches jobs from their persisted schedule. The
// nextRetryAt column is the source of truth, so retries survive restarts. Jobs
// queued without a retry time, or claimed without progress, are picked up once
// they have been idle for longer than the claim lease.
type RetryDueJobsCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.JobDispatcher
	logger     *slog.Logger
}

func NewRetryDueJobsCommandHandler(uowFactory UoWFactory, dispatcher ports.JobDispatcher, logger *slog.Logger) RetryDueJobsCommandHandler {
	return RetryDueJobsCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "retry_sweep"),
	}
}

// Handle returns the number of jobs dispatched.
func (h RetryDueJobsCommandHandler) Handle(ctx context.Context, command RetryDueJobsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	now := time.Now()
	jobs, err := h.uowFactory.Create().JobRepository().GetAllDueForDispatch(ctx, now, now.Add(-fulfillment.ClaimLease))
	if err != nil {
		return 0, err
	}

	dispatched := 0
	for _, job := range jobs {
		if err := h.dispatcher.Dispatch(ctx, job.ID()); err != nil {
			h.logger.ErrorContext(ctx, "failed to dispatch due job", "job_id", job.ID().String(), "error", err)
			continue
		}
		dispatched++
	}
	return dispatched, nil
}
