package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
)

// JobRepository defines the persistence contract for fulfillment jobs.
type JobRepository interface {
	// Add persists a new job.
	Add(ctx context.Context, job *fulfillment.Job) error

	// Update persists a job if nobody else saved it since it was loaded. A stale job
	// yields errs.ErrConcurrentUpdate. On success the job's version is advanced.
	Update(ctx context.Context, job *fulfillment.Job) error

	// Get retrieves a job by id. Returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.UUID) (*fulfillment.Job, error)

	// GetAllByOrder returns every job of an order, oldest first.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*fulfillment.Job, error)

	// GetAllTrackable returns jobs whose tracking can be polled from their channel:
	// shipped jobs with a supplier order id, and warehouse jobs still processing
	// with a channel reference.
	GetAllTrackable(ctx context.Context) ([]*fulfillment.Job, error)

	// GetAllDueForDispatch returns queued jobs that should be processed now:
	//   - jobs whose NextRetryAt is not after now
	//   - jobs without NextRetryAt not updated since staleBefore (lost dispatch)
	GetAllDueForDispatch(ctx context.Context, now, staleBefore time.Time) ([]*fulfillment.Job, error)
}

// FailureLogRepository stores failed attempts for operator review.
type FailureLogRepository interface {
	Add(ctx context.Context, record fulfillment.FailureRecord) error
}
