package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultDispatchWorkers   = 4
	DefaultDispatchQueueSize = 256
)

var (
	ErrQueueFull         = errors.New("dispatch queue is full")
	ErrDispatcherStopped = errors.New("dispatcher is stopped")
)

type ProcessJobHandler interface {
	Handle(ctx context.Context, command commands.ProcessFulfillmentJobCommand) (commands.ProcessOutcome, error)
}

// Dispatcher runs fulfillment jobs out of band on a fixed pool of workers.
//
// Dispatch never blocks. A job that does not fit in the queue is rejected and left
// to the retry sweep, which finds it through its pending status.
type Dispatcher struct {
	handler ProcessJobHandler
	queue   chan kernel.UUID
	workers int
	logger  *slog.Logger
	mu      sync.Mutex
	cancel  context.CancelFunc
	group   *errgroup.Group
	stopped bool
}

func NewDispatcher(handler ProcessJobHandler, workers, queueSize int, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = DefaultDispatchWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultDispatchQueueSize
	}
	return &Dispatcher{
		handler: handler,
		queue:   make(chan kernel.UUID, queueSize),
		workers: workers,
		logger:  logger.With("component", "job_dispatcher"),
	}
}

// Dispatch enqueues a job. Jobs enqueued before Start are processed once workers run.
func (d *Dispatcher) Dispatch(_ context.Context, jobID kernel.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return ErrDispatcherStopped
	}
	select {
	case d.queue <- jobID:
		return nil
	default:
		return fmt.Errorf("job %s: %w", jobID, ErrQueueFull)
	}
}

func (d *Dispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return ErrDispatcherStopped
	}
	if d.group != nil {
		return errors.New("dispatcher is already running")
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)
	for range d.workers {
		group.Go(func() error {
			d.work(ctx)
			return nil
		})
	}

	d.cancel = cancel
	d.group = group
	d.logger.Info("Job dispatcher started", "workers", d.workers, "queue_size", cap(d.queue))
	return nil
}

// Stop cancels in-flight jobs and waits for the workers. Jobs still queued are left
// to the retry sweep of the next run.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	cancel, group := d.cancel, d.group
	d.mu.Unlock()

	if cancel != nil {
		cancel()
		_ = group.Wait()
	}
	d.logger.Info("Job dispatcher stopped", "abandoned", len(d.queue))
}

func (d *Dispatcher) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case jobID := <-d.queue:
			d.process(ctx, jobID)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, jobID kernel.UUID) {
	cmd, err := commands.NewProcessFulfillmentJobCommand(jobID)
	if err != nil {
		d.logger.ErrorContext(ctx, "Invalid job dispatched", "job_id", jobID.String(), "error", err)
		return
	}

	outcome, err := d.handler.Handle(ctx, cmd)
	if err != nil {
		d.logger.ErrorContext(ctx, "Fulfillment job processing failed", "job_id", jobID.String(), "error", err)
		return
	}
	d.logger.DebugContext(ctx, "Fulfillment job processed", "job_id", jobID.String(), "outcome", string(outcome))
}
