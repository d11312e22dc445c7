package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/supplier"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// DefaultSyncConcurrency is the number of jobs synced in parallel.
const DefaultSyncConcurrency = 4

// SyncTrackingResult counts the outcome of a sweep.
type SyncTrackingResult struct {
	Synced int
	Errors int
}

// SyncTrackingCommandHandler reconciles tracking of shipped jobs with their channels.
//
// Each job is synced independently: a failing channel is counted and logged and
// never aborts the sweep. For every job the handler
//   - skips channels without auto tracking
//   - stores a new tracking number or carrier on the job
//   - upserts the shipment keyed by order and tracking number
//   - delivers the job when the carrier reports delivery
//   - delivers the order once all of its jobs are delivered
type SyncTrackingCommandHandler struct {
	uowFactory     UoWFactory
	adapters       *AdapterCache
	warehouse      ports.SupplierAdapter
	adapterTimeout time.Duration
	concurrency    int
	metrics        Metrics
	logger         *slog.Logger
}

func NewSyncTrackingCommandHandler(
	uowFactory UoWFactory,
	adapters *AdapterCache,
	warehouse ports.SupplierAdapter,
	adapterTimeout time.Duration,
	concurrency int,
	metrics Metrics,
	logger *slog.Logger,
) SyncTrackingCommandHandler {
	if adapterTimeout <= 0 {
		adapterTimeout = DefaultAdapterTimeout
	}
	if concurrency <= 0 {
		concurrency = DefaultSyncConcurrency
	}
	return SyncTrackingCommandHandler{
		uowFactory:     uowFactory,
		adapters:       adapters,
		warehouse:      warehouse,
		adapterTimeout: adapterTimeout,
		concurrency:    concurrency,
		metrics:        metrics,
		logger:         logger.With("component", "tracking_sync"),
	}
}

// Handle syncs every trackable job. Only a failure to list the jobs is returned as
// an error; per job failures are counted in the result.
func (h SyncTrackingCommandHandler) Handle(ctx context.Context, command SyncTrackingCommand) (SyncTrackingResult, error) {
	if err := command.Validate(); err != nil {
		return SyncTrackingResult{}, err
	}

	jobs, err := h.uowFactory.Create().JobRepository().GetAllTrackable(ctx)
	if err != nil {
		return SyncTrackingResult{}, err
	}

	var synced, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)

	for _, job := range jobs {
		g.Go(func() error {
			if gctx.Err() != nil {
				failed.Add(1)
				return nil
			}
			if _, err := h.SyncJob(gctx, job); err != nil {
				failed.Add(1)
				h.logger.ErrorContext(gctx, "failed to sync job tracking",
					"job_id", job.ID().String(), "order_id", job.OrderID().String(), "error", err)
				return nil
			}
			synced.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	result := SyncTrackingResult{Synced: int(synced.Load()), Errors: int(failed.Load())}
	h.metrics.TrackingSynced(result.Synced, result.Errors)
	return result, nil
}

// SyncJob reconciles the tracking of one job. It reports whether anything changed.
func (h SyncTrackingCommandHandler) SyncJob(ctx context.Context, job *fulfillment.Job) (bool, error) {
	if job.IsTerminal() || job.SupplierOrderID() == "" {
		return false, nil
	}

	uow := h.uowFactory.Create()

	adapter, err := h.resolveAdapter(ctx, uow, job)
	if err != nil {
		return false, err
	}
	if !adapter.SupportsFeature(supplier.FeatureAutoTracking) {
		return false, nil
	}

	info, err := h.fetchTracking(ctx, adapter, job.SupplierOrderID())
	if err != nil || info == nil {
		return false, err
	}
	if info.Status == "" {
		info.Status = shipment.Pending
	}

	now := time.Now()
	wasShipped := job.Status() == fulfillment.Shipped
	changed, err := job.UpdateTracking(info.TrackingNumber, info.Carrier, now)
	if err != nil {
		return false, err
	}

	if job.TrackingNumber() != "" {
		if err = h.upsertShipment(ctx, uow, job, *info, now); err != nil {
			return false, err
		}
	}

	delivered := info.Status == shipment.Delivered
	if delivered {
		if err = job.Deliver("", now); err != nil {
			return false, err
		}
		changed = true
	}
	if !changed {
		return false, nil
	}

	if err = uow.JobRepository().Update(ctx, job); err != nil {
		return false, err
	}

	if delivered {
		_, err = markOrderDeliveredIfComplete(ctx, uow, job.OrderID(), now)
		return true, err
	}
	if !wasShipped && job.Status() == fulfillment.Shipped {
		return true, h.markOrderShipped(ctx, uow, job)
	}
	return true, nil
}

func (h SyncTrackingCommandHandler) resolveAdapter(ctx context.Context, uow UoW, job *fulfillment.Job) (ports.SupplierAdapter, error) {
	if job.SupplierID() == nil {
		if job.Type() == fulfillment.Warehouse {
			return h.warehouse, nil
		}
		return nil, fmt.Errorf("job %s has no supplier to track with", job.ID())
	}

	supplierID := *job.SupplierID()
	return h.adapters.GetOrLoad(supplierID, func() (*supplier.Supplier, error) {
		return uow.SupplierRepository().Get(ctx, supplierID)
	})
}

func (h SyncTrackingCommandHandler) fetchTracking(
	ctx context.Context,
	adapter ports.SupplierAdapter,
	supplierOrderID string,
) (*shipment.TrackingInfo, error) {
	callCtx, cancel := context.WithTimeout(ctx, h.adapterTimeout)
	defer cancel()

	info, err := adapter.GetTracking(callCtx, supplierOrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: get tracking: %w", ErrAdapter, err)
	}
	return info, nil
}

func (h SyncTrackingCommandHandler) upsertShipment(
	ctx context.Context,
	uow UoW,
	job *fulfillment.Job,
	info shipment.TrackingInfo,
	now time.Time,
) error {
	repo := uow.ShipmentRepository()

	s, err := repo.GetByTracking(ctx, job.OrderID(), job.TrackingNumber())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		if s, err = shipment.NewShipment(job.OrderID(), job.ID(), job.TrackingNumber(), job.Carrier()); err != nil {
			return err
		}
		if err = s.ApplyTracking(info, now); err != nil {
			return err
		}
		return repo.Add(ctx, s)
	case err != nil:
		return err
	}

	if err = s.ApplyTracking(info, now); err != nil {
		return err
	}
	return repo.Update(ctx, s)
}

func (h SyncTrackingCommandHandler) markOrderShipped(ctx context.Context, uow UoW, job *fulfillment.Job) error {
	o, err := uow.OrderRepository().Get(ctx, job.OrderID())
	if err != nil {
		return err
	}
	if err = o.MarkShipped(); err != nil {
		return err
	}
	return uow.OrderRepository().Update(ctx, o)
}
