package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/supplier"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// DefaultAdapterTimeout bounds every call to a supplier adapter.
const DefaultAdapterTimeout = 30 * time.Second

// ProcessOutcome tells what an invocation did with the job.
type ProcessOutcome string

const (
	// OutcomeSkipped means the job was missing, already handled, waiting for a
	// retry or claimed by another worker.
	OutcomeSkipped ProcessOutcome = "skipped"
	// OutcomeAdvanced means the attempt succeeded.
	OutcomeAdvanced ProcessOutcome = "advanced"
	// OutcomeRetryScheduled means the attempt failed and the job was requeued.
	OutcomeRetryScheduled ProcessOutcome = "retry_scheduled"
	// OutcomeFailed means the attempt failed and the retry budget is spent.
	OutcomeFailed ProcessOutcome = "failed"
)

// ProcessFulfillmentJobCommandHandler runs one attempt of a job on its channel.
//
// The handler is safe to invoke any number of times for the same job. It does
// nothing for jobs that are missing, terminal, already handed to their channel or
// still waiting for their retry time. The claim is an optimistic update, so of two
// concurrent invocations only one proceeds.
//
// Per fulfillment type:
//   - digital: delivered at once with a synthetic reference, never retried
//   - manual: referenced locally, left processing until the seller ships
//   - warehouse: a pick-pack order is created, the job stays processing
//   - dropship: the best supplier receives the order, the job is shipped
//
// Warehouse and dropship attempts that fail before the channel accepts the order go
// through a single failure path that logs them, counts the attempt and either
// requeues the job with backoff or fails it. Once the channel accepted, errors are
// returned as they are and the job keeps the state it reached.
type ProcessFulfillmentJobCommandHandler struct {
	uowFactory     UoWFactory
	adapters       *AdapterCache
	warehouse      ports.SupplierAdapter
	selector       SupplierSelector
	adapterTimeout time.Duration
	metrics        Metrics
	logger         *slog.Logger
}

func NewProcessFulfillmentJobCommandHandler(
	uowFactory UoWFactory,
	adapters *AdapterCache,
	warehouse ports.SupplierAdapter,
	selector SupplierSelector,
	adapterTimeout time.Duration,
	metrics Metrics,
	logger *slog.Logger,
) ProcessFulfillmentJobCommandHandler {
	if adapterTimeout <= 0 {
		adapterTimeout = DefaultAdapterTimeout
	}
	return ProcessFulfillmentJobCommandHandler{
		uowFactory:     uowFactory,
		adapters:       adapters,
		warehouse:      warehouse,
		selector:       selector,
		adapterTimeout: adapterTimeout,
		metrics:        metrics,
		logger:         logger.With("component", "process_fulfillment_job"),
	}
}

// Handle runs the attempt. Channel failures are absorbed by the failure path and
// reported through the outcome; a returned error comes from persistence and leaves
// the job to be picked up again after its claim lease.
func (h ProcessFulfillmentJobCommandHandler) Handle(
	ctx context.Context,
	command ProcessFulfillmentJobCommand,
) (ProcessOutcome, error) {
	if err := command.Validate(); err != nil {
		return OutcomeSkipped, err
	}

	uow := h.uowFactory.Create()
	jobs := uow.JobRepository()

	job, err := jobs.Get(ctx, command.JobID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.WarnContext(ctx, "fulfillment job not found", "job_id", command.JobID().String())
		return OutcomeSkipped, nil
	}
	if err != nil {
		return OutcomeSkipped, err
	}

	now := time.Now()
	if !job.IsProcessable(now) {
		return OutcomeSkipped, nil
	}

	if err = job.Start(now); err != nil {
		return OutcomeSkipped, err
	}
	if err = jobs.Update(ctx, job); err != nil {
		if errors.Is(err, errs.ErrConcurrentUpdate) {
			return OutcomeSkipped, nil
		}
		return OutcomeSkipped, err
	}

	switch job.Type() {
	case fulfillment.Digital:
		err = h.deliverDigital(ctx, uow, job)
	case fulfillment.Manual:
		err = h.submitManual(ctx, uow, job)
	case fulfillment.Warehouse:
		result, cause := h.submitToWarehouse(ctx, uow, job)
		if cause != nil {
			return h.handleFailure(ctx, uow, job, cause)
		}
		err = h.recordWarehouseSubmission(ctx, uow, job, result)
	case fulfillment.Dropship:
		placement, cause := h.placeDropshipOrder(ctx, uow, job)
		if cause != nil {
			return h.handleFailure(ctx, uow, job, cause)
		}
		err = h.recordDropshipPlacement(ctx, uow, job, placement)
	default:
		err = fmt.Errorf("unsupported fulfillment type %q", job.Type())
	}
	if err != nil {
		return OutcomeSkipped, err
	}

	h.metrics.JobAdvanced(job.Type(), job.Status())
	h.logger.InfoContext(ctx, "fulfillment job advanced",
		"job_id", job.ID().String(), "fulfillment_type", job.Type().String(), "status", job.Status().String())
	return OutcomeAdvanced, nil
}

func (h ProcessFulfillmentJobCommandHandler) deliverDigital(ctx context.Context, uow UoW, job *fulfillment.Job) error {
	now := time.Now()
	if err := job.Deliver("DIGITAL-"+job.ID().String(), now); err != nil {
		return err
	}
	if err := uow.JobRepository().Update(ctx, job); err != nil {
		return err
	}
	_, err := markOrderDeliveredIfComplete(ctx, uow, job.OrderID(), now)
	return err
}

func (h ProcessFulfillmentJobCommandHandler) submitManual(ctx context.Context, uow UoW, job *fulfillment.Job) error {
	if err := job.Submit(nil, "MANUAL-"+job.ID().String(), time.Now()); err != nil {
		return err
	}
	return uow.JobRepository().Update(ctx, job)
}

// submitToWarehouse creates the pick task. An error means the warehouse did not
// accept the job and the attempt failed.
func (h ProcessFulfillmentJobCommandHandler) submitToWarehouse(
	ctx context.Context,
	uow UoW,
	job *fulfillment.Job,
) (supplier.OrderResult, error) {
	o, err := h.loadOrder(ctx, uow, job)
	if err != nil {
		return supplier.OrderResult{}, err
	}
	return h.createOrder(ctx, h.warehouse, buildOrderRequest(job, o, ""))
}

func (h ProcessFulfillmentJobCommandHandler) recordWarehouseSubmission(
	ctx context.Context,
	uow UoW,
	job *fulfillment.Job,
	result supplier.OrderResult,
) error {
	now := time.Now()
	if err := job.Submit(nil, result.SupplierOrderID, now); err != nil {
		return acceptedButNotRecorded(result.SupplierOrderID, err)
	}
	if _, err := job.UpdateTracking(result.TrackingNumber, result.Carrier, now); err != nil {
		return acceptedButNotRecorded(result.SupplierOrderID, err)
	}
	if err := uow.JobRepository().Update(ctx, job); err != nil {
		return acceptedButNotRecorded(result.SupplierOrderID, err)
	}
	return nil
}

// dropshipPlacement is an order the chosen supplier accepted.
type dropshipPlacement struct {
	order      *order.Order
	supplierID kernel.UUID
	result     supplier.OrderResult
}

// placeDropshipOrder selects the supplier and places the order. An error means no
// supplier accepted the job and the attempt failed.
func (h ProcessFulfillmentJobCommandHandler) placeDropshipOrder(
	ctx context.Context,
	uow UoW,
	job *fulfillment.Job,
) (dropshipPlacement, error) {
	o, err := h.loadOrder(ctx, uow, job)
	if err != nil {
		return dropshipPlacement{}, err
	}

	best, err := h.selector.SelectBestSupplier(ctx, uow.SupplierRepository(), job.PrimaryProductID())
	if err != nil {
		return dropshipPlacement{}, err
	}
	if best == nil {
		return dropshipPlacement{}, fmt.Errorf("%w: product %s", ErrNoSupplierAvailable, job.PrimaryProductID())
	}

	adapter, err := h.adapters.Get(best.Supplier)
	if err != nil {
		return dropshipPlacement{}, err
	}

	result, err := h.createOrder(ctx, adapter, buildOrderRequest(job, o, best.SupplierSKU))
	if err != nil {
		return dropshipPlacement{}, err
	}
	return dropshipPlacement{order: o, supplierID: best.SupplierID, result: result}, nil
}

// recordDropshipPlacement ships the job first so that a later bookkeeping failure
// cannot lead to a second supplier order.
func (h ProcessFulfillmentJobCommandHandler) recordDropshipPlacement(
	ctx context.Context,
	uow UoW,
	job *fulfillment.Job,
	p dropshipPlacement,
) error {
	now := time.Now()
	result := p.result
	supplierID := p.supplierID
	if err := job.Ship(fulfillment.Shipment{
		SupplierID:        &supplierID,
		SupplierOrderID:   result.SupplierOrderID,
		TrackingNumber:    result.TrackingNumber,
		Carrier:           result.Carrier,
		EstimatedDelivery: result.EstimatedDelivery,
	}, now); err != nil {
		return acceptedButNotRecorded(result.SupplierOrderID, err)
	}
	if err := uow.JobRepository().Update(ctx, job); err != nil {
		return acceptedButNotRecorded(result.SupplierOrderID, err)
	}

	if result.TrackingNumber != "" {
		s, err := shipment.NewShipment(job.OrderID(), job.ID(), result.TrackingNumber, result.Carrier)
		if err != nil {
			return fmt.Errorf("record shipment %s: %w", result.TrackingNumber, err)
		}
		if err = uow.ShipmentRepository().Add(ctx, s); err != nil {
			return fmt.Errorf("record shipment %s: %w", result.TrackingNumber, err)
		}
	}

	if err := p.order.MarkShipped(); err != nil {
		return fmt.Errorf("mark order %s shipped: %w", p.order.ID(), err)
	}
	if err := uow.OrderRepository().Update(ctx, p.order); err != nil {
		return fmt.Errorf("mark order %s shipped: %w", p.order.ID(), err)
	}
	return nil
}

func acceptedButNotRecorded(reference string, err error) error {
	return fmt.Errorf("channel accepted order %s but the job was not updated: %w", reference, err)
}

// createOrder calls the channel under the adapter timeout and turns every kind of
// channel failure into ErrAdapter.
func (h ProcessFulfillmentJobCommandHandler) createOrder(
	ctx context.Context,
	adapter ports.SupplierAdapter,
	req supplier.OrderRequest,
) (supplier.OrderResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, h.adapterTimeout)
	defer cancel()

	result, err := adapter.CreateOrder(callCtx, req)
	if err != nil {
		return supplier.OrderResult{}, fmt.Errorf("%w: create order: %w", ErrAdapter, err)
	}
	if !result.Success {
		return supplier.OrderResult{}, fmt.Errorf("%w: order rejected: %s", ErrAdapter, result.Error)
	}
	if result.SupplierOrderID == "" {
		return supplier.OrderResult{}, fmt.Errorf("%w: response without supplier order id", ErrAdapter)
	}
	return result, nil
}

func (h ProcessFulfillmentJobCommandHandler) loadOrder(ctx context.Context, uow UoW, job *fulfillment.Job) (*order.Order, error) {
	o, err := uow.OrderRepository().Get(ctx, job.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, job.OrderID())
	}
	return o, err
}

// handleFailure is the single failure path of an attempt.
func (h ProcessFulfillmentJobCommandHandler) handleFailure(
	ctx context.Context,
	uow UoW,
	job *fulfillment.Job,
	cause error,
) (ProcessOutcome, error) {
	now := time.Now()
	outcome, err := job.RecordFailure(cause.Error(), now)
	if err != nil {
		return OutcomeSkipped, errors.Join(cause, err)
	}
	if err = uow.JobRepository().Update(ctx, job); err != nil {
		return OutcomeSkipped, errors.Join(cause, err)
	}

	record := fulfillment.FailureRecord{
		JobID:      job.ID(),
		OrderID:    job.OrderID(),
		Attempt:    outcome.Attempt,
		Message:    cause.Error(),
		Exhausted:  outcome.Exhausted,
		OccurredAt: now,
	}
	if err = uow.FailureLogRepository().Add(ctx, record); err != nil {
		h.logger.ErrorContext(ctx, "failed to store failure record", "job_id", job.ID().String(), "error", err)
	}
	h.metrics.JobAttemptFailed(job.Type(), outcome.Exhausted)

	if outcome.Exhausted {
		h.logger.ErrorContext(ctx, "fulfillment job failed permanently",
			"job_id", job.ID().String(),
			"order_id", job.OrderID().String(),
			"fulfillment_type", job.Type().String(),
			"attempt", outcome.Attempt,
			"error", fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, cause),
		)
		return OutcomeFailed, nil
	}

	h.logger.WarnContext(ctx, "fulfillment job attempt failed",
		"job_id", job.ID().String(),
		"order_id", job.OrderID().String(),
		"fulfillment_type", job.Type().String(),
		"attempt", outcome.Attempt,
		"next_retry_at", *outcome.NextRetryAt,
		"error", cause,
	)
	return OutcomeRetryScheduled, nil
}

// buildOrderRequest maps a job and its order into the adapter payload. sku, when
// given, is the supplier SKU of the job's primary product.
func buildOrderRequest(job *fulfillment.Job, o *order.Order, sku string) supplier.OrderRequest {
	items := job.Items()
	lines := make([]supplier.OrderLine, 0, len(items))
	for i, item := range items {
		line := supplier.OrderLine{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
		}
		if i == 0 {
			line.SKU = sku
		}
		lines = append(lines, line)
	}

	return supplier.OrderRequest{
		Reference:       job.ID().String(),
		JobID:           job.ID().String(),
		OrderID:         o.ID().String(),
		ShippingAddress: supplier.AddressFrom(o.BuyerName(), o.ShippingAddress()),
		Lines:           lines,
	}
}

// markOrderDeliveredIfComplete marks the order delivered when every job of the order
// is delivered. It reports whether the order was marked.
func markOrderDeliveredIfComplete(ctx context.Context, uow UoW, orderID kernel.UUID, now time.Time) (bool, error) {
	jobs, err := uow.JobRepository().GetAllByOrder(ctx, orderID)
	if err != nil || len(jobs) == 0 {
		return false, err
	}
	for _, job := range jobs {
		if job.Status() != fulfillment.Delivered {
			return false, nil
		}
	}

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return false, err
	}
	if o.Status() == order.Delivered {
		return false, nil
	}
	if err = o.MarkDelivered(now); err != nil {
		return false, err
	}
	return true, uow.OrderRepository().Update(ctx, o)
}
