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
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CreateFulfillmentJobResult reports the jobs of an order.
type CreateFulfillmentJobResult struct {
	Success bool
	// JobID is the first job of the order.
	JobID  kernel.UUID
	JobIDs []kernel.UUID
	// Created is false when the order already had jobs and nothing new was stored.
	Created bool
}

// CreateFulfillmentJobCommandHandler turns a paid order into fulfillment jobs, one per
// fulfillment type present among its items, and hands each job to the dispatcher.
//
// Processing happens out of band: when Handle returns, jobs are queued, not
// processed. A dispatch failure leaves the job queued for the retry sweep.
//
// Handling is idempotent per order. If the order already has jobs they are returned
// and nothing is created, so a redelivered payment event is harmless.
type CreateFulfillmentJobCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.JobDispatcher
	fraudGate  FraudGate
	maxRetries int
	metrics    Metrics
	logger     *slog.Logger
}

func NewCreateFulfillmentJobCommandHandler(
	uowFactory UoWFactory,
	dispatcher ports.JobDispatcher,
	maxRetries int,
	metrics Metrics,
	logger *slog.Logger,
) CreateFulfillmentJobCommandHandler {
	return CreateFulfillmentJobCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		fraudGate:  NewFraudGate(),
		maxRetries: maxRetries,
		metrics:    metrics,
		logger:     logger.With("component", "create_fulfillment_job"),
	}
}

// Handle creates the jobs of an order.
//
// Returns ErrOrderNotFound, ErrFraudBlocked or ErrNoValidProducts for business
// rejections; any other error comes from persistence.
func (h CreateFulfillmentJobCommandHandler) Handle(
	ctx context.Context,
	command CreateFulfillmentJobCommand,
) (CreateFulfillmentJobResult, error) {
	if err := command.Validate(); err != nil {
		return CreateFulfillmentJobResult{}, err
	}

	uow := h.uowFactory.Create()

	o, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return CreateFulfillmentJobResult{}, fmt.Errorf("%w: %s", ErrOrderNotFound, command.OrderID())
	}
	if err != nil {
		return CreateFulfillmentJobResult{}, err
	}

	check, err := h.fraudGate.Check(ctx, uow.FraudCheckRepository(), o)
	if err != nil {
		return CreateFulfillmentJobResult{}, err
	}
	if check.IsBlocked() {
		h.logger.WarnContext(ctx, "order blocked by fraud check",
			"order_id", o.ID().String(), "risk_score", check.RiskScore(), "risk_factors", check.RiskFactors())
		return CreateFulfillmentJobResult{}, ErrFraudBlocked
	}

	existing, err := uow.JobRepository().GetAllByOrder(ctx, o.ID())
	if err != nil {
		return CreateFulfillmentJobResult{}, err
	}
	if len(existing) > 0 {
		return resultOf(existing, false), nil
	}

	items := command.Items()
	if len(items) == 0 {
		items = o.Items()
	}
	groups, err := h.partition(ctx, uow.ProductCatalog(), items)
	if err != nil {
		return CreateFulfillmentJobResult{}, err
	}
	if len(groups) == 0 {
		return CreateFulfillmentJobResult{}, ErrNoValidProducts
	}

	jobs, err := h.persist(ctx, uow, o, command.StoreID(), groups)
	if err != nil {
		return CreateFulfillmentJobResult{}, err
	}

	for _, job := range jobs {
		h.metrics.JobsCreated(job.Type(), 1)
		if err := h.dispatcher.Dispatch(ctx, job.ID()); err != nil {
			h.logger.ErrorContext(ctx, "failed to dispatch fulfillment job, left for retry sweep",
				"job_id", job.ID().String(), "order_id", o.ID().String(), "error", err)
		}
	}

	return resultOf(jobs, true), nil
}

type itemGroup struct {
	fulfillmentType fulfillment.Type
	items           []order.Item
}

// partition groups items by fulfillment type. Groups come out in the order their
// type is first seen; unknown products are fulfilled manually.
func (h CreateFulfillmentJobCommandHandler) partition(
	ctx context.Context,
	catalog ports.ProductCatalog,
	items []order.Item,
) ([]itemGroup, error) {
	if len(items) == 0 {
		return nil, nil
	}

	productIDs := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}
	types, err := catalog.FulfillmentTypes(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	groups := make([]itemGroup, 0, 4)
	index := make(map[fulfillment.Type]int, 4)
	for _, item := range items {
		t, ok := types[item.ProductID]
		if !ok {
			t = fulfillment.Manual
		}
		i, seen := index[t]
		if !seen {
			i = len(groups)
			index[t] = i
			groups = append(groups, itemGroup{fulfillmentType: t})
		}
		groups[i].items = append(groups[i].items, item)
	}
	return groups, nil
}

func (h CreateFulfillmentJobCommandHandler) persist(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	storeID kernel.UUID,
	groups []itemGroup,
) ([]*fulfillment.Job, error) {
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now()
	jobs := make([]*fulfillment.Job, 0, len(groups))
	for _, g := range groups {
		job, err := fulfillment.NewJob(o.ID(), storeID, g.fulfillmentType, g.items, h.maxRetries, now)
		if err != nil {
			return nil, err
		}
		if err = uow.JobRepository().Add(ctx, job); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return jobs, nil
}

func resultOf(jobs []*fulfillment.Job, created bool) CreateFulfillmentJobResult {
	ids := make([]kernel.UUID, 0, len(jobs))
	for _, job := range jobs {
		ids = append(ids, job.ID())
	}
	return CreateFulfillmentJobResult{Success: true, JobID: ids[0], JobIDs: ids, Created: created}
}
