package suppliers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/supplier"
	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// WarehouseAdapter hands jobs to the internal warehouse as pick tasks. The task
// reference doubles as the supplier order id of the job.
type WarehouseAdapter struct {
	tasks ports.PickTaskRepository
	now   func() time.Time
}

func NewWarehouseAdapter(tasks ports.PickTaskRepository) *WarehouseAdapter {
	return &WarehouseAdapter{tasks: tasks, now: time.Now}
}

func (a *WarehouseAdapter) SearchProducts(context.Context, string) ([]supplier.Product, error) {
	return []supplier.Product{}, nil
}

func (a *WarehouseAdapter) GetProduct(context.Context, string) (*supplier.Product, error) {
	return nil, nil
}

func (a *WarehouseAdapter) CreateOrder(ctx context.Context, req supplier.OrderRequest) (supplier.OrderResult, error) {
	task, err := warehouse.NewPickTask(req, a.now())
	if err != nil {
		return supplier.OrderResult{Success: false, Error: err.Error()}, nil
	}
	if err = a.tasks.Add(ctx, task); err != nil {
		return supplier.OrderResult{}, fmt.Errorf("store pick task: %w", err)
	}
	return supplier.OrderResult{Success: true, SupplierOrderID: task.Reference()}, nil
}

// GetTracking returns nil while the task waits to be picked.
func (a *WarehouseAdapter) GetTracking(ctx context.Context, reference string) (*shipment.TrackingInfo, error) {
	task, err := a.tasks.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	switch task.Status() {
	case warehouse.TaskShipped:
		return a.trackingOf(task, shipment.InTransit, "Shipped from warehouse"), nil
	case warehouse.TaskDelivered:
		return a.trackingOf(task, shipment.Delivered, "Delivered"), nil
	case warehouse.TaskCancelled:
		return a.trackingOf(task, shipment.FailedDelivery, "Pick task cancelled"), nil
	default:
		return nil, nil
	}
}

func (a *WarehouseAdapter) trackingOf(task *warehouse.PickTask, status shipment.TrackingStatus, description string) *shipment.TrackingInfo {
	return &shipment.TrackingInfo{
		TrackingNumber: task.TrackingNumber(),
		Carrier:        task.Carrier(),
		Status:         status,
		Events: []shipment.Event{{
			Status:      status,
			Description: description,
			OccurredAt:  task.UpdatedAt(),
		}},
	}
}

func (a *WarehouseAdapter) CancelOrder(ctx context.Context, reference string) (supplier.CancelResult, error) {
	task, err := a.tasks.GetByReference(ctx, reference)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return supplier.CancelResult{Success: false, Error: "unknown pick task " + reference}, nil
	}
	if err != nil {
		return supplier.CancelResult{}, err
	}

	if err = task.Cancel(a.now()); err != nil {
		return supplier.CancelResult{Success: false, Error: err.Error()}, nil
	}
	if err = a.tasks.Update(ctx, task); err != nil {
		return supplier.CancelResult{}, err
	}
	return supplier.CancelResult{Success: true}, nil
}

func (a *WarehouseAdapter) SupportsFeature(feature supplier.Feature) bool {
	switch feature {
	case supplier.FeatureAutoTracking, supplier.FeatureCancellation:
		return true
	default:
		return false
	}
}
