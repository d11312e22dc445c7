package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/supplier"
)

// SupplierAdapter is the capability set every fulfillment channel implements.
//
// Business failures (rejected order, unknown reference) come back in the result
// types; a returned error means the channel could not be reached or answered with
// something unusable.
type SupplierAdapter interface {
	SearchProducts(ctx context.Context, query string) ([]supplier.Product, error)
	GetProduct(ctx context.Context, sku string) (*supplier.Product, error)
	CreateOrder(ctx context.Context, req supplier.OrderRequest) (supplier.OrderResult, error)

	// GetTracking returns nil when the channel has no tracking for the reference yet.
	GetTracking(ctx context.Context, supplierOrderID string) (*shipment.TrackingInfo, error)

	CancelOrder(ctx context.Context, supplierOrderID string) (supplier.CancelResult, error)
	SupportsFeature(feature supplier.Feature) bool
}

// JobDispatcher hands a job over for out-of-band processing. Delivery is at least
// once; an error means the job was not enqueued.
type JobDispatcher interface {
	Dispatch(ctx context.Context, jobID kernel.UUID) error
}
