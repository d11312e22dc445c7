package suppliers

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/supplier"
)

// ManualAdapter represents a seller who ships by hand and attaches tracking out of band.
type ManualAdapter struct{}

func NewManualAdapter() *ManualAdapter {
	return &ManualAdapter{}
}

func (a *ManualAdapter) SearchProducts(context.Context, string) ([]supplier.Product, error) {
	return []supplier.Product{}, nil
}

func (a *ManualAdapter) GetProduct(context.Context, string) (*supplier.Product, error) {
	return nil, nil
}

// CreateOrder always accepts the order and mints a local reference.
func (a *ManualAdapter) CreateOrder(_ context.Context, req supplier.OrderRequest) (supplier.OrderResult, error) {
	return supplier.OrderResult{
		Success:         true,
		SupplierOrderID: localReference("MANUAL-", req),
	}, nil
}

func (a *ManualAdapter) GetTracking(context.Context, string) (*shipment.TrackingInfo, error) {
	return nil, nil
}

func (a *ManualAdapter) CancelOrder(context.Context, string) (supplier.CancelResult, error) {
	return supplier.CancelResult{Success: true}, nil
}

func (a *ManualAdapter) SupportsFeature(feature supplier.Feature) bool {
	return feature == supplier.FeatureCancellation
}

func localReference(prefix string, req supplier.OrderRequest) string {
	if req.JobID != "" {
		return prefix + req.JobID
	}
	return prefix + kernel.NewUUID().String()
}
