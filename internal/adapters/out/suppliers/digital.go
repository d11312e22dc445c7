package suppliers

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/supplier"
)

// DigitalAdapter delivers downloadable goods instantly.
type DigitalAdapter struct {
	now func() time.Time
}

func NewDigitalAdapter() *DigitalAdapter {
	return &DigitalAdapter{now: time.Now}
}

func (a *DigitalAdapter) SearchProducts(context.Context, string) ([]supplier.Product, error) {
	return []supplier.Product{}, nil
}

func (a *DigitalAdapter) GetProduct(context.Context, string) (*supplier.Product, error) {
	return nil, nil
}

func (a *DigitalAdapter) CreateOrder(_ context.Context, req supplier.OrderRequest) (supplier.OrderResult, error) {
	return supplier.OrderResult{
		Success:         true,
		SupplierOrderID: localReference("DIGITAL-", req),
	}, nil
}

// GetTracking reports a single delivered event for any reference.
func (a *DigitalAdapter) GetTracking(context.Context, string) (*shipment.TrackingInfo, error) {
	return &shipment.TrackingInfo{
		Status: shipment.Delivered,
		Events: []shipment.Event{{
			Status:      shipment.Delivered,
			Description: "Delivered electronically",
			OccurredAt:  a.now().UTC(),
		}},
	}, nil
}

func (a *DigitalAdapter) CancelOrder(context.Context, string) (supplier.CancelResult, error) {
	return supplier.CancelResult{Success: false, Error: "digital orders are delivered on creation"}, nil
}

func (a *DigitalAdapter) SupportsFeature(feature supplier.Feature) bool {
	return feature == supplier.FeatureAutoTracking
}
