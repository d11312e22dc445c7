package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
)

// ShipmentRepository persists shipment tracking records.
type ShipmentRepository interface {
	Add(ctx context.Context, s *shipment.Shipment) error
	Update(ctx context.Context, s *shipment.Shipment) error

	// GetByTracking finds the shipment of an order by tracking number.
	// Returns errs.ErrObjectNotFound when absent.
	GetByTracking(ctx context.Context, orderID kernel.UUID, trackingNumber string) (*shipment.Shipment, error)
}
