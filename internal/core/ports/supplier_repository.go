package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/supplier"
)

// SupplierRepository reads suppliers and their offers.
type SupplierRepository interface {
	// Get returns a supplier by id, or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*supplier.Supplier, error)

	// GetCandidates returns available offers of a product from active suppliers,
	// ordered by offer creation time then supplier id. Rankings with equal scores
	// keep this order.
	GetCandidates(ctx context.Context, productID kernel.UUID) ([]supplier.Candidate, error)
}

// ProductCatalog resolves how products are delivered.
type ProductCatalog interface {
	// FulfillmentTypes returns the type of every known product among productIDs.
	// Unknown products are missing from the map.
	FulfillmentTypes(ctx context.Context, productIDs []kernel.UUID) (map[kernel.UUID]fulfillment.Type, error)
}
