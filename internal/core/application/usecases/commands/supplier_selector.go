package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// SupplierSelector ranks the suppliers of a product.
type SupplierSelector struct {
	scorer services.SupplierScorer
}

func NewSupplierSelector(scorer services.SupplierScorer) SupplierSelector {
	return SupplierSelector{scorer: scorer}
}

// SelectBestSupplier returns the highest scored supplier, or nil when none is eligible.
func (s SupplierSelector) SelectBestSupplier(
	ctx context.Context,
	repo ports.SupplierRepository,
	productID kernel.UUID,
) (*services.SupplierScore, error) {
	ranked, err := s.TopSuppliers(ctx, repo, productID, 1)
	if err != nil || len(ranked) == 0 {
		return nil, err
	}
	return &ranked[0], nil
}

// TopSuppliers returns up to n suppliers, best first. A non-positive n returns all.
func (s SupplierSelector) TopSuppliers(
	ctx context.Context,
	repo ports.SupplierRepository,
	productID kernel.UUID,
	n int,
) ([]services.SupplierScore, error) {
	candidates, err := repo.GetCandidates(ctx, productID)
	if err != nil {
		return nil, err
	}
	ranked := s.scorer.Rank(candidates)
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}
