package queries

import (
	"context"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// GetTopSuppliersQueryHandler scores every eligible supplier with the same scorer
// that picks dropship suppliers, so the ranking shown is the ranking used.
type GetTopSuppliersQueryHandler struct {
	suppliers ports.SupplierRepository
	scorer    services.SupplierScorer
}

func NewGetTopSuppliersQueryHandler(suppliers ports.SupplierRepository, scorer services.SupplierScorer) GetTopSuppliersQueryHandler {
	return GetTopSuppliersQueryHandler{suppliers: suppliers, scorer: scorer}
}

// Handle returns at most query.Limit() suppliers, best first. A product without
// eligible offers yields an empty slice.
func (h GetTopSuppliersQueryHandler) Handle(ctx context.Context, query GetTopSuppliersQuery) ([]GetTopSuppliersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	candidates, err := h.suppliers.GetCandidates(ctx, query.ProductID())
	if err != nil {
		return nil, err
	}

	ranked := h.scorer.Rank(candidates)
	if len(ranked) > query.Limit() {
		ranked = ranked[:query.Limit()]
	}

	response := make([]GetTopSuppliersQueryResponse, 0, len(ranked))
	for _, s := range ranked {
		response = append(response, GetTopSuppliersQueryResponse{
			SupplierID:    s.SupplierID,
			SupplierName:  s.SupplierName,
			CostCents:     s.CostCents,
			Score:         s.Score,
			PriceScore:    s.Breakdown.PriceScore,
			ShippingScore: s.Breakdown.ShippingScore,
			RatingScore:   s.Breakdown.RatingScore,
			RiskScore:     s.Breakdown.RiskScore,
		})
	}
	return response, nil
}
