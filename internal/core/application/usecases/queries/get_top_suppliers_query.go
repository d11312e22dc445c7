package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	DefaultTopSuppliersLimit = 5
	MaxTopSuppliersLimit     = 50
)

var ErrGetTopSuppliersQueryIsNotConstructed = errors.New(
	"GetTopSuppliersQuery must be created via NewGetTopSuppliersQuery constructor",
)

// GetTopSuppliersQuery ranks the dropship suppliers of a product.
type GetTopSuppliersQuery struct {
	productID kernel.UUID
	limit     int

	guard guard.ConstructorGuard
}

// NewGetTopSuppliersQuery uses DefaultTopSuppliersLimit for a non-positive limit.
func NewGetTopSuppliersQuery(productID kernel.UUID, limit int) (GetTopSuppliersQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetTopSuppliersQuery{}, err
	}
	if limit <= 0 {
		limit = DefaultTopSuppliersLimit
	}
	if limit > MaxTopSuppliersLimit {
		return GetTopSuppliersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxTopSuppliersLimit)
	}

	return GetTopSuppliersQuery{productID: productID, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTopSuppliersQuery) Validate() error {
	return q.guard.Validate(ErrGetTopSuppliersQueryIsNotConstructed)
}

func (q GetTopSuppliersQuery) ProductID() kernel.UUID { return q.productID }
func (q GetTopSuppliersQuery) Limit() int { return q.limit }

// GetTopSuppliersQueryResponse is one ranked supplier with its factor breakdown.
type GetTopSuppliersQueryResponse struct {
	SupplierID    kernel.UUID
	SupplierName  string
	CostCents     int64
	Score         float64
	PriceScore    float64
	ShippingScore float64
	RatingScore   float64
	RiskScore     float64
}
