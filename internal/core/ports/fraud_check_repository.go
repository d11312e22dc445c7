package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/fraud"
	"fulfillment/internal/core/domain/model/kernel"
)

// FraudCheckRepository stores at most one fraud check per order.
type FraudCheckRepository interface {
	// Get returns the check of an order, or errs.ErrObjectNotFound.
	Get(ctx context.Context, orderID kernel.UUID) (*fraud.Check, error)

	// AddIfAbsent inserts the check unless the order already has one and returns the
	// stored check, which is the existing one when a concurrent caller won.
	AddIfAbsent(ctx context.Context, check *fraud.Check) (*fraud.Check, error)
}
