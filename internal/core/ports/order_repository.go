// Package ports defines the contracts between the fulfillment core and its
// infrastructure: repositories for every persisted record, the supplier adapter
// capability set and the out-of-band job dispatcher.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository gives access to orders owned by the upstream commerce system.
// Orders are never created here; only status and delivery time are written back.
type OrderRepository interface {
	// Get retrieves an order with its line items.
	// Returns errs.ErrObjectNotFound when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Update persists the order status and delivery time.
	Update(ctx context.Context, aggregate *order.Order) error
}
