package commands

import (
	"errors"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateFulfillmentJobCommandIsNotConstructed = errors.New(
	"CreateFulfillmentJobCommand must be created via NewCreateFulfillmentJobCommand constructor",
)

// CreateFulfillmentJobCommand starts fulfillment of a paid order. Items restrict the
// fulfillment to a subset of the order; when empty, every order item is fulfilled.
//
// Example:
//
//	cmd, err := NewCreateFulfillmentJobCommand(orderID, storeID, nil)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrFraudBlocked) {
//	    // order held for review, nothing was created
//	}
type CreateFulfillmentJobCommand struct {
	orderID kernel.UUID
	storeID kernel.UUID
	items   []order.Item

	guard guard.ConstructorGuard
}

func NewCreateFulfillmentJobCommand(orderID, storeID kernel.UUID, items []order.Item) (CreateFulfillmentJobCommand, error) {
	err := errors.Join(orderID.Validate(), storeID.Validate())
	for _, item := range items {
		err = errors.Join(err, item.Validate())
	}
	if err != nil {
		return CreateFulfillmentJobCommand{}, err
	}

	return CreateFulfillmentJobCommand{
		orderID: orderID,
		storeID: storeID,
		items:   slices.Clone(items),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateFulfillmentJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateFulfillmentJobCommandIsNotConstructed)
}

func (c CreateFulfillmentJobCommand) OrderID() kernel.UUID { return c.orderID }
func (c CreateFulfillmentJobCommand) StoreID() kernel.UUID { return c.storeID }
func (c CreateFulfillmentJobCommand) Items() []order.Item { return slices.Clone(c.items) }
