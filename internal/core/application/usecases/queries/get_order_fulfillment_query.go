// Package queries contains read operations over fulfillment state. Handlers read
// straight from the database into response models and never expose supplier order
// references or raw failure messages.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderFulfillmentQueryIsNotConstructed = errors.New(
	"GetOrderFulfillmentQuery must be created via NewGetOrderFulfillmentQuery constructor",
)

// GetOrderFulfillmentQuery reads the fulfillment progress of one order.
//
// Example:
//
//	query, err := NewGetOrderFulfillmentQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//	for _, job := range view.Jobs {
//	    fmt.Printf("%s job is %s\n", job.FulfillmentType, job.Status)
//	}
type GetOrderFulfillmentQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderFulfillmentQuery(orderID kernel.UUID) (GetOrderFulfillmentQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderFulfillmentQuery{}, err
	}
	return GetOrderFulfillmentQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderFulfillmentQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderFulfillmentQueryIsNotConstructed)
}

func (q GetOrderFulfillmentQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderFulfillmentQueryResponse is the buyer and operator facing view of an order.
type GetOrderFulfillmentQueryResponse struct {
	OrderID     kernel.UUID
	OrderStatus string
	DeliveredAt *time.Time
	Jobs        []JobSummary
	Shipments   []ShipmentSummary
}

// JobSummary describes one fulfillment job. A failed job only reports that it
// failed and how many attempts were made.
type JobSummary struct {
	ID                kernel.UUID
	FulfillmentType   string
	Status            string
	TrackingNumber    string
	Carrier           string
	EstimatedDelivery *time.Time
	Attempts          int
	NextRetryAt       *time.Time
	UpdatedAt         time.Time
}

type ShipmentSummary struct {
	TrackingNumber string
	Carrier        string
	Status         string
	DeliveredAt    *time.Time
}
