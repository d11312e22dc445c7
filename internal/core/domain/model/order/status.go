package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the buyer-visible order state. It is an aggregation of the order's
// fulfillment job statuses and is the only order field this service writes.
//
// State transitions:
//
//	Paid ──> Processing ──> Shipped ──> Delivered
//	  │          │                        ▲
//	  └──────────┴────────────────────────┘
//	 (digital-only orders skip shipping)
//
// Cancelled is owned by the upstream commerce system and blocks every transition.
type Status string

const (
	Paid       Status = "paid"
	Processing Status = "processing"
	Shipped    Status = "shipped"
	Delivered  Status = "delivered"
	Cancelled  Status = "cancelled"
)

var validStatuses = map[Status]struct{}{
	Paid:       {},
	Processing: {},
	Shipped:    {},
	Delivered:  {},
	Cancelled:  {},
}

// Validate checks that the status is one of the known values.
func (s Status) Validate() error {
	if _, ok := validStatuses[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid order status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// Ship transitions to Shipped. Shipped and Delivered orders keep their status so a
// late shipment of one job never downgrades an order another job already delivered.
func (s Status) Ship() (Status, error) {
	switch s {
	case Paid, Processing, Shipped:
		return Shipped, nil
	case Delivered:
		return Delivered, nil
	default:
		return s, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to ship", s),
		)
	}
}

// Deliver transitions to Delivered from any open status.
func (s Status) Deliver() (Status, error) {
	switch s {
	case Paid, Processing, Shipped, Delivered:
		return Delivered, nil
	default:
		return s, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s),
		)
	}
}
