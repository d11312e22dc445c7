package shipment

import (
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
)

// TrackingStatus is the carrier-neutral shipment state.
type TrackingStatus string

const (
	Pending        TrackingStatus = "pending"
	InTransit      TrackingStatus = "in_transit"
	OutForDelivery TrackingStatus = "out_for_delivery"
	Delivered      TrackingStatus = "delivered"
	FailedDelivery TrackingStatus = "failed"
)

func (s TrackingStatus) Validate() error {
	switch s {
	case Pending, InTransit, OutForDelivery, Delivered, FailedDelivery:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("tracking status", fmt.Errorf("%q is not a valid tracking status", string(s)))
	}
}

func (s TrackingStatus) String() string {
	return string(s)
}

// Event is one checkpoint reported by a carrier.
type Event struct {
	Status      TrackingStatus `json:"status"`
	Description string         `json:"description"`
	Location    string         `json:"location,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
}

// TrackingInfo is what an adapter reports for a supplier order.
type TrackingInfo struct {
	TrackingNumber    string
	Carrier           string
	Status            TrackingStatus
	EstimatedDelivery *time.Time
	Events            []Event
}
