package shipment

import (
	"errors"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment constructor")

// Shipment is the tracking record of one parcel of an order, keyed by
// (order, tracking number).
type Shipment struct {
	id               kernel.UUID
	orderID          kernel.UUID
	fulfillmentJobID kernel.UUID
	trackingNumber   string
	carrier          string
	status           TrackingStatus
	events           []Event
	deliveredAt      *time.Time

	isConstructed bool
}

func NewShipment(orderID, jobID kernel.UUID, trackingNumber, carrier string) (*Shipment, error) {
	return RestoreShipment(Params{
		ID:               kernel.NewUUID(),
		OrderID:          orderID,
		FulfillmentJobID: jobID,
		TrackingNumber:   trackingNumber,
		Carrier:          carrier,
		Status:           Pending,
	})
}

type Params struct {
	ID               kernel.UUID
	OrderID          kernel.UUID
	FulfillmentJobID kernel.UUID
	TrackingNumber   string
	Carrier          string
	Status           TrackingStatus
	Events           []Event
	DeliveredAt      *time.Time
}

func RestoreShipment(p Params) (*Shipment, error) {
	err := errors.Join(p.ID.Validate(), p.OrderID.Validate(), p.FulfillmentJobID.Validate(), p.Status.Validate())
	if p.TrackingNumber == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("trackingNumber"))
	}
	if err != nil {
		return nil, err
	}

	return &Shipment{
		id:               p.ID,
		orderID:          p.OrderID,
		fulfillmentJobID: p.FulfillmentJobID,
		trackingNumber:   p.TrackingNumber,
		carrier:          p.Carrier,
		status:           p.Status,
		events:           slices.Clone(p.Events),
		deliveredAt:      p.DeliveredAt,
		isConstructed:    true,
	}, nil
}

func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

func (s *Shipment) ID() kernel.UUID { return s.id }
func (s *Shipment) OrderID() kernel.UUID { return s.orderID }
func (s *Shipment) FulfillmentJobID() kernel.UUID { return s.fulfillmentJobID }
func (s *Shipment) TrackingNumber() string { return s.trackingNumber }
func (s *Shipment) Carrier() string { return s.carrier }
func (s *Shipment) Status() TrackingStatus { return s.status }
func (s *Shipment) Events() []Event { return slices.Clone(s.events) }
func (s *Shipment) DeliveredAt() *time.Time { return s.deliveredAt }

// ApplyTracking replaces status and events with the carrier's latest view. DeliveredAt
// is stamped the first time the shipment is seen delivered and never moves after.
func (s *Shipment) ApplyTracking(info TrackingInfo, now time.Time) error {
	if err := info.Status.Validate(); err != nil {
		return err
	}
	if info.Carrier != "" {
		s.carrier = info.Carrier
	}
	s.status = info.Status
	s.events = slices.Clone(info.Events)

	if info.Status == Delivered && s.deliveredAt == nil {
		at := now.UTC()
		s.deliveredAt = &at
	}
	return nil
}
