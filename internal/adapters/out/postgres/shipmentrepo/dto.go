// Package shipmentrepo persists shipments and their carrier event history.
package shipmentrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO is the row of the shipments table, unique per order and tracking
// number.
type ShipmentDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_shipments_tracking"`
	TrackingNumber   string          `gorm:"not null;uniqueIndex:idx_shipments_tracking"`
	FulfillmentJobID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Carrier          string          `gorm:"not null;default:''"`
	Status           string          `gorm:"type:varchar(32);not null"`
	Events           json.RawMessage `gorm:"type:jsonb;not null"`
	DeliveredAt      *time.Time
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

func fromDomain(s *shipment.Shipment) (ShipmentDTO, error) {
	events := s.Events()
	if events == nil {
		events = []shipment.Event{}
	}
	raw, err := json.Marshal(events)
	if err != nil {
		return ShipmentDTO{}, err
	}

	return ShipmentDTO{
		ID:               s.ID().Bytes(),
		OrderID:          s.OrderID().Bytes(),
		TrackingNumber:   s.TrackingNumber(),
		FulfillmentJobID: s.FulfillmentJobID().Bytes(),
		Carrier:          s.Carrier(),
		Status:           string(s.Status()),
		Events:           raw,
		DeliveredAt:      s.DeliveredAt(),
	}, nil
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	jobID, err := kernel.UUIDFromBytes(dto.FulfillmentJobID[:])
	if err != nil {
		return nil, err
	}

	var events []shipment.Event
	if err = json.Unmarshal(dto.Events, &events); err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(shipment.Params{
		ID:               id,
		OrderID:          orderID,
		FulfillmentJobID: jobID,
		TrackingNumber:   dto.TrackingNumber,
		Carrier:          dto.Carrier,
		Status:           shipment.TrackingStatus(dto.Status),
		Events:           events,
		DeliveredAt:      dto.DeliveredAt,
	})
}
