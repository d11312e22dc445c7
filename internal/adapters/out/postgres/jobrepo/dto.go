// Package jobrepo persists fulfillment jobs with optimistic versioning.
package jobrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO is the row of the fulfillment_jobs table. The unique (order_id,
// fulfillment_type) index keeps a single job per order partition even when an
// order-paid event is delivered twice.
type JobDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_fulfillment_jobs_partition"`
	StoreID           uuid.UUID       `gorm:"type:uuid;not null"`
	FulfillmentType   string          `gorm:"type:varchar(16);not null;uniqueIndex:idx_fulfillment_jobs_partition"`
	Status            string          `gorm:"type:varchar(16);not null;index"`
	SupplierID        *uuid.UUID      `gorm:"type:uuid"`
	SupplierOrderID   string          `gorm:"not null;default:''"`
	TrackingNumber    string          `gorm:"not null;default:''"`
	Carrier           string          `gorm:"not null;default:''"`
	EstimatedDelivery *time.Time      `gorm:"column:estimated_delivery_date"`
	RetryCount        int             `gorm:"not null"`
	MaxRetries        int             `gorm:"not null"`
	NextRetryAt       *time.Time      `gorm:"index"`
	ErrorMessage      string          `gorm:"type:text;not null;default:''"`
	Metadata          json.RawMessage `gorm:"type:jsonb;not null"`
	Version           int             `gorm:"not null"`
	CreatedAt         time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt         time.Time       `gorm:"not null;autoUpdateTime:false"`
}

func (JobDTO) TableName() string {
	return "fulfillment_jobs"
}

func fromDomain(j *fulfillment.Job) (JobDTO, error) {
	items, err := orderrepo.MarshalItems(j.Items())
	if err != nil {
		return JobDTO{}, err
	}

	var supplierID *uuid.UUID
	if id := j.SupplierID(); id != nil {
		raw := id.Bytes()
		supplierID = &raw
	}

	return JobDTO{
		ID:                j.ID().Bytes(),
		OrderID:           j.OrderID().Bytes(),
		StoreID:           j.StoreID().Bytes(),
		FulfillmentType:   string(j.Type()),
		Status:            string(j.Status()),
		SupplierID:        supplierID,
		SupplierOrderID:   j.SupplierOrderID(),
		TrackingNumber:    j.TrackingNumber(),
		Carrier:           j.Carrier(),
		EstimatedDelivery: j.EstimatedDelivery(),
		RetryCount:        j.RetryCount(),
		MaxRetries:        j.MaxRetries(),
		NextRetryAt:       j.NextRetryAt(),
		ErrorMessage:      j.ErrorMessage(),
		Metadata:          items,
		Version:           j.Version(),
		CreatedAt:         j.CreatedAt(),
		UpdatedAt:         j.UpdatedAt(),
	}, nil
}

func toDomain(dto JobDTO) (*fulfillment.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	var supplierID *kernel.UUID
	if dto.SupplierID != nil {
		sID, idErr := kernel.UUIDFromBytes((*dto.SupplierID)[:])
		if idErr != nil {
			return nil, idErr
		}
		supplierID = &sID
	}

	items, err := orderrepo.UnmarshalItems(dto.Metadata)
	if err != nil {
		return nil, err
	}

	return fulfillment.RestoreJob(fulfillment.Params{
		ID:                id,
		OrderID:           orderID,
		StoreID:           storeID,
		FulfillmentType:   fulfillment.Type(dto.FulfillmentType),
		Status:            fulfillment.Status(dto.Status),
		SupplierID:        supplierID,
		SupplierOrderID:   dto.SupplierOrderID,
		TrackingNumber:    dto.TrackingNumber,
		Carrier:           dto.Carrier,
		EstimatedDelivery: dto.EstimatedDelivery,
		RetryCount:        dto.RetryCount,
		MaxRetries:        dto.MaxRetries,
		NextRetryAt:       dto.NextRetryAt,
		ErrorMessage:      dto.ErrorMessage,
		Items:             items,
		Version:           dto.Version,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
	})
}
