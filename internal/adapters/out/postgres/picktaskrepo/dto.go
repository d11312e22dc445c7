// Package picktaskrepo persists warehouse pick-pack tasks in the warehouse_tasks
// table.
package picktaskrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/supplier"
	"fulfillment/internal/core/domain/model/warehouse"

	"github.com/google/uuid"
)

// PickTaskDTO is the row of the warehouse_tasks table.
type PickTaskDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Reference       string          `gorm:"not null;uniqueIndex"`
	JobID           string          `gorm:"not null;index"`
	OrderID         string          `gorm:"not null"`
	Lines           json.RawMessage `gorm:"type:jsonb;not null"`
	ShippingAddress json.RawMessage `gorm:"type:jsonb;not null"`
	Status          string          `gorm:"type:varchar(16);not null;index"`
	TrackingNumber  string          `gorm:"not null;default:''"`
	Carrier         string          `gorm:"not null;default:''"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime:false"`
}

func (PickTaskDTO) TableName() string {
	return "warehouse_tasks"
}

func fromDomain(t *warehouse.PickTask) (PickTaskDTO, error) {
	lines, err := json.Marshal(t.Lines())
	if err != nil {
		return PickTaskDTO{}, err
	}
	address, err := json.Marshal(t.ShippingAddress())
	if err != nil {
		return PickTaskDTO{}, err
	}

	return PickTaskDTO{
		ID:              t.ID().Bytes(),
		Reference:       t.Reference(),
		JobID:           t.JobID(),
		OrderID:         t.OrderID(),
		Lines:           lines,
		ShippingAddress: address,
		Status:          string(t.Status()),
		TrackingNumber:  t.TrackingNumber(),
		Carrier:         t.Carrier(),
		CreatedAt:       t.CreatedAt(),
		UpdatedAt:       t.UpdatedAt(),
	}, nil
}

func toDomain(dto PickTaskDTO) (*warehouse.PickTask, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var lines []supplier.OrderLine
	if err = json.Unmarshal(dto.Lines, &lines); err != nil {
		return nil, err
	}
	var address supplier.Address
	if err = json.Unmarshal(dto.ShippingAddress, &address); err != nil {
		return nil, err
	}

	return warehouse.RestorePickTask(warehouse.Params{
		ID:              id,
		Reference:       dto.Reference,
		JobID:           dto.JobID,
		OrderID:         dto.OrderID,
		Lines:           lines,
		ShippingAddress: address,
		Status:          warehouse.TaskStatus(dto.Status),
		TrackingNumber:  dto.TrackingNumber,
		Carrier:         dto.Carrier,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
	})
}
