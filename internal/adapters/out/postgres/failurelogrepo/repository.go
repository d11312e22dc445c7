// Package failurelogrepo appends failed fulfillment attempts to the
// fulfillment_errors table.
package failurelogrepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/fulfillment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FailureDTO is the row of the fulfillment_errors table.
type FailureDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID      uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Attempt    int       `gorm:"not null"`
	Message    string    `gorm:"type:text;not null"`
	Exhausted  bool      `gorm:"not null"`
	OccurredAt time.Time `gorm:"not null"`
}

func (FailureDTO) TableName() string {
	return "fulfillment_errors"
}

// GormFailureLogRepository implements ports.FailureLogRepository using GORM.
type GormFailureLogRepository struct {
	db *gorm.DB
}

func NewGormFailureLogRepository(db *gorm.DB) *GormFailureLogRepository {
	return &GormFailureLogRepository{db: db}
}

func (r *GormFailureLogRepository) Add(ctx context.Context, record fulfillment.FailureRecord) error {
	dto := FailureDTO{
		ID:         uuid.New(),
		JobID:      record.JobID.Bytes(),
		OrderID:    record.OrderID.Bytes(),
		Attempt:    record.Attempt,
		Message:    record.Message,
		Exhausted:  record.Exhausted,
		OccurredAt: record.OccurredAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}
