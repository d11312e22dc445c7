package picktaskrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPickTaskRepository implements ports.PickTaskRepository using GORM.
type GormPickTaskRepository struct {
	db *gorm.DB
}

func NewGormPickTaskRepository(db *gorm.DB) *GormPickTaskRepository {
	return &GormPickTaskRepository{db: db}
}

func (r *GormPickTaskRepository) Add(ctx context.Context, task *warehouse.PickTask) error {
	if err := task.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(task)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormPickTaskRepository) Update(ctx context.Context, task *warehouse.PickTask) error {
	if err := task.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(task)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&PickTaskDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "tracking_number", "carrier", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("pick task", task.Reference())
	}
	return nil
}

func (r *GormPickTaskRepository) GetByReference(ctx context.Context, reference string) (*warehouse.PickTask, error) {
	var dto PickTaskDTO
	if err := r.db.WithContext(ctx).First(&dto, "reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pick task", reference)
		}
		return nil, err
	}

	return toDomain(dto)
}
