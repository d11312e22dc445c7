package jobrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormJobRepository implements ports.JobRepository using GORM.
//
// Update is a compare-and-set on the version column: it only writes when the stored
// version equals the version the job was loaded with, and then bumps it. Two workers
// that load the same queued job can therefore never both claim it.
type GormJobRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormJobRepository(db *gorm.DB, tracker aggregateTracker) *GormJobRepository {
	return &GormJobRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormJobRepository) Add(ctx context.Context, aggregate *fulfillment.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update returns errs.ErrConcurrentUpdate when the row changed since the job was
// loaded.
func (r *GormJobRepository) Update(ctx context.Context, aggregate *fulfillment.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "order_id", "store_id", "fulfillment_type", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err = r.db.WithContext(ctx).Model(&JobDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("job", aggregate.ID().String())
		}
		return errs.ErrConcurrentUpdate
	}

	aggregate.MarkPersisted()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormJobRepository) Get(ctx context.Context, id kernel.UUID) (*fulfillment.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByOrder returns the jobs of an order in creation order.
func (r *GormJobRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*fulfillment.Job, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	return r.find(r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes()))
}

// GetAllTrackable returns shipped jobs with a channel reference and warehouse jobs
// still waiting for their parcel to leave.
func (r *GormJobRepository) GetAllTrackable(ctx context.Context) ([]*fulfillment.Job, error) {
	return r.find(r.db.WithContext(ctx).Where(
		"supplier_order_id <> '' AND (status = ? OR (status = ? AND fulfillment_type = ?))",
		string(fulfillment.Shipped), string(fulfillment.Processing), string(fulfillment.Warehouse),
	))
}

// GetAllDueForDispatch returns queued jobs whose retry time has passed, plus queued
// jobs without retry time and claimed jobs without channel reference that have been
// idle since before staleBefore.
func (r *GormJobRepository) GetAllDueForDispatch(ctx context.Context, now, staleBefore time.Time) ([]*fulfillment.Job, error) {
	return r.find(r.db.WithContext(ctx).Where(
		`(status = ? AND next_retry_at IS NOT NULL AND next_retry_at <= ?)
		OR (status = ? AND next_retry_at IS NULL AND updated_at < ?)
		OR (status = ? AND supplier_order_id = '' AND updated_at < ?)`,
		string(fulfillment.Queued), now.UTC(),
		string(fulfillment.Queued), staleBefore.UTC(),
		string(fulfillment.Processing), staleBefore.UTC(),
	))
}

func (r *GormJobRepository) find(query *gorm.DB) ([]*fulfillment.Job, error) {
	var dtos []JobDTO
	if err := query.Order("created_at, fulfillment_type").Find(&dtos).Error; err != nil {
		return nil, err
	}

	jobs := make([]*fulfillment.Job, 0, len(dtos))
	for _, dto := range dtos {
		j, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}

	return jobs, nil
}
