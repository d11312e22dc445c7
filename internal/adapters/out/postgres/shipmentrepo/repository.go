package shipmentrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
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

func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	// delivered_at is written once; a concurrent sync holding an older copy keeps
	// the first delivery time.
	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"carrier":      dto.Carrier,
			"status":       dto.Status,
			"events":       dto.Events,
			"delivered_at": gorm.Expr("COALESCE(delivered_at, ?)", dto.DeliveredAt),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormShipmentRepository) GetByTracking(ctx context.Context, orderID kernel.UUID, trackingNumber string) (*shipment.Shipment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND tracking_number = ?", orderID.Bytes(), trackingNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", trackingNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}
