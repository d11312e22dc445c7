package fraudrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/fraud"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFraudCheckRepository implements ports.FraudCheckRepository using GORM.
type GormFraudCheckRepository struct {
	db *gorm.DB
}

func NewGormFraudCheckRepository(db *gorm.DB) *GormFraudCheckRepository {
	return &GormFraudCheckRepository{db: db}
}

func (r *GormFraudCheckRepository) Get(ctx context.Context, orderID kernel.UUID) (*fraud.Check, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto FraudCheckDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("fraud check", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// AddIfAbsent inserts the check unless the order already has one and returns the
// stored check. Concurrent deliveries of the same order event converge on the first
// check written.
func (r *GormFraudCheckRepository) AddIfAbsent(ctx context.Context, check *fraud.Check) (*fraud.Check, error) {
	if err := check.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(check)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "order_id"}}, DoNothing: true}).
		Create(&dto).Error
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, check.OrderID())
}
