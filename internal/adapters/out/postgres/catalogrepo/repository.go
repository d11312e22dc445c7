// Package catalogrepo reads the fulfillment type of catalog products.
package catalogrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductDTO is the slice of the products table fulfillment reads.
type ProductDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"not null;default:''"`
	FulfillmentType string    `gorm:"type:varchar(16);not null;default:'manual'"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// GormProductCatalog implements ports.ProductCatalog using GORM.
type GormProductCatalog struct {
	db *gorm.DB
}

func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db}
}

// FulfillmentTypes maps every known product to its type. Unrecognised type values
// fall back to manual fulfillment.
func (c *GormProductCatalog) FulfillmentTypes(ctx context.Context, productIDs []kernel.UUID) (map[kernel.UUID]fulfillment.Type, error) {
	types := make(map[kernel.UUID]fulfillment.Type, len(productIDs))
	if len(productIDs) == 0 {
		return types, nil
	}

	ids := make([]uuid.UUID, 0, len(productIDs))
	for _, id := range productIDs {
		ids = append(ids, id.Bytes())
	}

	var dtos []ProductDTO
	if err := c.db.WithContext(ctx).Where("id IN ?", ids).Find(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		types[id] = fulfillment.TypeOrDefault(dto.FulfillmentType)
	}
	return types, nil
}
