// Package supplierrepo persists dropship suppliers and their product offers.
package supplierrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/supplier"

	"github.com/google/uuid"
)

// SupplierDTO is the row of the suppliers table.
type SupplierDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"not null"`
	AdapterKind     string    `gorm:"type:varchar(16);not null"`
	APIBaseURL      string    `gorm:"column:api_base_url;not null;default:''"`
	APIKey          string    `gorm:"column:api_key;not null;default:''"`
	Active          bool      `gorm:"not null;index"`
	Rating          float64   `gorm:"not null"`
	AvgShippingDays float64   `gorm:"not null"`
	ReturnRate      float64   `gorm:"not null"`
}

func (SupplierDTO) TableName() string {
	return "suppliers"
}

// OfferDTO is the row of the supplier_products table.
type OfferDTO struct {
	ProductID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	SupplierID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	SupplierSKU string    `gorm:"column:supplier_sku;not null"`
	CostCents   int64     `gorm:"not null"`
	Available   bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (OfferDTO) TableName() string {
	return "supplier_products"
}

func fromDomain(s *supplier.Supplier) SupplierDTO {
	return SupplierDTO{
		ID:              s.ID().Bytes(),
		Name:            s.Name(),
		AdapterKind:     string(s.AdapterKind()),
		APIBaseURL:      s.APIBaseURL(),
		APIKey:          s.APIKey(),
		Active:          s.IsActive(),
		Rating:          s.Rating(),
		AvgShippingDays: s.AvgShippingDays(),
		ReturnRate:      s.ReturnRate(),
	}
}

func toDomain(dto SupplierDTO) (*supplier.Supplier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return supplier.RestoreSupplier(supplier.Params{
		ID:              id,
		Name:            dto.Name,
		AdapterKind:     supplier.AdapterKind(dto.AdapterKind),
		APIBaseURL:      dto.APIBaseURL,
		APIKey:          dto.APIKey,
		Active:          dto.Active,
		Rating:          dto.Rating,
		AvgShippingDays: dto.AvgShippingDays,
		ReturnRate:      dto.ReturnRate,
	})
}

func offerFromDomain(o supplier.Offer) OfferDTO {
	return OfferDTO{
		ProductID:   o.ProductID.Bytes(),
		SupplierID:  o.SupplierID.Bytes(),
		SupplierSKU: o.SupplierSKU,
		CostCents:   o.CostCents,
		Available:   o.Available,
	}
}

func offerToDomain(dto OfferDTO) (supplier.Offer, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return supplier.Offer{}, err
	}
	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return supplier.Offer{}, err
	}

	return supplier.Offer{
		ProductID:   productID,
		SupplierID:  supplierID,
		SupplierSKU: dto.SupplierSKU,
		CostCents:   dto.CostCents,
		Available:   dto.Available,
	}, nil
}
