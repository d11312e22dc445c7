package supplierrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/supplier"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSupplierRepository implements ports.SupplierRepository using GORM. Suppliers
// and offers are managed by the catalog; Add and AddOffer exist for seeding.
type GormSupplierRepository struct {
	db *gorm.DB
}

func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

func (r *GormSupplierRepository) Add(ctx context.Context, s *supplier.Supplier) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := fromDomain(s)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormSupplierRepository) AddOffer(ctx context.Context, o supplier.Offer) error {
	if err := o.Validate(); err != nil {
		return err
	}

	dto := offerFromDomain(o)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormSupplierRepository) Get(ctx context.Context, id kernel.UUID) (*supplier.Supplier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SupplierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("supplier", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetCandidates returns available offers of active suppliers ordered by offer
// creation time, then supplier id.
func (r *GormSupplierRepository) GetCandidates(ctx context.Context, productID kernel.UUID) ([]supplier.Candidate, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	var offers []OfferDTO
	err := r.db.WithContext(ctx).
		Select("supplier_products.*").
		Joins("JOIN suppliers ON suppliers.id = supplier_products.supplier_id").
		Where("supplier_products.product_id = ? AND supplier_products.available AND suppliers.active", productID.Bytes()).
		Order("supplier_products.created_at, supplier_products.supplier_id").
		Find(&offers).Error
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return []supplier.Candidate{}, nil
	}

	supplierIDs := make([]uuid.UUID, 0, len(offers))
	for _, o := range offers {
		supplierIDs = append(supplierIDs, o.SupplierID)
	}

	var dtos []SupplierDTO
	if err = r.db.WithContext(ctx).Where("id IN ?", supplierIDs).Find(&dtos).Error; err != nil {
		return nil, err
	}
	suppliers := make(map[uuid.UUID]*supplier.Supplier, len(dtos))
	for _, dto := range dtos {
		s, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		suppliers[dto.ID] = s
	}

	candidates := make([]supplier.Candidate, 0, len(offers))
	for _, dto := range offers {
		offer, convErr := offerToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		s, ok := suppliers[dto.SupplierID]
		if !ok {
			continue
		}
		candidates = append(candidates, supplier.Candidate{Offer: offer, Supplier: s})
	}

	return candidates, nil
}
