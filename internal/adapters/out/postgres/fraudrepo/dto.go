// Package fraudrepo persists fraud checks, at most one per order.
package fraudrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/fraud"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// FraudCheckDTO is the row of the fraud_checks table.
type FraudCheckDTO struct {
	OrderID     uuid.UUID      `gorm:"type:uuid;primaryKey"`
	RiskScore   int            `gorm:"not null"`
	RiskFactors pq.StringArray `gorm:"type:text[];not null"`
	Status      string         `gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime:false"`
}

func (FraudCheckDTO) TableName() string {
	return "fraud_checks"
}

func fromDomain(c *fraud.Check) FraudCheckDTO {
	factors := pq.StringArray(c.RiskFactors())
	if factors == nil {
		factors = pq.StringArray{}
	}
	return FraudCheckDTO{
		OrderID:     c.OrderID().Bytes(),
		RiskScore:   c.RiskScore(),
		RiskFactors: factors,
		Status:      string(c.Status()),
		CreatedAt:   c.CreatedAt(),
	}
}

func toDomain(dto FraudCheckDTO) (*fraud.Check, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	return fraud.RestoreCheck(orderID, dto.RiskScore, dto.RiskFactors, fraud.Status(dto.Status), dto.CreatedAt)
}
