package services

import (
	"time"

	"fulfillment/internal/core/domain/model/fraud"
	"fulfillment/internal/core/domain/model/order"
)

const (
	highestRiskPoints  = 50
	elevatedRiskPoints = 25
	highAmountPoints   = 20

	// HighOrderAmountCents is the total above which an order earns high amount points.
	HighOrderAmountCents = 50000
)

// FraudAssessor scores an order's fraud risk from the processor risk level and the
// order total.
//
// Scoring is additive: highest risk level +50, otherwise elevated +25, and +20 when
// the total is above HighOrderAmountCents. The verdict comes from
// fraud.StatusForScore. With these two factors the score tops out at 70, so the
// blocked threshold is not reachable until another factor is added.
type FraudAssessor struct{}

func NewFraudAssessor() FraudAssessor {
	return FraudAssessor{}
}

// Assess builds the fraud check for an order.
func (FraudAssessor) Assess(o *order.Order, now time.Time) (*fraud.Check, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	score := 0
	factors := make([]string, 0, 2)

	switch o.RiskLevel() {
	case order.RiskLevelHighest:
		score += highestRiskPoints
		factors = append(factors, fraud.FactorRiskLevelHighest)
	case order.RiskLevelElevated:
		score += elevatedRiskPoints
		factors = append(factors, fraud.FactorRiskLevelElevated)
	}

	if o.TotalAmountCents() > HighOrderAmountCents {
		score += highAmountPoints
		factors = append(factors, fraud.FactorHighOrderAmount)
	}

	return fraud.NewCheck(o.ID(), score, factors, now)
}
