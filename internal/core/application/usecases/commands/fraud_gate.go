package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/fraud"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// FraudGate performs the once-per-order fraud check.
type FraudGate struct {
	assessor services.FraudAssessor
}

func NewFraudGate() FraudGate {
	return FraudGate{assessor: services.NewFraudAssessor()}
}

// Check returns the order's stored check, or assesses and stores a new one. Calling
// it again for the same order returns the stored check unchanged.
func (g FraudGate) Check(ctx context.Context, repo ports.FraudCheckRepository, o *order.Order) (*fraud.Check, error) {
	existing, err := repo.Get(ctx, o.ID())
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	check, err := g.assessor.Assess(o, time.Now())
	if err != nil {
		return nil, err
	}
	return repo.AddIfAbsent(ctx, check)
}
