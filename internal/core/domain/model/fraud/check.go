package fraud

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Risk factor codes recorded on a check.
const (
	FactorRiskLevelHighest  = "risk_level_highest"
	FactorRiskLevelElevated = "risk_level_elevated"
	FactorHighOrderAmount   = "high_order_amount"
)

var ErrCheckIsNotConstructed = errors.New("Check must be created via NewCheck or RestoreCheck constructor")

// Check is the immutable fraud verdict for one order.
type Check struct {
	orderID     kernel.UUID
	riskScore   int
	riskFactors []string
	status      Status
	createdAt   time.Time

	isConstructed bool
}

// NewCheck derives the status from the score.
func NewCheck(orderID kernel.UUID, riskScore int, riskFactors []string, now time.Time) (*Check, error) {
	return RestoreCheck(orderID, riskScore, riskFactors, StatusForScore(riskScore), now)
}

func RestoreCheck(orderID kernel.UUID, riskScore int, riskFactors []string, status Status, createdAt time.Time) (*Check, error) {
	var err error
	if idErr := orderID.Validate(); idErr != nil {
		err = errors.Join(err, idErr)
	}
	if riskScore < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("riskScore", fmt.Errorf("%d is negative", riskScore)))
	}
	if statusErr := status.Validate(); statusErr != nil {
		err = errors.Join(err, statusErr)
	}
	if err != nil {
		return nil, err
	}

	return &Check{
		orderID:       orderID,
		riskScore:     riskScore,
		riskFactors:   slices.Clone(riskFactors),
		status:        status,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

func (c *Check) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCheckIsNotConstructed
	}
	return nil
}

func (c *Check) OrderID() kernel.UUID { return c.orderID }
func (c *Check) RiskScore() int { return c.riskScore }
func (c *Check) RiskFactors() []string { return slices.Clone(c.riskFactors) }
func (c *Check) Status() Status { return c.status }
func (c *Check) CreatedAt() time.Time { return c.createdAt }

// IsBlocked reports whether fulfillment must not start for the order.
func (c *Check) IsBlocked() bool {
	return c.status == Blocked
}
