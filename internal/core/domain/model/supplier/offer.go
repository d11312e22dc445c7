package supplier

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Offer is a supplier's listing of a product.
type Offer struct {
	ProductID   kernel.UUID
	SupplierID  kernel.UUID
	SupplierSKU string
	CostCents   int64
	Available   bool
}

func (o Offer) Validate() error {
	var err error
	if idErr := errors.Join(o.ProductID.Validate(), o.SupplierID.Validate()); idErr != nil {
		err = errors.Join(err, idErr)
	}
	if o.CostCents < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("costCents", fmt.Errorf("%d is negative", o.CostCents)))
	}
	return err
}

// Candidate is an available offer paired with its active supplier.
type Candidate struct {
	Offer    Offer
	Supplier *Supplier
}
