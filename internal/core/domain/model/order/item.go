package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Item is one purchased line of an order.
type Item struct {
	ProductID      kernel.UUID
	Name           string
	Quantity       int
	UnitPriceCents int64
}

// NewItem validates and builds an Item.
func NewItem(productID kernel.UUID, name string, quantity int, unitPriceCents int64) (Item, error) {
	var err error
	if idErr := productID.Validate(); idErr != nil {
		err = errors.Join(err, idErr)
	}
	if quantity <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if unitPriceCents < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("unitPriceCents", fmt.Errorf("%d is negative", unitPriceCents)))
	}
	if err != nil {
		return Item{}, err
	}

	return Item{ProductID: productID, Name: name, Quantity: quantity, UnitPriceCents: unitPriceCents}, nil
}

// Validate re-checks an Item that may have been built as a literal.
func (i Item) Validate() error {
	_, err := NewItem(i.ProductID, i.Name, i.Quantity, i.UnitPriceCents)
	return err
}
