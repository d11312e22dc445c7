package fulfillment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Type is the delivery channel of a product and therefore of the job that delivers it.
type Type string

const (
	// Digital products are delivered instantly without any external call.
	Digital Type = "digital"
	// Manual products are shipped by the seller, who attaches tracking out of band.
	Manual Type = "manual"
	// Warehouse products are picked and packed by the internal warehouse.
	Warehouse Type = "warehouse"
	// Dropship products are shipped directly to the buyer by a third-party supplier.
	Dropship Type = "dropship"
)

// Validate checks that the type is one of the known channels.
func (t Type) Validate() error {
	switch t {
	case Digital, Manual, Warehouse, Dropship:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("fulfillment type", fmt.Errorf("%q is not a valid fulfillment type", string(t)))
	}
}

func (t Type) String() string {
	return string(t)
}

// TypeOrDefault maps a catalog value to a Type, falling back to Manual for unknown
// or empty values.
func TypeOrDefault(raw string) Type {
	t := Type(raw)
	if t.Validate() != nil {
		return Manual
	}
	return t
}
