package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrShipPickTaskCommandIsNotConstructed = errors.New(
	"ShipPickTaskCommand must be created via NewShipPickTaskCommand constructor",
)

// ShipPickTaskCommand records that the warehouse handed a packed task to a carrier,
// or that the carrier delivered it.
type ShipPickTaskCommand struct {
	reference      string
	trackingNumber string
	carrier        string
	delivered      bool

	guard guard.ConstructorGuard
}

func NewShipPickTaskCommand(reference, trackingNumber, carrier string, delivered bool) (ShipPickTaskCommand, error) {
	var err error
	if strings.TrimSpace(reference) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("reference"))
	}
	if strings.TrimSpace(trackingNumber) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("trackingNumber"))
	}
	if err != nil {
		return ShipPickTaskCommand{}, err
	}

	return ShipPickTaskCommand{
		reference:      strings.TrimSpace(reference),
		trackingNumber: strings.TrimSpace(trackingNumber),
		carrier:        strings.TrimSpace(carrier),
		delivered:      delivered,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c ShipPickTaskCommand) Validate() error {
	return c.guard.Validate(ErrShipPickTaskCommandIsNotConstructed)
}

func (c ShipPickTaskCommand) Reference() string { return c.reference }
func (c ShipPickTaskCommand) TrackingNumber() string { return c.trackingNumber }
func (c ShipPickTaskCommand) Carrier() string { return c.carrier }
func (c ShipPickTaskCommand) Delivered() bool { return c.delivered }
