package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built by RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via RestoreOrder constructor")
)

// Order is the paid order handed over by the upstream commerce system. The fulfillment
// service reads it to create jobs and writes back only its status and delivery time.
//
// Order follows these invariants:
//   - Must have a valid identifier and shipping address
//   - Total amount is never negative
//   - DeliveredAt is set once, on the first transition to Delivered
type Order struct {
	id               kernel.UUID
	buyerName        string
	items            []Item
	shippingAddress  kernel.Address
	totalAmountCents int64
	riskLevel        RiskLevel
	status           Status
	deliveredAt      *time.Time

	isConstructed bool
}

// Params carries the persisted state of an order.
type Params struct {
	ID               kernel.UUID
	BuyerName        string
	Items            []Item
	ShippingAddress  kernel.Address
	TotalAmountCents int64
	RiskLevel        RiskLevel
	Status           Status
	DeliveredAt      *time.Time
}

// RestoreOrder rebuilds an Order from persisted state, validating every field.
func RestoreOrder(p Params) (*Order, error) {
	o := &Order{
		buyerName:        p.BuyerName,
		riskLevel:        ParseRiskLevel(string(p.RiskLevel)),
		deliveredAt:      p.DeliveredAt,
		isConstructed:    true,
		totalAmountCents: p.TotalAmountCents,
	}

	err := errors.Join(
		o.setID(p.ID),
		o.setItems(p.Items),
		o.setShippingAddress(p.ShippingAddress),
		o.setStatus(p.Status),
	)
	if p.TotalAmountCents < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"totalAmountCents", fmt.Errorf("%d is negative", p.TotalAmountCents)))
	}
	if err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built through RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) BuyerName() string { return o.buyerName }
func (o *Order) ShippingAddress() kernel.Address { return o.shippingAddress }
func (o *Order) TotalAmountCents() int64 { return o.totalAmountCents }
func (o *Order) RiskLevel() RiskLevel { return o.riskLevel }
func (o *Order) Status() Status { return o.status }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// DeliveredAt returns the first delivery time, or nil while undelivered.
func (o *Order) DeliveredAt() *time.Time {
	if o.deliveredAt == nil {
		return nil
	}
	at := *o.deliveredAt
	return &at
}

// MarkShipped moves the order to Shipped unless it is already further along.
func (o *Order) MarkShipped() error {
	next, err := o.status.Ship()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// MarkDelivered moves the order to Delivered. The delivery time of an already
// delivered order is kept.
func (o *Order) MarkDelivered(at time.Time) error {
	next, err := o.status.Deliver()
	if err != nil {
		return err
	}
	o.status = next
	if o.deliveredAt == nil {
		at = at.UTC()
		o.deliveredAt = &at
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setShippingAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
