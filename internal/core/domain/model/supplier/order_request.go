package supplier

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// Address is the shipping address shape understood by every adapter.
type Address struct {
	Name    string `json:"name"`
	Street1 string `json:"street1"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	Region  string `json:"region,omitempty"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
}

// AddressFrom maps an order shipping address into the adapter shape.
func AddressFrom(buyerName string, a kernel.Address) Address {
	name := a.Recipient()
	if name == "" {
		name = buyerName
	}
	return Address{
		Name:    name,
		Street1: a.Line1(),
		Street2: a.Line2(),
		City:    a.City(),
		Region:  a.State(),
		Zip:     a.PostalCode(),
		Country: a.Country(),
		Phone:   a.Phone(),
	}
}

type OrderLine struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku,omitempty"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// OrderRequest is the payload of CreateOrder.
type OrderRequest struct {
	Reference       string      `json:"reference"`
	JobID           string      `json:"job_id"`
	OrderID         string      `json:"order_id"`
	ShippingAddress Address     `json:"shipping_address"`
	Lines           []OrderLine `json:"items"`
}

// OrderResult is what a channel answered to CreateOrder. Success=false carries the
// channel's error text in Error.
type OrderResult struct {
	Success           bool
	SupplierOrderID   string
	TrackingNumber    string
	Carrier           string
	EstimatedDelivery *time.Time
	Error             string
}

type CancelResult struct {
	Success bool
	Error   string
}

// Product is a supplier catalog entry.
type Product struct {
	SKU        string
	Name       string
	CostCents  int64
	Available  bool
	StockLevel int
}
