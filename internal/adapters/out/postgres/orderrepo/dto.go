// Package orderrepo persists the order columns the fulfillment workflow reads and
// writes. Orders are created by checkout; this service only moves their status.
package orderrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row of the orders table.
type OrderDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BuyerName        string          `gorm:"not null"`
	Items            json.RawMessage `gorm:"type:jsonb;not null"`
	ShippingAddress  AddressDTO      `gorm:"embedded;embeddedPrefix:shipping_"`
	TotalAmountCents int64           `gorm:"not null"`
	RiskLevel        string          `gorm:"type:varchar(32);not null"`
	Status           string          `gorm:"type:varchar(32);not null;index"`
	DeliveredAt      *time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is embedded into the orders table with the shipping_ prefix.
type AddressDTO struct {
	Recipient  string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
}

type itemDTO struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

func fromDomain(o *order.Order) (OrderDTO, error) {
	items, err := MarshalItems(o.Items())
	if err != nil {
		return OrderDTO{}, err
	}

	var deliveredAt *time.Time
	if at := o.DeliveredAt(); at != nil {
		t := *at
		deliveredAt = &t
	}

	addr := o.ShippingAddress()
	return OrderDTO{
		ID:        o.ID().Bytes(),
		BuyerName: o.BuyerName(),
		Items:     items,
		ShippingAddress: AddressDTO{
			Recipient:  addr.Recipient(),
			Line1:      addr.Line1(),
			Line2:      addr.Line2(),
			City:       addr.City(),
			State:      addr.State(),
			PostalCode: addr.PostalCode(),
			Country:    addr.Country(),
			Phone:      addr.Phone(),
		},
		TotalAmountCents: o.TotalAmountCents(),
		RiskLevel:        string(o.RiskLevel()),
		Status:           string(o.Status()),
		DeliveredAt:      deliveredAt,
	}, nil
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items, err := UnmarshalItems(dto.Items)
	if err != nil {
		return nil, err
	}

	addr, err := kernel.NewAddress(kernel.AddressParams{
		Recipient:  dto.ShippingAddress.Recipient,
		Line1:      dto.ShippingAddress.Line1,
		Line2:      dto.ShippingAddress.Line2,
		City:       dto.ShippingAddress.City,
		State:      dto.ShippingAddress.State,
		PostalCode: dto.ShippingAddress.PostalCode,
		Country:    dto.ShippingAddress.Country,
		Phone:      dto.ShippingAddress.Phone,
	})
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Params{
		ID:               id,
		BuyerName:        dto.BuyerName,
		Items:            items,
		ShippingAddress:  addr,
		TotalAmountCents: dto.TotalAmountCents,
		RiskLevel:        order.ParseRiskLevel(dto.RiskLevel),
		Status:           order.Status(dto.Status),
		DeliveredAt:      dto.DeliveredAt,
	})
}

// MarshalItems encodes order items as the JSON document stored by orders and
// fulfillment jobs.
func MarshalItems(items []order.Item) (json.RawMessage, error) {
	dtos := make([]itemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, itemDTO{
			ProductID:      item.ProductID.String(),
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}
	return json.Marshal(dtos)
}

// UnmarshalItems decodes a document written by MarshalItems.
func UnmarshalItems(raw json.RawMessage) ([]order.Item, error) {
	var dtos []itemDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		productID, err := kernel.UUIDFromString(dto.ProductID)
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(productID, dto.Name, dto.Quantity, dto.UnitPriceCents)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
