package kernel

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// ErrAddressIsNotConstructed is returned when validating a zero-value Address.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is the buyer's shipping destination as captured on the order.
type Address struct {
	recipient  string
	line1      string
	line2      string
	city       string
	state      string
	postalCode string
	country    string
	phone      string

	isConstructed bool
}

// AddressParams groups the raw fields accepted by NewAddress.
type AddressParams struct {
	Recipient  string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
}

// NewAddress validates and builds an Address. Line1, City, PostalCode and Country
// are mandatory; everything else is optional.
func NewAddress(p AddressParams) (Address, error) {
	a := Address{
		recipient:     strings.TrimSpace(p.Recipient),
		line1:         strings.TrimSpace(p.Line1),
		line2:         strings.TrimSpace(p.Line2),
		city:          strings.TrimSpace(p.City),
		state:         strings.TrimSpace(p.State),
		postalCode:    strings.TrimSpace(p.PostalCode),
		country:       strings.ToUpper(strings.TrimSpace(p.Country)),
		phone:         strings.TrimSpace(p.Phone),
		isConstructed: true,
	}

	var err error
	if a.line1 == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("line1"))
	}
	if a.city == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("city"))
	}
	if a.postalCode == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("postalCode"))
	}
	if a.country == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("country"))
	}
	if err != nil {
		return Address{}, err
	}

	return a, nil
}

// Validate returns ErrAddressIsNotConstructed for a zero value.
func (a Address) Validate() error {
	if !a.isConstructed {
		return ErrAddressIsNotConstructed
	}
	return nil
}

func (a Address) Recipient() string { return a.recipient }
func (a Address) Line1() string { return a.line1 }
func (a Address) Line2() string { return a.line2 }
func (a Address) City() string { return a.city }
func (a Address) State() string { return a.state }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Country() string { return a.country }
func (a Address) Phone() string { return a.phone }

// Params returns the raw fields, used by persistence mappers.
func (a Address) Params() AddressParams {
	return AddressParams{
		Recipient:  a.recipient,
		Line1:      a.line1,
		Line2:      a.line2,
		City:       a.city,
		State:      a.state,
		PostalCode: a.postalCode,
		Country:    a.country,
		Phone:      a.phone,
	}
}
