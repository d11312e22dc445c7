package supplier

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrSupplierIsNotConstructed = errors.New("Supplier must be created via RestoreSupplier constructor")

// Supplier is a fulfillment partner together with the metrics used to rank it.
// Suppliers are managed outside this service and are read-only here.
type Supplier struct {
	id              kernel.UUID
	name            string
	adapterKind     AdapterKind
	apiBaseURL      string
	apiKey          string
	active          bool
	rating          float64
	avgShippingDays float64
	returnRate      float64

	isConstructed bool
}

type Params struct {
	ID              kernel.UUID
	Name            string
	AdapterKind     AdapterKind
	APIBaseURL      string
	APIKey          string
	Active          bool
	Rating          float64
	AvgShippingDays float64
	ReturnRate      float64
}

func RestoreSupplier(p Params) (*Supplier, error) {
	var err error
	if idErr := p.ID.Validate(); idErr != nil {
		err = errors.Join(err, idErr)
	}
	if strings.TrimSpace(p.Name) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("name"))
	}
	if kindErr := p.AdapterKind.Validate(); kindErr != nil {
		err = errors.Join(err, kindErr)
	}
	if p.AdapterKind == APIAdapter && p.APIBaseURL == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("apiBaseURL"))
	}
	if p.AvgShippingDays < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("avgShippingDays", fmt.Errorf("%v is negative", p.AvgShippingDays)))
	}
	if err != nil {
		return nil, err
	}

	return &Supplier{
		id:              p.ID,
		name:            p.Name,
		adapterKind:     p.AdapterKind,
		apiBaseURL:      strings.TrimRight(p.APIBaseURL, "/"),
		apiKey:          p.APIKey,
		active:          p.Active,
		rating:          p.Rating,
		avgShippingDays: p.AvgShippingDays,
		returnRate:      p.ReturnRate,
		isConstructed:   true,
	}, nil
}

func (s *Supplier) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSupplierIsNotConstructed
	}
	return nil
}

func (s *Supplier) ID() kernel.UUID { return s.id }
func (s *Supplier) Name() string { return s.name }
func (s *Supplier) AdapterKind() AdapterKind { return s.adapterKind }
func (s *Supplier) APIBaseURL() string { return s.apiBaseURL }
func (s *Supplier) APIKey() string { return s.apiKey }
func (s *Supplier) IsActive() bool { return s.active }
func (s *Supplier) Rating() float64 { return s.rating }
func (s *Supplier) AvgShippingDays() float64 { return s.avgShippingDays }
func (s *Supplier) ReturnRate() float64 { return s.returnRate }
