package supplier

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// AdapterKind selects the adapter implementation used to talk to a supplier.
type AdapterKind string

const (
	ManualAdapter    AdapterKind = "manual"
	WarehouseAdapter AdapterKind = "warehouse"
	APIAdapter       AdapterKind = "api"
	DigitalAdapter   AdapterKind = "digital"
)

func (k AdapterKind) Validate() error {
	switch k {
	case ManualAdapter, WarehouseAdapter, APIAdapter, DigitalAdapter:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("adapterKind", fmt.Errorf("%q is not a valid adapter kind", string(k)))
	}
}

func (k AdapterKind) String() string {
	return string(k)
}

// Feature is an optional adapter capability.
type Feature string

const (
	FeatureAutoTracking  Feature = "auto_tracking"
	FeatureCancellation  Feature = "cancellation"
	FeatureWebhooks      Feature = "webhooks"
	FeatureProductSearch Feature = "product_search"
)
