package suppliers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/supplier"
	"fulfillment/internal/core/ports"

	"golang.org/x/time/rate"
)

// APIConfig tunes the HTTP clients of API suppliers.
type APIConfig struct {
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Factory builds the adapter matching a supplier's adapter kind. Warehouse suppliers
// all share the one warehouse adapter.
type Factory struct {
	warehouse *WarehouseAdapter
	client    *http.Client
	rps       float64
	logger    *slog.Logger
}

func NewFactory(warehouse *WarehouseAdapter, cfg APIConfig, logger *slog.Logger) *Factory {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultAPITimeout
	}
	return &Factory{
		warehouse: warehouse,
		client:    &http.Client{Timeout: timeout},
		rps:       cfg.RequestsPerSecond,
		logger:    logger,
	}
}

func (f *Factory) New(s *supplier.Supplier) (ports.SupplierAdapter, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	switch s.AdapterKind() {
	case supplier.ManualAdapter:
		return NewManualAdapter(), nil
	case supplier.DigitalAdapter:
		return NewDigitalAdapter(), nil
	case supplier.WarehouseAdapter:
		return f.warehouse, nil
	case supplier.APIAdapter:
		return NewAPIAdapter(s.APIBaseURL(), s.APIKey(), f.client, f.newLimiter(), f.logger), nil
	default:
		return nil, fmt.Errorf("no adapter for kind %q", s.AdapterKind())
	}
}

// newLimiter gives each API supplier its own budget. A non-positive rate disables
// limiting.
func (f *Factory) newLimiter() *rate.Limiter {
	if f.rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := int(f.rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(f.rps), burst)
}
