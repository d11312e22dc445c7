package suppliers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/supplier"

	"golang.org/x/time/rate"
)

const (
	DefaultAPITimeout = 30 * time.Second
	maxResponseBytes  = 1 << 20
)

var (
	// ErrUnexpectedResponse is returned when the supplier answers with a body that is
	// not a valid envelope or with an error envelope.
	ErrUnexpectedResponse = errors.New("unexpected supplier response")
	ErrNotFound           = errors.New("supplier resource not found")
)

// envelope is the response wrapper every supplier endpoint returns.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type productPayload struct {
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	CostCents int64  `json:"cost_cents"`
	Available bool   `json:"available"`
	Stock     int    `json:"stock"`
}

func (p productPayload) toProduct() supplier.Product {
	return supplier.Product{
		SKU:        p.SKU,
		Name:       p.Name,
		CostCents:  p.CostCents,
		Available:  p.Available,
		StockLevel: p.Stock,
	}
}

type orderPayload struct {
	OrderID           string     `json:"order_id"`
	TrackingNumber    string     `json:"tracking_number"`
	Carrier           string     `json:"carrier"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

type trackingPayload struct {
	TrackingNumber    string     `json:"tracking_number"`
	Carrier           string     `json:"carrier"`
	Status            string     `json:"status"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
	Events            []struct {
		Status      string    `json:"status"`
		Description string    `json:"description"`
		Location    string    `json:"location"`
		Timestamp   time.Time `json:"timestamp"`
	} `json:"events"`
}

// APIAdapter calls a third-party dropship supplier. Requests carry the supplier's
// API key as a bearer token and go through an outbound rate limiter.
type APIAdapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewAPIAdapter(baseURL, apiKey string, client *http.Client, limiter *rate.Limiter, logger *slog.Logger) *APIAdapter {
	if client == nil {
		client = &http.Client{Timeout: DefaultAPITimeout}
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &APIAdapter{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
		limiter: limiter,
		logger:  logger.With("component", "supplier_api", "base_url", baseURL),
	}
}

func (a *APIAdapter) SearchProducts(ctx context.Context, query string) ([]supplier.Product, error) {
	var payload []productPayload
	if err := a.call(ctx, http.MethodGet, "/products?q="+url.QueryEscape(query), nil, &payload); err != nil {
		return nil, err
	}

	products := make([]supplier.Product, 0, len(payload))
	for _, p := range payload {
		products = append(products, p.toProduct())
	}
	return products, nil
}

// GetProduct returns nil for an unknown SKU.
func (a *APIAdapter) GetProduct(ctx context.Context, sku string) (*supplier.Product, error) {
	var payload productPayload
	err := a.call(ctx, http.MethodGet, "/products/"+url.PathEscape(sku), nil, &payload)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	product := payload.toProduct()
	return &product, nil
}

// CreateOrder reports a rejection by the supplier as an unsuccessful result.
// Transport failures and malformed answers are returned as errors.
func (a *APIAdapter) CreateOrder(ctx context.Context, req supplier.OrderRequest) (supplier.OrderResult, error) {
	var payload orderPayload
	err := a.call(ctx, http.MethodPost, "/orders", req, &payload)
	var rejected *rejectionError
	if errors.As(err, &rejected) {
		return supplier.OrderResult{Success: false, Error: rejected.message}, nil
	}
	if err != nil {
		return supplier.OrderResult{}, err
	}

	return supplier.OrderResult{
		Success:           true,
		SupplierOrderID:   payload.OrderID,
		TrackingNumber:    payload.TrackingNumber,
		Carrier:           payload.Carrier,
		EstimatedDelivery: payload.EstimatedDelivery,
	}, nil
}

// GetTracking returns nil when the supplier has no tracking for the order yet.
func (a *APIAdapter) GetTracking(ctx context.Context, supplierOrderID string) (*shipment.TrackingInfo, error) {
	var payload *trackingPayload
	err := a.call(ctx, http.MethodGet, "/orders/"+url.PathEscape(supplierOrderID)+"/tracking", nil, &payload)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}

	info := &shipment.TrackingInfo{
		TrackingNumber:    payload.TrackingNumber,
		Carrier:           payload.Carrier,
		Status:            NormalizeStatus(payload.Status),
		EstimatedDelivery: payload.EstimatedDelivery,
		Events:            make([]shipment.Event, 0, len(payload.Events)),
	}
	for _, e := range payload.Events {
		info.Events = append(info.Events, shipment.Event{
			Status:      NormalizeStatus(e.Status),
			Description: e.Description,
			Location:    e.Location,
			OccurredAt:  e.Timestamp.UTC(),
		})
	}
	return info, nil
}

func (a *APIAdapter) CancelOrder(ctx context.Context, supplierOrderID string) (supplier.CancelResult, error) {
	err := a.call(ctx, http.MethodPost, "/orders/"+url.PathEscape(supplierOrderID)+"/cancel", nil, nil)
	var rejected *rejectionError
	if errors.As(err, &rejected) {
		return supplier.CancelResult{Success: false, Error: rejected.message}, nil
	}
	if errors.Is(err, ErrNotFound) {
		return supplier.CancelResult{Success: false, Error: "unknown supplier order " + supplierOrderID}, nil
	}
	if err != nil {
		return supplier.CancelResult{}, err
	}
	return supplier.CancelResult{Success: true}, nil
}

func (a *APIAdapter) SupportsFeature(feature supplier.Feature) bool {
	switch feature {
	case supplier.FeatureAutoTracking, supplier.FeatureCancellation,
		supplier.FeatureWebhooks, supplier.FeatureProductSearch:
		return true
	default:
		return false
	}
}

// rejectionError is a well-formed envelope with success=false.
type rejectionError struct {
	status  int
	message string
}

func (e *rejectionError) Error() string {
	return fmt.Sprintf("supplier rejected request (HTTP %d): %s", e.status, e.message)
}

func (e *rejectionError) Unwrap() error {
	return ErrUnexpectedResponse
}

// call sends one request and decodes the envelope data into out. A nil out discards
// the data.
func (a *APIAdapter) call(ctx context.Context, method, path string, body, out any) error {
	if err := a.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	a.logger.DebugContext(ctx, "supplier api call",
		"method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err = json.Unmarshal(raw, &env); err != nil || env.Success == nil {
		return fmt.Errorf("%w: HTTP %d with malformed envelope", ErrUnexpectedResponse, resp.StatusCode)
	}
	if !*env.Success {
		message := env.Error
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &rejectionError{status: resp.StatusCode, message: message}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: HTTP %d", ErrUnexpectedResponse, resp.StatusCode)
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err = json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: decode data: %w", ErrUnexpectedResponse, err)
	}
	return nil
}
