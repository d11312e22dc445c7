package suppliers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/suppliers"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/supplier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPIAdapter(t *testing.T, handler http.HandlerFunc) *suppliers.APIAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return suppliers.NewAPIAdapter(server.URL, "secret-key", server.Client(), nil, nil)
}

func TestAPIAdapter_CreateOrder(t *testing.T) {
	var received supplier.OrderRequest
	adapter := newAPIAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "Bearer secret-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		_, _ = w.Write([]byte(`{"success":true,"data":{"order_id":"SUP-42","tracking_number":"1Z999","carrier":"UPS","estimated_delivery":"2026-11-02T00:00:00Z"}}`))
	})

	result, err := adapter.CreateOrder(context.Background(), supplier.OrderRequest{
		Reference: "job-1",
		JobID:     "job-1",
		Lines:     []supplier.OrderLine{{SKU: "MUG-1", Name: "Mug", Quantity: 2}},
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "SUP-42", result.SupplierOrderID)
	assert.Equal(t, "1Z999", result.TrackingNumber)
	assert.Equal(t, "UPS", result.Carrier)
	require.NotNil(t, result.EstimatedDelivery)
	assert.Equal(t, time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC), result.EstimatedDelivery.UTC())
	assert.Equal(t, "MUG-1", received.Lines[0].SKU)
}

func TestAPIAdapter_CreateOrder_Rejected(t *testing.T) {
	adapter := newAPIAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"success":false,"error":"out of stock"}`))
	})

	result, err := adapter.CreateOrder(context.Background(), supplier.OrderRequest{JobID: "job-1"})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "out of stock", result.Error)
}

func TestAPIAdapter_MalformedEnvelope(t *testing.T) {
	tests := map[string]string{
		"not json":        `<html>gateway timeout</html>`,
		"missing success": `{"data":{"order_id":"SUP-1"}}`,
		"bad data":        `{"success":true,"data":{"order_id":42}}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			adapter := newAPIAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			_, err := adapter.CreateOrder(context.Background(), supplier.OrderRequest{})

			assert.ErrorIs(t, err, suppliers.ErrUnexpectedResponse)
		})
	}
}

func TestAPIAdapter_ServerErrorWithSuccessEnvelope(t *testing.T) {
	adapter := newAPIAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"success":true,"data":null}`))
	})

	_, err := adapter.CreateOrder(context.Background(), supplier.OrderRequest{})

	assert.ErrorIs(t, err, suppliers.ErrUnexpectedResponse)
}

func TestAPIAdapter_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	t.Cleanup(server.Close)
	adapter := suppliers.NewAPIAdapter(server.URL, "k", &http.Client{Timeout: 50 * time.Millisecond}, nil, nil)

	_, err := adapter.GetTracking(context.Background(), "SUP-1")

	assert.Error(t, err)
}

func TestAPIAdapter_GetTracking(t *testing.T) {
	adapter := newAPIAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/SUP-42/tracking", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":{
			"tracking_number":"1Z999","carrier":"UPS","status":"Out For Delivery",
			"events":[
				{"status":"Picked up","description":"Origin scan","location":"Memphis","timestamp":"2026-10-17T10:00:00Z"},
				{"status":"Out for delivery","description":"On vehicle","location":"Springfield","timestamp":"2026-10-19T07:00:00Z"}
			]}}`))
	})

	info, err := adapter.GetTracking(context.Background(), "SUP-42")

	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "1Z999", info.TrackingNumber)
	assert.Equal(t, shipment.OutForDelivery, info.Status)
	require.Len(t, info.Events, 2)
	assert.Equal(t, shipment.InTransit, info.Events[0].Status)
	assert.Equal(t, "Memphis", info.Events[0].Location)
	assert.Equal(t, shipment.OutForDelivery, info.Events[1].Status)
}

func TestAPIAdapter_GetTracking_NotFound(t *testing.T) {
	adapter := newAPIAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	info, err := adapter.GetTracking(context.Background(), "SUP-42")

	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestAPIAdapter_SearchAndGetProduct(t *testing.T) {
	adapter := newAPIAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products":
			assert.Equal(t, "coffee mug", r.URL.Query().Get("q"))
			_, _ = w.Write([]byte(`{"success":true,"data":[{"sku":"MUG-1","name":"Mug","cost_cents":450,"available":true,"stock":12}]}`))
		case "/products/MUG-1":
			_, _ = w.Write([]byte(`{"success":true,"data":{"sku":"MUG-1","name":"Mug","cost_cents":450,"available":true,"stock":12}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	found, err := adapter.SearchProducts(context.Background(), "coffee mug")
	require.NoError(t, err)
	assert.Equal(t, []supplier.Product{{SKU: "MUG-1", Name: "Mug", CostCents: 450, Available: true, StockLevel: 12}}, found)

	product, err := adapter.GetProduct(context.Background(), "MUG-1")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, int64(450), product.CostCents)

	missing, err := adapter.GetProduct(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAPIAdapter_CancelOrder(t *testing.T) {
	adapter := newAPIAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/orders/SUP-1/cancel" {
			_, _ = w.Write([]byte(`{"success":true,"data":null}`))
			return
		}
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"error":"already shipped"}`))
	})

	ok, err := adapter.CancelOrder(context.Background(), "SUP-1")
	require.NoError(t, err)
	assert.True(t, ok.Success)

	refused, err := adapter.CancelOrder(context.Background(), "SUP-2")
	require.NoError(t, err)
	assert.False(t, refused.Success)
	assert.Equal(t, "already shipped", refused.Error)
}

func TestAPIAdapter_SupportsEveryFeature(t *testing.T) {
	adapter := suppliers.NewAPIAdapter("http://supplier.invalid", "k", nil, nil, nil)

	for _, f := range []supplier.Feature{
		supplier.FeatureAutoTracking, supplier.FeatureCancellation,
		supplier.FeatureWebhooks, supplier.FeatureProductSearch,
	} {
		assert.True(t, adapter.SupportsFeature(f), f)
	}
}
