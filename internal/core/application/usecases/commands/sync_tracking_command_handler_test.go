package commands_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/supplier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type syncFixture struct {
	store     *store
	warehouse *MockSupplierAdapter
	factory   *MockAdapterFactory
	handler   commands.SyncTrackingCommandHandler
}

func newSyncFixture(concurrency int) *syncFixture {
	s := newStore()
	warehouse := new(MockSupplierAdapter)
	factory := new(MockAdapterFactory)
	return &syncFixture{
		store:     s,
		warehouse: warehouse,
		factory:   factory,
		handler: commands.NewSyncTrackingCommandHandler(
			s.uowFactory(), commands.NewAdapterCache(factory), warehouse, time.Second, concurrency, commands.NopMetrics{}, discardLogger(),
		),
	}
}

// shippedJob stores a dropship job shipped by a new supplier served by adapter.
func (f *syncFixture) shippedJob(t *testing.T, o *order.Order, reference, trackingNumber string, adapter *MockSupplierAdapter) *fulfillment.Job {
	t.Helper()
	sup := seedSupplier(t, f.store, kernel.NewUUID(), "supplier-"+reference, 1000, 3, 4, 5)
	f.factory.On("New", sup).Return(adapter, nil).Maybe()

	job := seedJob(t, f.store, o, fulfillment.Dropship)
	require.NoError(t, job.Start(time.Now()))
	supplierID := sup.ID()
	require.NoError(t, job.Ship(fulfillment.Shipment{
		SupplierID: &supplierID, SupplierOrderID: reference, TrackingNumber: trackingNumber, Carrier: "UPS",
	}, time.Now()))
	f.store.putJob(t, job)
	return job
}

func (f *syncFixture) sync(t *testing.T) commands.SyncTrackingResult {
	t.Helper()
	result, err := f.handler.Handle(t.Context(), commands.NewSyncTrackingCommand())
	require.NoError(t, err)
	return result
}

func trackingAdapter() *MockSupplierAdapter {
	adapter := new(MockSupplierAdapter)
	adapter.On("SupportsFeature", supplier.FeatureAutoTracking).Return(true)
	return adapter
}

func TestSyncTrackingCommandHandler_Handle(t *testing.T) {
	t.Run("updates shipment while in transit", func(t *testing.T) {
		f := newSyncFixture(2)
		o := seedOrder(t, f.store, order.RiskLevelNormal, 1000, fulfillment.Dropship)
		adapter := trackingAdapter()
		job := f.shippedJob(t, o, "SUP-1", "1Z1", adapter)
		occurred := time.Now().Add(-time.Hour).UTC()
		adapter.On("GetTracking", mock.Anything, "SUP-1").Return(&shipment.TrackingInfo{
			TrackingNumber: "1Z1",
			Carrier:        "UPS",
			Status:         shipment.InTransit,
			Events:         []shipment.Event{{Status: shipment.InTransit, Description: "Arrived at hub", OccurredAt: occurred}},
		}, nil)

		result := f.sync(t)

		assert.Equal(t, commands.SyncTrackingResult{Synced: 1, Errors: 0}, result)
		s := f.store.shipment(o.ID(), "1Z1")
		require.NotNil(t, s)
		assert.Equal(t, shipment.InTransit, s.Status())
		assert.Len(t, s.Events(), 1)
		assert.Nil(t, s.DeliveredAt())
		assert.Equal(t, fulfillment.Shipped, f.store.job(t, job.ID()).Status())
	})

	t.Run("order is delivered only with its last job", func(t *testing.T) {
		f := newSyncFixture(1)
		o := seedOrder(t, f.store, order.RiskLevelNormal, 1000, fulfillment.Dropship)
		first := trackingAdapter()
		second := trackingAdapter()
		firstJob := f.shippedJob(t, o, "SUP-1", "1Z1", first)
		secondJob := f.shippedJob(t, o, "SUP-2", "1Z2", second)

		first.On("GetTracking", mock.Anything, "SUP-1").
			Return(&shipment.TrackingInfo{TrackingNumber: "1Z1", Status: shipment.Delivered}, nil)
		second.On("GetTracking", mock.Anything, "SUP-2").
			Return(&shipment.TrackingInfo{TrackingNumber: "1Z2", Status: shipment.OutForDelivery}, nil).Once()

		f.sync(t)

		assert.Equal(t, fulfillment.Delivered, f.store.job(t, firstJob.ID()).Status())
		assert.Equal(t, fulfillment.Shipped, f.store.job(t, secondJob.ID()).Status())
		assert.Equal(t, order.Paid, f.store.order(o.ID()).Status())
		firstDeliveredAt := f.store.shipment(o.ID(), "1Z1").DeliveredAt()
		require.NotNil(t, firstDeliveredAt)

		second.On("GetTracking", mock.Anything, "SUP-2").
			Return(&shipment.TrackingInfo{TrackingNumber: "1Z2", Status: shipment.Delivered}, nil).Once()

		result := f.sync(t)

		assert.Equal(t, 1, result.Synced, "delivered jobs are no longer tracked")
		assert.Equal(t, fulfillment.Delivered, f.store.job(t, secondJob.ID()).Status())
		assert.Equal(t, order.Delivered, f.store.order(o.ID()).Status())
		assert.NotNil(t, f.store.order(o.ID()).DeliveredAt())
		assert.Equal(t, firstDeliveredAt, f.store.shipment(o.ID(), "1Z1").DeliveredAt())
	})

	t.Run("one failing channel does not abort the sweep", func(t *testing.T) {
		f := newSyncFixture(4)
		o := seedOrder(t, f.store, order.RiskLevelNormal, 1000, fulfillment.Dropship)
		broken := trackingAdapter()
		healthy := trackingAdapter()
		f.shippedJob(t, o, "SUP-BAD", "1Z1", broken)
		f.shippedJob(t, o, "SUP-OK", "1Z2", healthy)
		broken.On("GetTracking", mock.Anything, "SUP-BAD").Return(nil, errors.New("502 bad gateway"))
		healthy.On("GetTracking", mock.Anything, "SUP-OK").
			Return(&shipment.TrackingInfo{TrackingNumber: "1Z2", Status: shipment.InTransit}, nil)

		result := f.sync(t)

		assert.Equal(t, commands.SyncTrackingResult{Synced: 1, Errors: 1}, result)
		assert.NotNil(t, f.store.shipment(o.ID(), "1Z2"))
	})

	t.Run("channels without auto tracking are skipped", func(t *testing.T) {
		f := newSyncFixture(1)
		o := seedOrder(t, f.store, order.RiskLevelNormal, 1000, fulfillment.Dropship)
		manual := new(MockSupplierAdapter)
		manual.On("SupportsFeature", supplier.FeatureAutoTracking).Return(false)
		f.shippedJob(t, o, "MANUAL-1", "", manual)

		result := f.sync(t)

		assert.Equal(t, commands.SyncTrackingResult{Synced: 1}, result)
		manual.AssertNotCalled(t, "GetTracking", mock.Anything, mock.Anything)
	})

	t.Run("warehouse job ships on first tracking number", func(t *testing.T) {
		f := newSyncFixture(1)
		o := seedOrder(t, f.store, order.RiskLevelNormal, 1000, fulfillment.Warehouse)
		job := seedJob(t, f.store, o, fulfillment.Warehouse)
		require.NoError(t, job.Start(time.Now()))
		require.NoError(t, job.Submit(nil, "WH-1", time.Now()))
		f.store.putJob(t, job)

		f.warehouse.On("SupportsFeature", supplier.FeatureAutoTracking).Return(true)
		f.warehouse.On("GetTracking", mock.Anything, "WH-1").
			Return(&shipment.TrackingInfo{TrackingNumber: "DHL-9", Carrier: "DHL", Status: shipment.InTransit}, nil)

		assert.Equal(t, commands.SyncTrackingResult{Synced: 1}, f.sync(t))

		stored := f.store.job(t, job.ID())
		assert.Equal(t, fulfillment.Shipped, stored.Status())
		assert.Equal(t, "DHL-9", stored.TrackingNumber())
		assert.Equal(t, order.Shipped, f.store.order(o.ID()).Status())
		assert.NotNil(t, f.store.shipment(o.ID(), "DHL-9"))
	})

	t.Run("no tracking yet leaves everything untouched", func(t *testing.T) {
		f := newSyncFixture(1)
		o := seedOrder(t, f.store, order.RiskLevelNormal, 1000, fulfillment.Warehouse)
		job := seedJob(t, f.store, o, fulfillment.Warehouse)
		require.NoError(t, job.Start(time.Now()))
		require.NoError(t, job.Submit(nil, "WH-1", time.Now()))
		f.store.putJob(t, job)
		f.warehouse.On("SupportsFeature", supplier.FeatureAutoTracking).Return(true)
		f.warehouse.On("GetTracking", mock.Anything, "WH-1").Return(nil, nil)

		assert.Equal(t, commands.SyncTrackingResult{Synced: 1}, f.sync(t))
		assert.Equal(t, fulfillment.Processing, f.store.job(t, job.ID()).Status())
		assert.Empty(t, f.store.shipments)
	})
}

func TestAdapterCache_BuildsOncePerSupplier(t *testing.T) {
	s := newStore()
	sup := seedSupplier(t, s, kernel.NewUUID(), "acme", 100, 1, 5, 0)
	adapter := new(MockSupplierAdapter)
	factory := new(MockAdapterFactory)
	factory.On("New", sup).Return(adapter, nil).Once()
	cache := commands.NewAdapterCache(factory)

	done := make(chan struct{})
	for range 8 {
		go func() {
			defer func() { done <- struct{}{} }()
			got, err := cache.Get(sup)
			assert.NoError(t, err)
			assert.Same(t, adapter, got)
		}()
	}
	for range 8 {
		<-done
	}

	assert.Equal(t, 1, cache.Len())
}
