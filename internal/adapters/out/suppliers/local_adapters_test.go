package suppliers_test

import (
	"context"
	"errors"
	"testing"

	"fulfillment/internal/adapters/out/suppliers"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/supplier"
	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPickTaskRepository struct {
	mock.Mock
}

func (m *MockPickTaskRepository) Add(ctx context.Context, task *warehouse.PickTask) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockPickTaskRepository) Update(ctx context.Context, task *warehouse.PickTask) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockPickTaskRepository) GetByReference(ctx context.Context, reference string) (*warehouse.PickTask, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.PickTask), args.Error(1)
}

func orderRequest() supplier.OrderRequest {
	return supplier.OrderRequest{
		Reference: "job-1",
		JobID:     "job-1",
		OrderID:   "order-1",
		ShippingAddress: supplier.Address{
			Name: "Jane Buyer", Street1: "1 Main St", City: "Springfield", Zip: "62701", Country: "US",
		},
		Lines: []supplier.OrderLine{{ProductID: "p-1", Name: "Mug", Quantity: 2}},
	}
}

func TestManualAdapter(t *testing.T) {
	ctx := context.Background()
	adapter := suppliers.NewManualAdapter()

	result, err := adapter.CreateOrder(ctx, orderRequest())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "MANUAL-job-1", result.SupplierOrderID)

	info, err := adapter.GetTracking(ctx, result.SupplierOrderID)
	require.NoError(t, err)
	assert.Nil(t, info)

	cancelled, err := adapter.CancelOrder(ctx, result.SupplierOrderID)
	require.NoError(t, err)
	assert.True(t, cancelled.Success)

	assert.True(t, adapter.SupportsFeature(supplier.FeatureCancellation))
	assert.False(t, adapter.SupportsFeature(supplier.FeatureAutoTracking))
}

func TestManualAdapter_MintsReferenceWithoutJob(t *testing.T) {
	result, err := suppliers.NewManualAdapter().CreateOrder(context.Background(), supplier.OrderRequest{})

	require.NoError(t, err)
	assert.Regexp(t, `^MANUAL-[0-9a-f-]{36}$`, result.SupplierOrderID)
}

func TestDigitalAdapter(t *testing.T) {
	ctx := context.Background()
	adapter := suppliers.NewDigitalAdapter()

	result, err := adapter.CreateOrder(ctx, orderRequest())
	require.NoError(t, err)
	assert.Equal(t, "DIGITAL-job-1", result.SupplierOrderID)

	info, err := adapter.GetTracking(ctx, result.SupplierOrderID)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, shipment.Delivered, info.Status)
	require.Len(t, info.Events, 1)
	assert.Equal(t, shipment.Delivered, info.Events[0].Status)

	cancelled, err := adapter.CancelOrder(ctx, result.SupplierOrderID)
	require.NoError(t, err)
	assert.False(t, cancelled.Success)
	assert.NotEmpty(t, cancelled.Error)

	assert.True(t, adapter.SupportsFeature(supplier.FeatureAutoTracking))
	assert.False(t, adapter.SupportsFeature(supplier.FeatureCancellation))
}

func TestWarehouseAdapter_CreateOrderStoresPickTask(t *testing.T) {
	repo := new(MockPickTaskRepository)
	var stored *warehouse.PickTask
	repo.On("Add", mock.Anything, mock.AnythingOfType("*warehouse.PickTask")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*warehouse.PickTask) }).
		Return(nil)
	adapter := suppliers.NewWarehouseAdapter(repo)

	result, err := adapter.CreateOrder(context.Background(), orderRequest())

	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, stored)
	assert.Equal(t, stored.Reference(), result.SupplierOrderID)
	assert.Equal(t, "job-1", stored.JobID())
	assert.Equal(t, warehouse.TaskPending, stored.Status())
	assert.Empty(t, result.TrackingNumber)
}

func TestWarehouseAdapter_CreateOrderStorageFailure(t *testing.T) {
	repo := new(MockPickTaskRepository)
	repo.On("Add", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := suppliers.NewWarehouseAdapter(repo).CreateOrder(context.Background(), orderRequest())

	assert.ErrorContains(t, err, "db down")
}

func TestWarehouseAdapter_CreateOrderWithoutLinesIsRejected(t *testing.T) {
	repo := new(MockPickTaskRepository)
	req := orderRequest()
	req.Lines = nil

	result, err := suppliers.NewWarehouseAdapter(repo).CreateOrder(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, result.Success)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestWarehouseAdapter_GetTracking(t *testing.T) {
	ctx := context.Background()

	pending, err := warehouse.NewPickTask(orderRequest(), testNow)
	require.NoError(t, err)

	shipped, err := warehouse.NewPickTask(orderRequest(), testNow)
	require.NoError(t, err)
	require.NoError(t, shipped.Ship("WH-TRACK-1", "DHL", testNow))

	delivered, err := warehouse.NewPickTask(orderRequest(), testNow)
	require.NoError(t, err)
	require.NoError(t, delivered.Ship("WH-TRACK-2", "DHL", testNow))
	require.NoError(t, delivered.Deliver(testNow))

	repo := new(MockPickTaskRepository)
	repo.On("GetByReference", mock.Anything, pending.Reference()).Return(pending, nil)
	repo.On("GetByReference", mock.Anything, shipped.Reference()).Return(shipped, nil)
	repo.On("GetByReference", mock.Anything, delivered.Reference()).Return(delivered, nil)
	repo.On("GetByReference", mock.Anything, "WH-missing").
		Return(nil, errs.NewObjectNotFoundError("pick task", "WH-missing"))
	adapter := suppliers.NewWarehouseAdapter(repo)

	info, err := adapter.GetTracking(ctx, pending.Reference())
	require.NoError(t, err)
	assert.Nil(t, info)

	info, err = adapter.GetTracking(ctx, shipped.Reference())
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "WH-TRACK-1", info.TrackingNumber)
	assert.Equal(t, "DHL", info.Carrier)
	assert.Equal(t, shipment.InTransit, info.Status)

	info, err = adapter.GetTracking(ctx, delivered.Reference())
	require.NoError(t, err)
	assert.Equal(t, shipment.Delivered, info.Status)

	_, err = adapter.GetTracking(ctx, "WH-missing")
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestWarehouseAdapter_CancelOrder(t *testing.T) {
	ctx := context.Background()
	open, err := warehouse.NewPickTask(orderRequest(), testNow)
	require.NoError(t, err)
	gone, err := warehouse.NewPickTask(orderRequest(), testNow)
	require.NoError(t, err)
	require.NoError(t, gone.Ship("WH-TRACK-1", "DHL", testNow))

	repo := new(MockPickTaskRepository)
	repo.On("GetByReference", mock.Anything, open.Reference()).Return(open, nil)
	repo.On("GetByReference", mock.Anything, gone.Reference()).Return(gone, nil)
	repo.On("Update", mock.Anything, open).Return(nil).Once()
	adapter := suppliers.NewWarehouseAdapter(repo)

	result, err := adapter.CancelOrder(ctx, open.Reference())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, warehouse.TaskCancelled, open.Status())

	result, err = adapter.CancelOrder(ctx, gone.Reference())
	require.NoError(t, err)
	assert.False(t, result.Success)
	repo.AssertExpectations(t)
}

func TestFactory_New(t *testing.T) {
	warehouseAdapter := suppliers.NewWarehouseAdapter(new(MockPickTaskRepository))
	factory := suppliers.NewFactory(warehouseAdapter, suppliers.APIConfig{RequestsPerSecond: 5}, nil)

	build := func(kind supplier.AdapterKind) any {
		s, err := supplier.RestoreSupplier(supplier.Params{
			ID:          kernel.NewUUID(),
			Name:        string(kind),
			AdapterKind: kind,
			APIBaseURL:  "https://supplier.example.com/",
			APIKey:      "key",
			Active:      true,
		})
		require.NoError(t, err)
		adapter, err := factory.New(s)
		require.NoError(t, err)
		return adapter
	}

	assert.IsType(t, &suppliers.ManualAdapter{}, build(supplier.ManualAdapter))
	assert.IsType(t, &suppliers.DigitalAdapter{}, build(supplier.DigitalAdapter))
	assert.IsType(t, &suppliers.APIAdapter{}, build(supplier.APIAdapter))
	assert.Same(t, warehouseAdapter, build(supplier.WarehouseAdapter))
}
