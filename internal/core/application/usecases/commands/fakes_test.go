package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/fraud"
	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/supplier"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// store is an in-memory persistence shared by the fake repositories. Jobs are kept
// as copies so the optimistic version check behaves like the database.
type store struct {
	mu sync.Mutex

	orders    map[kernel.UUID]*order.Order
	jobs      map[kernel.UUID]*fulfillment.Job
	jobOrder  []kernel.UUID
	checks    map[kernel.UUID]*fraud.Check
	shipments map[string]*shipment.Shipment
	failures  []fulfillment.FailureRecord
	products  map[kernel.UUID]fulfillment.Type
	suppliers map[kernel.UUID]*supplier.Supplier
	offers    map[kernel.UUID][]supplier.Offer

	failNextJobUpdate   error
	failJobUpdate       func(j *fulfillment.Job) error
	failNextShipmentAdd error
	commits             int
}

func newStore() *store {
	return &store{
		orders:    make(map[kernel.UUID]*order.Order),
		jobs:      make(map[kernel.UUID]*fulfillment.Job),
		checks:    make(map[kernel.UUID]*fraud.Check),
		shipments: make(map[string]*shipment.Shipment),
		products:  make(map[kernel.UUID]fulfillment.Type),
		suppliers: make(map[kernel.UUID]*supplier.Supplier),
		offers:    make(map[kernel.UUID][]supplier.Offer),
	}
}

func (s *store) uowFactory() commands.UoWFactory {
	return uowFactoryFunc(func() commands.UoW { return &fakeUoW{store: s} })
}

type uowFactoryFunc func() commands.UoW

func (f uowFactoryFunc) Create() commands.UoW { return f() }

func (s *store) job(t *testing.T, id kernel.UUID) *fulfillment.Job {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	require.True(t, ok, "job %s not stored", id)
	return cloneJob(t, j)
}

func (s *store) jobsOf(t *testing.T, orderID kernel.UUID) []*fulfillment.Job {
	t.Helper()
	jobs, err := (&fakeJobRepo{store: s}).GetAllByOrder(context.Background(), orderID)
	require.NoError(t, err)
	return jobs
}

func (s *store) order(id kernel.UUID) *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id]
}

func (s *store) putJob(t *testing.T, j *fulfillment.Job) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[j.ID()]; !ok {
		s.jobOrder = append(s.jobOrder, j.ID())
	}
	s.jobs[j.ID()] = cloneJob(t, j)
}

// expireRetryWait moves a stored job's retry time into the past.
func (s *store) expireRetryWait(t *testing.T, id kernel.UUID) {
	t.Helper()
	j := s.job(t, id)
	past := time.Now().Add(-time.Second)
	restored, err := fulfillment.RestoreJob(paramsOf(j, func(p *fulfillment.Params) { p.NextRetryAt = &past }))
	require.NoError(t, err)
	s.putJob(t, restored)
}

func (s *store) shipment(orderID kernel.UUID, trackingNumber string) *shipment.Shipment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shipments[orderID.String()+"/"+trackingNumber]
}

func paramsOf(j *fulfillment.Job, mutate func(p *fulfillment.Params)) fulfillment.Params {
	p := fulfillment.Params{
		ID:                j.ID(),
		OrderID:           j.OrderID(),
		StoreID:           j.StoreID(),
		FulfillmentType:   j.Type(),
		Status:            j.Status(),
		SupplierID:        j.SupplierID(),
		SupplierOrderID:   j.SupplierOrderID(),
		TrackingNumber:    j.TrackingNumber(),
		Carrier:           j.Carrier(),
		EstimatedDelivery: j.EstimatedDelivery(),
		RetryCount:        j.RetryCount(),
		MaxRetries:        j.MaxRetries(),
		NextRetryAt:       j.NextRetryAt(),
		ErrorMessage:      j.ErrorMessage(),
		Items:             j.Items(),
		Version:           j.Version(),
		CreatedAt:         j.CreatedAt(),
		UpdatedAt:         j.UpdatedAt(),
	}
	if mutate != nil {
		mutate(&p)
	}
	return p
}

func cloneJob(t *testing.T, j *fulfillment.Job) *fulfillment.Job {
	t.Helper()
	c, err := fulfillment.RestoreJob(paramsOf(j, nil))
	require.NoError(t, err)
	return c
}

type fakeUoW struct {
	store *store
}

func (u *fakeUoW) Begin(context.Context) error { return nil }
func (u *fakeUoW) Rollback(context.Context) error { return nil }
func (u *fakeUoW) Commit(context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.commits++
	return nil
}

func (u *fakeUoW) OrderRepository() ports.OrderRepository { return &fakeOrderRepo{store: u.store} }
func (u *fakeUoW) JobRepository() ports.JobRepository { return &fakeJobRepo{store: u.store} }
func (u *fakeUoW) FailureLogRepository() ports.FailureLogRepository {
	return &fakeFailureLogRepo{store: u.store}
}
func (u *fakeUoW) FraudCheckRepository() ports.FraudCheckRepository {
	return &fakeFraudRepo{store: u.store}
}
func (u *fakeUoW) ShipmentRepository() ports.ShipmentRepository {
	return &fakeShipmentRepo{store: u.store}
}
func (u *fakeUoW) SupplierRepository() ports.SupplierRepository {
	return &fakeSupplierRepo{store: u.store}
}
func (u *fakeUoW) ProductCatalog() ports.ProductCatalog { return &fakeCatalog{store: u.store} }

type fakeOrderRepo struct{ store *store }

func (r *fakeOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return cloneOrder(o)
}

func (r *fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, err := cloneOrder(o)
	if err != nil {
		return err
	}
	r.store.orders[o.ID()] = c
	return nil
}

func cloneOrder(o *order.Order) (*order.Order, error) {
	return order.RestoreOrder(order.Params{
		ID:               o.ID(),
		BuyerName:        o.BuyerName(),
		Items:            o.Items(),
		ShippingAddress:  o.ShippingAddress(),
		TotalAmountCents: o.TotalAmountCents(),
		RiskLevel:        o.RiskLevel(),
		Status:           o.Status(),
		DeliveredAt:      o.DeliveredAt(),
	})
}

type fakeJobRepo struct{ store *store }

func (r *fakeJobRepo) Add(_ context.Context, j *fulfillment.Job) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, err := fulfillment.RestoreJob(paramsOf(j, nil))
	if err != nil {
		return err
	}
	r.store.jobs[j.ID()] = c
	r.store.jobOrder = append(r.store.jobOrder, j.ID())
	return nil
}

func (r *fakeJobRepo) Update(_ context.Context, j *fulfillment.Job) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.failNextJobUpdate; err != nil {
		r.store.failNextJobUpdate = nil
		return err
	}
	if r.store.failJobUpdate != nil {
		if err := r.store.failJobUpdate(j); err != nil {
			return err
		}
	}
	stored, ok := r.store.jobs[j.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("job", j.ID())
	}
	if stored.Version() != j.Version() {
		return errs.ErrConcurrentUpdate
	}
	j.MarkPersisted()
	c, err := fulfillment.RestoreJob(paramsOf(j, nil))
	if err != nil {
		return err
	}
	r.store.jobs[j.ID()] = c
	return nil
}

func (r *fakeJobRepo) Get(_ context.Context, id kernel.UUID) (*fulfillment.Job, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	j, ok := r.store.jobs[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("job", id)
	}
	return fulfillment.RestoreJob(paramsOf(j, nil))
}

func (r *fakeJobRepo) GetAllByOrder(_ context.Context, orderID kernel.UUID) ([]*fulfillment.Job, error) {
	return r.filter(func(j *fulfillment.Job) bool { return j.OrderID().IsEqual(orderID) })
}

func (r *fakeJobRepo) GetAllTrackable(context.Context) ([]*fulfillment.Job, error) {
	return r.filter(func(j *fulfillment.Job) bool {
		return (j.Status() == fulfillment.Shipped && j.SupplierOrderID() != "") ||
			(j.Type() == fulfillment.Warehouse && j.IsSubmitted())
	})
}

func (r *fakeJobRepo) GetAllDueForDispatch(_ context.Context, now, staleBefore time.Time) ([]*fulfillment.Job, error) {
	return r.filter(func(j *fulfillment.Job) bool {
		switch j.Status() {
		case fulfillment.Queued:
			if j.NextRetryAt() != nil {
				return !j.NextRetryAt().After(now)
			}
			return j.UpdatedAt().Before(staleBefore)
		case fulfillment.Processing:
			return j.SupplierOrderID() == "" && j.UpdatedAt().Before(staleBefore)
		default:
			return false
		}
	})
}

func (r *fakeJobRepo) filter(keep func(j *fulfillment.Job) bool) ([]*fulfillment.Job, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]*fulfillment.Job, 0)
	for _, id := range r.store.jobOrder {
		j := r.store.jobs[id]
		if !keep(j) {
			continue
		}
		c, err := fulfillment.RestoreJob(paramsOf(j, nil))
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, nil
}

type fakeFailureLogRepo struct{ store *store }

func (r *fakeFailureLogRepo) Add(_ context.Context, record fulfillment.FailureRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.failures = append(r.store.failures, record)
	return nil
}

type fakeFraudRepo struct{ store *store }

func (r *fakeFraudRepo) Get(_ context.Context, orderID kernel.UUID) (*fraud.Check, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.checks[orderID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("fraud check", orderID)
	}
	return c, nil
}

func (r *fakeFraudRepo) AddIfAbsent(_ context.Context, check *fraud.Check) (*fraud.Check, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if existing, ok := r.store.checks[check.OrderID()]; ok {
		return existing, nil
	}
	r.store.checks[check.OrderID()] = check
	return check, nil
}

type fakeShipmentRepo struct{ store *store }

func (r *fakeShipmentRepo) Add(_ context.Context, s *shipment.Shipment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.failNextShipmentAdd; err != nil {
		r.store.failNextShipmentAdd = nil
		return err
	}
	r.store.shipments[s.OrderID().String()+"/"+s.TrackingNumber()] = s
	return nil
}

func (r *fakeShipmentRepo) Update(ctx context.Context, s *shipment.Shipment) error {
	return r.Add(ctx, s)
}

func (r *fakeShipmentRepo) GetByTracking(_ context.Context, orderID kernel.UUID, trackingNumber string) (*shipment.Shipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.shipments[orderID.String()+"/"+trackingNumber]
	if !ok {
		return nil, errs.NewObjectNotFoundError("shipment", trackingNumber)
	}
	return s, nil
}

type fakeSupplierRepo struct{ store *store }

func (r *fakeSupplierRepo) Get(_ context.Context, id kernel.UUID) (*supplier.Supplier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.suppliers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("supplier", id)
	}
	return s, nil
}

func (r *fakeSupplierRepo) GetCandidates(_ context.Context, productID kernel.UUID) ([]supplier.Candidate, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	candidates := make([]supplier.Candidate, 0)
	for _, offer := range r.store.offers[productID] {
		s := r.store.suppliers[offer.SupplierID]
		if !offer.Available || !s.IsActive() {
			continue
		}
		candidates = append(candidates, supplier.Candidate{Offer: offer, Supplier: s})
	}
	return candidates, nil
}

type fakeCatalog struct{ store *store }

func (c *fakeCatalog) FulfillmentTypes(_ context.Context, productIDs []kernel.UUID) (map[kernel.UUID]fulfillment.Type, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	types := make(map[kernel.UUID]fulfillment.Type, len(productIDs))
	for _, id := range productIDs {
		if t, ok := c.store.products[id]; ok {
			types[id] = t
		}
	}
	return types, nil
}

type MockSupplierAdapter struct{ mock.Mock }

func (m *MockSupplierAdapter) SearchProducts(ctx context.Context, query string) ([]supplier.Product, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]supplier.Product), args.Error(1)
}

func (m *MockSupplierAdapter) GetProduct(ctx context.Context, sku string) (*supplier.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supplier.Product), args.Error(1)
}

func (m *MockSupplierAdapter) CreateOrder(ctx context.Context, req supplier.OrderRequest) (supplier.OrderResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(supplier.OrderResult), args.Error(1)
}

func (m *MockSupplierAdapter) GetTracking(ctx context.Context, supplierOrderID string) (*shipment.TrackingInfo, error) {
	args := m.Called(ctx, supplierOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.TrackingInfo), args.Error(1)
}

func (m *MockSupplierAdapter) CancelOrder(ctx context.Context, supplierOrderID string) (supplier.CancelResult, error) {
	args := m.Called(ctx, supplierOrderID)
	return args.Get(0).(supplier.CancelResult), args.Error(1)
}

func (m *MockSupplierAdapter) SupportsFeature(feature supplier.Feature) bool {
	args := m.Called(feature)
	return args.Bool(0)
}

type MockAdapterFactory struct{ mock.Mock }

func (m *MockAdapterFactory) New(s *supplier.Supplier) (ports.SupplierAdapter, error) {
	args := m.Called(s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.SupplierAdapter), args.Error(1)
}

type MockJobDispatcher struct{ mock.Mock }

func (m *MockJobDispatcher) Dispatch(ctx context.Context, jobID kernel.UUID) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

func newAddress(t *testing.T) kernel.Address {
	t.Helper()
	addr, err := kernel.NewAddress(kernel.AddressParams{
		Recipient:  "Jane Buyer",
		Line1:      "1 Main St",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
		Country:    "US",
	})
	require.NoError(t, err)
	return addr
}

func newItem(t *testing.T, productID kernel.UUID, name string) order.Item {
	t.Helper()
	item, err := order.NewItem(productID, name, 1, 1500)
	require.NoError(t, err)
	return item
}

// seedOrder stores a paid order whose products are registered with the given types.
func seedOrder(t *testing.T, s *store, risk order.RiskLevel, totalCents int64, types ...fulfillment.Type) *order.Order {
	t.Helper()
	items := make([]order.Item, 0, len(types))
	for i, ft := range types {
		productID := kernel.NewUUID()
		s.products[productID] = ft
		items = append(items, newItem(t, productID, string(ft)+"-"+string(rune('a'+i))))
	}

	o, err := order.RestoreOrder(order.Params{
		ID:               kernel.NewUUID(),
		BuyerName:        "Jane Buyer",
		Items:            items,
		ShippingAddress:  newAddress(t),
		TotalAmountCents: totalCents,
		RiskLevel:        risk,
		Status:           order.Paid,
	})
	require.NoError(t, err)
	s.orders[o.ID()] = o
	return o
}

// cancelOrder marks a seeded order as cancelled upstream.
func cancelOrder(t *testing.T, s *store, o *order.Order) {
	t.Helper()
	c, err := order.RestoreOrder(order.Params{
		ID:               o.ID(),
		BuyerName:        o.BuyerName(),
		Items:            o.Items(),
		ShippingAddress:  o.ShippingAddress(),
		TotalAmountCents: o.TotalAmountCents(),
		RiskLevel:        o.RiskLevel(),
		Status:           order.Cancelled,
	})
	require.NoError(t, err)
	s.orders[o.ID()] = c
}

// seedJob stores a queued job for all items of an order.
func seedJob(t *testing.T, s *store, o *order.Order, ft fulfillment.Type) *fulfillment.Job {
	t.Helper()
	job, err := fulfillment.NewJob(o.ID(), kernel.NewUUID(), ft, o.Items(), 3, time.Now())
	require.NoError(t, err)
	s.putJob(t, job)
	return job
}

func seedSupplier(t *testing.T, s *store, productID kernel.UUID, name string, costCents int64, days, rating, returnRate float64) *supplier.Supplier {
	t.Helper()
	sup, err := supplier.RestoreSupplier(supplier.Params{
		ID:              kernel.NewUUID(),
		Name:            name,
		AdapterKind:     supplier.APIAdapter,
		APIBaseURL:      "https://" + name + ".test",
		Active:          true,
		Rating:          rating,
		AvgShippingDays: days,
		ReturnRate:      returnRate,
	})
	require.NoError(t, err)
	s.suppliers[sup.ID()] = sup
	s.offers[productID] = append(s.offers[productID], supplier.Offer{
		ProductID:   productID,
		SupplierID:  sup.ID(),
		SupplierSKU: name + "-SKU",
		CostCents:   costCents,
		Available:   true,
	})
	return sup
}
