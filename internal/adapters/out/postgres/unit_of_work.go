// Package postgres provides the GORM-based Unit of Work that hands out every
// fulfillment repository, optionally bound to one transaction.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	for _, job := range jobs {
//	    if err := uow.JobRepository().Add(ctx, job); err != nil {
//	        return err
//	    }
//	}
//
//	return uow.Commit(ctx)
//
// Without Begin, repositories run on the plain connection and every statement
// commits on its own. Job processing relies on that: the optimistic version check on
// fulfillment_jobs is what serialises workers, not a long transaction.
//
// Each UnitOfWork instance holds at most one transaction and must not be shared
// between goroutines; create one per operation.
package postgres

import (
	"context"
	"sync"

	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/failurelogrepo"
	"fulfillment/internal/adapters/out/postgres/fraudrepo"
	"fulfillment/internal/adapters/out/postgres/jobrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/picktaskrepo"
	"fulfillment/internal/adapters/out/postgres/shipmentrepo"
	"fulfillment/internal/adapters/out/postgres/supplierrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// Models lists every table the service owns, in migration order.
func Models() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&catalogrepo.ProductDTO{},
		&supplierrepo.SupplierDTO{},
		&supplierrepo.OfferDTO{},
		&jobrepo.JobDTO{},
		&failurelogrepo.FailureDTO{},
		&fraudrepo.FraudCheckDTO{},
		&shipmentrepo.ShipmentDTO{},
		&picktaskrepo.PickTaskDTO{},
	}
}

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh UnitOfWork with no active transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates a database transaction across repositories and records
// the aggregates written through them.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB

	mu                sync.Mutex
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling Begin twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback returns gorm.ErrInvalidTransaction when no transaction is active, which
// makes a deferred Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) JobRepository() ports.JobRepository {
	return jobrepo.NewGormJobRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) FailureLogRepository() ports.FailureLogRepository {
	return failurelogrepo.NewGormFailureLogRepository(uow.conn())
}

func (uow *GormUnitOfWork) FraudCheckRepository() ports.FraudCheckRepository {
	return fraudrepo.NewGormFraudCheckRepository(uow.conn())
}

func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) SupplierRepository() ports.SupplierRepository {
	return supplierrepo.NewGormSupplierRepository(uow.conn())
}

func (uow *GormUnitOfWork) ProductCatalog() ports.ProductCatalog {
	return catalogrepo.NewGormProductCatalog(uow.conn())
}

func (uow *GormUnitOfWork) PickTaskRepository() ports.PickTaskRepository {
	return picktaskrepo.NewGormPickTaskRepository(uow.conn())
}

// TrackAggregate is called by repositories after an aggregate was written.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.mu.Lock()
	defer uow.mu.Unlock()
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedIDs returns the ids of the aggregates written so far, in write order.
func (uow *GormUnitOfWork) TrackedIDs() []kernel.UUID {
	uow.mu.Lock()
	defer uow.mu.Unlock()
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		ids = append(ids, tracked.ID)
	}
	return ids
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
