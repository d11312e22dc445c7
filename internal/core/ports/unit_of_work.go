package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Repositories obtained
// before Begin, or after Commit/Rollback, run outside a transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	JobRepository() JobRepository
	FailureLogRepository() FailureLogRepository
	FraudCheckRepository() FraudCheckRepository
	ShipmentRepository() ShipmentRepository
	SupplierRepository() SupplierRepository
	ProductCatalog() ProductCatalog
	PickTaskRepository() PickTaskRepository
}
