// Package commands contains business operations that modify fulfillment state:
// job creation behind the fraud gate, job processing with bounded retries, the retry
// sweep and tracking reconciliation.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces give command handlers access to repositories, optionally
// inside a transaction.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	JobRepoFactory interface {
		JobRepository() ports.JobRepository
	}

	FailureLogRepoFactory interface {
		FailureLogRepository() ports.FailureLogRepository
	}

	FraudCheckRepoFactory interface {
		FraudCheckRepository() ports.FraudCheckRepository
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	SupplierRepoFactory interface {
		SupplierRepository() ports.SupplierRepository
	}

	ProductCatalogFactory interface {
		ProductCatalog() ports.ProductCatalog
	}

	PickTaskRepoFactory interface {
		PickTaskRepository() ports.PickTaskRepository
	}

	// UoW covers every repository the fulfillment workflow touches.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   jobRepo := uow.JobRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		JobRepoFactory
		FailureLogRepoFactory
		FraudCheckRepoFactory
		ShipmentRepoFactory
		SupplierRepoFactory
		ProductCatalogFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	// PickTaskUoW manages warehouse pick task updates.
	PickTaskUoW interface {
		TxManager
		PickTaskRepoFactory
	}

	PickTaskUoWFactory interface {
		Create() PickTaskUoW
	}
)
