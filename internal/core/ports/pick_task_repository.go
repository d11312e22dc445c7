package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/warehouse"
)

// PickTaskRepository persists warehouse pick-pack tasks.
type PickTaskRepository interface {
	Add(ctx context.Context, task *warehouse.PickTask) error
	Update(ctx context.Context, task *warehouse.PickTask) error

	// GetByReference returns errs.ErrObjectNotFound when no task has the reference.
	GetByReference(ctx context.Context, reference string) (*warehouse.PickTask, error)
}
