package commands

import (
	"context"
	"time"
)

// ShipPickTaskCommandHandler updates a warehouse pick task from the warehouse floor.
// The owning job picks the change up on the next tracking sweep.
type ShipPickTaskCommandHandler struct {
	uowFactory PickTaskUoWFactory
}

func NewShipPickTaskCommandHandler(uowFactory PickTaskUoWFactory) ShipPickTaskCommandHandler {
	return ShipPickTaskCommandHandler{uowFactory: uowFactory}
}

// Handle returns errs.ErrObjectNotFound for an unknown reference and
// warehouse.ErrPickTaskIsClosed for cancelled tasks.
func (h ShipPickTaskCommandHandler) Handle(ctx context.Context, command ShipPickTaskCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PickTaskRepository()
	task, err := repo.GetByReference(ctx, command.Reference())
	if err != nil {
		return err
	}

	now := time.Now()
	if err = task.Ship(command.TrackingNumber(), command.Carrier(), now); err != nil {
		return err
	}
	if command.Delivered() {
		if err = task.Deliver(now); err != nil {
			return err
		}
	}

	if err = repo.Update(ctx, task); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
