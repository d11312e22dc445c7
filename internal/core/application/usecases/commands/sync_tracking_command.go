package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrSyncTrackingCommandIsNotConstructed = errors.New(
	"SyncTrackingCommand must be created via NewSyncTrackingCommand constructor",
)

// SyncTrackingCommand triggers a tracking sweep over every trackable job.
type SyncTrackingCommand struct {
	guard guard.ConstructorGuard
}

func NewSyncTrackingCommand() SyncTrackingCommand {
	return SyncTrackingCommand{guard: guard.NewConstructorGuard()}
}

func (c SyncTrackingCommand) Validate() error {
	return c.guard.Validate(ErrSyncTrackingCommandIsNotConstructed)
}
