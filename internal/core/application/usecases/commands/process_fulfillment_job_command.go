package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrProcessFulfillmentJobCommandIsNotConstructed = errors.New(
	"ProcessFulfillmentJobCommand must be created via NewProcessFulfillmentJobCommand constructor",
)

// ProcessFulfillmentJobCommand runs one attempt of a fulfillment job.
type ProcessFulfillmentJobCommand struct {
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

func NewProcessFulfillmentJobCommand(jobID kernel.UUID) (ProcessFulfillmentJobCommand, error) {
	if err := jobID.Validate(); err != nil {
		return ProcessFulfillmentJobCommand{}, err
	}
	return ProcessFulfillmentJobCommand{jobID: jobID, guard: guard.NewConstructorGuard()}, nil
}

func (c ProcessFulfillmentJobCommand) Validate() error {
	return c.guard.Validate(ErrProcessFulfillmentJobCommandIsNotConstructed)
}

func (c ProcessFulfillmentJobCommand) JobID() kernel.UUID {
	return c.jobID
}
