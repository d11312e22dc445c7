package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrRetryDueJobsCommandIsNotConstructed = errors.New(
	"RetryDueJobsCommand must be created via NewRetryDueJobsCommand constructor",
)

// RetryDueJobsCommand triggers a sweep that re-dispatches jobs whose retry time has
// come and jobs whose dispatch was lost.
type RetryDueJobsCommand struct {
	guard guard.ConstructorGuard
}

func NewRetryDueJobsCommand() RetryDueJobsCommand {
	return RetryDueJobsCommand{guard: guard.NewConstructorGuard()}
}

func (c RetryDueJobsCommand) Validate() error {
	return c.guard.Validate(ErrRetryDueJobsCommandIsNotConstructed)
}
