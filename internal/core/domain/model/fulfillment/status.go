package fulfillment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of a fulfillment job.
//
// State transitions:
//
//	Queued ──> Processing ──┬──> Shipped ──> Delivered
//	  ▲            │        └──────────────> Delivered   (digital)
//	  └── retry ───┤
//	               └──> Failed                          (retries exhausted)
//
// The retry edge is the only backward move: a failed attempt that still has retry
// budget puts the job back in the queue with a NextRetryAt. Delivered and Failed are
// terminal.
type Status string

const (
	Queued     Status = "queued"
	Processing Status = "processing"
	Shipped    Status = "shipped"
	Delivered  Status = "delivered"
	Failed     Status = "failed"
)

// Validate checks that the status is one of the known values.
func (s Status) Validate() error {
	switch s {
	case Queued, Processing, Shipped, Delivered, Failed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid job status", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed
}

// Start transitions to Processing. Processing is accepted too, so an attempt that
// crashed after claiming the job can be resumed.
func (s Status) Start() (Status, error) {
	if s != Queued && s != Processing {
		return s, transitionError(s, Processing)
	}
	return Processing, nil
}

// Ship transitions Processing to Shipped.
func (s Status) Ship() (Status, error) {
	if s != Processing && s != Shipped {
		return s, transitionError(s, Shipped)
	}
	return Shipped, nil
}

// Deliver transitions Processing or Shipped to Delivered.
func (s Status) Deliver() (Status, error) {
	if s != Processing && s != Shipped && s != Delivered {
		return s, transitionError(s, Delivered)
	}
	return Delivered, nil
}

func transitionError(from, to Status) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s is not a valid status to move to %s", from, to),
	)
}
