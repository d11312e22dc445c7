package fraud

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the verdict of a fraud check.
type Status string

const (
	Approved Status = "approved"
	Flagged  Status = "flagged"
	Blocked  Status = "blocked"
)

const (
	// BlockedThreshold is the lowest score that blocks fulfillment.
	BlockedThreshold = 75
	// FlaggedThreshold is the lowest score that flags an order for review.
	FlaggedThreshold = 50
)

// StatusForScore maps a risk score onto a verdict.
func StatusForScore(score int) Status {
	switch {
	case score >= BlockedThreshold:
		return Blocked
	case score >= FlaggedThreshold:
		return Flagged
	default:
		return Approved
	}
}

func (s Status) Validate() error {
	switch s {
	case Approved, Flagged, Blocked:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("fraud status", fmt.Errorf("%q is not a valid fraud status", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}
