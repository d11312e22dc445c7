package fulfillment

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// FailureRecord is the operator-facing log entry of one failed attempt.
type FailureRecord struct {
	JobID      kernel.UUID
	OrderID    kernel.UUID
	Attempt    int
	Message    string
	Exhausted  bool
	OccurredAt time.Time
}
