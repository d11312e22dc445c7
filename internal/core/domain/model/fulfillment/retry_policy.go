package fulfillment

import "time"

const (
	// DefaultMaxRetries is the attempt budget of a job when none is configured.
	DefaultMaxRetries = 3
	// BaseRetryDelay is the wait after the first failed attempt.
	BaseRetryDelay = 5 * time.Minute
	// ClaimLease is how long a claimed job may stay in Processing without a channel
	// reference before another worker may take it over.
	ClaimLease = 5 * time.Minute
)

// RetryDelay returns the wait before the next attempt once retryCount attempts have
// failed: 5, 10, 20, ... minutes.
//
// The exponent is retryCount-1, so the first retry waits BaseRetryDelay. This is
// deliberately one step shorter than BaseRetryDelay * 2^retryCount, which would
// start at 10 minutes. Counts below 1 are treated as 1.
func RetryDelay(retryCount int) time.Duration {
	if retryCount < 1 {
		retryCount = 1
	}
	return BaseRetryDelay << (retryCount - 1)
}

// FailureOutcome describes what RecordFailure decided for the job.
type FailureOutcome struct {
	// Attempt is the 1-based number of the attempt that failed.
	Attempt int
	// Exhausted is true when the job moved to Failed.
	Exhausted bool
	// NextRetryAt is set when the job was put back in the queue.
	NextRetryAt *time.Time
}
