package commands

import "errors"

var (
	// ErrOrderNotFound is returned when the order to fulfil does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrNoValidProducts is returned when an order yields no fulfillment group.
	ErrNoValidProducts = errors.New("no valid products to fulfil")
	// ErrFraudBlocked is returned when the fraud gate blocks an order.
	ErrFraudBlocked = errors.New("order blocked by fraud check")
	// ErrAdapter wraps channel failures: timeouts, transport errors, malformed or
	// unsuccessful responses.
	ErrAdapter = errors.New("supplier adapter error")
	// ErrNoSupplierAvailable is returned when no active supplier offers the product.
	ErrNoSupplierAvailable = errors.New("no supplier available")
	// ErrMaxRetriesExceeded marks a job that failed its last allowed attempt.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
