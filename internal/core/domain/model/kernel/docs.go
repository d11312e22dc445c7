// Package kernel provides the shared value objects of the fulfillment domain.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Address: validated shipping destination captured on an order
//
// Both types are immutable and their zero values fail Validate, so aggregates can
// detect values that bypassed the constructors.
package kernel
