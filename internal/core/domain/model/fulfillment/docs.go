// Package fulfillment models fulfillment jobs: one job per fulfillment type present in
// a paid order.
//
// The package includes:
//   - Job: aggregate root carrying the captured items, channel references, tracking
//     details and retry bookkeeping
//   - Type: the delivery channel (digital, manual, warehouse, dropship)
//   - Status: the job state machine (queued, processing, shipped, delivered, failed)
//   - RetryDelay: the exponential wait applied between failed attempts
//
// Key business rules:
//   - A failed attempt increments RetryCount by exactly one
//   - A job fails permanently exactly when RetryCount reaches MaxRetries
//   - Terminal jobs are never mutated
package fulfillment
