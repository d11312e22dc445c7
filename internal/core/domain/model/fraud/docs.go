// Package fraud holds the per-order fraud verdict that gates fulfillment.
//
// A Check is created once per order and never changes afterwards. Only a Blocked
// verdict stops job creation; Flagged orders proceed and are left for operator review.
package fraud
