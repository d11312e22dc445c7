// Package order models the paid order received from the upstream commerce system.
//
// The package includes:
//   - Order: read-mostly aggregate holding items, shipping address and payment risk
//   - Status: buyer-visible order state aggregated from fulfillment jobs
//   - RiskLevel: the payment processor's risk evaluation
//
// Key business rules:
//   - Orders are never created here, only restored from persistence
//   - Shipping never downgrades a delivered order
//   - The delivery timestamp is written once
package order
