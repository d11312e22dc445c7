// Package services provides domain services that implement business rules spanning
// several aggregates of the fulfillment domain.
//
// The package includes:
//   - SupplierScorer: ranks dropship suppliers of a product with a weighted score
//   - FraudAssessor: computes the fraud verdict that gates job creation
//
// Both services are pure: they read aggregates and return values, leaving
// persistence to the application layer.
package services
