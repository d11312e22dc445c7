// Package errs provides standardized error types for the fulfillment service.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a numeric value lies outside its allowed range
//   - ObjectNotFoundError: a record cannot be found
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
//
// ErrConcurrentUpdate is returned by repositories when an optimistic version check
// loses against another writer.
package errs
