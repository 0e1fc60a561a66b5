// Package errs provides standardized error types for the marketplace application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package defines one error type per failure kind in the application's
// taxonomy:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is malformed or rejected by a rule
//   - ValueIsOutOfRangeError: a numeric value falls outside its bounds
//   - ObjectNotFoundError: an entity lookup found nothing
//   - ConflictError: the operation lost a race or would duplicate state
//   - ForbiddenError: the caller is not entitled to the target entity
//   - UnauthorizedError: the caller's identity is missing or invalid
//   - InvalidStateError: the entity does not permit the operation
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Transport adapters map sentinels to status codes; domain and application
// code only ever constructs and matches these kinds.
package errs
