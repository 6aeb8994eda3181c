// Package errs provides standardized error types for the pressing service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Validation failures:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value breaks a business rule
//   - ValueIsOutOfRangeError: a value falls outside accepted bounds
//
// Workflow failures:
//   - ObjectNotFoundError: a referenced order, client, plant or catalog item does not exist
//   - ForbiddenError: the caller's role or scope does not cover the action
//   - TransitionNotAllowedError: a status change is not the legal next step
//   - PaymentNotAllowedError: the order is not delivered or is already paid
//   - ConflictError, VersionIsInvalidError: a concurrent writer won the race
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for errors.Is / errors.As support
package errs
