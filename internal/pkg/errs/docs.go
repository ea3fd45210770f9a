// Package errs provides the typed errors shared by every layer of the freight
// service. Each error type unwraps to a sentinel so callers can classify
// failures with errors.Is without caring about the concrete type.
//
// Classification:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation
//     failures (see IsValidation)
//   - ObjectNotFoundError: a referenced load, stop, unit or resource does not exist
//   - ConflictError: a concurrent mutation of the same aggregate was detected
//   - PermissionDeniedError: the caller lacks a capability
//   - UpstreamError: the repository or the file storage failed
//
// Every type carries an optional Cause that is rendered in Error() but is not
// part of the errors.Is chain; the chain always ends at the sentinel.
package errs
