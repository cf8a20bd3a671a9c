// Package errs provides the error taxonomy shared by the LocalEats packages.
//
// Every error type follows the same shape: a sentinel variable, a struct
// carrying the details, constructors with and without a cause, an Error
// method and an Unwrap method returning the sentinel. Callers classify
// failures with errors.Is against the sentinels, or errors.As against the
// struct types when they need the details.
//
// The validation family (ValueIsRequiredError, ValueIsInvalidError and
// ValueIsOutOfRangeError) additionally matches ErrValidation, so inbound
// adapters can map any of them with a single check.
package errs
