package errs

import (
	"errors"
	"fmt"
)

var ErrConflict = errors.New("conflict")

// ConflictError reports a write that lost a race against another writer,
// for example a second driver claiming an already claimed order.
type ConflictError struct {
	ParamName string
	ID        any
	Reason    string
}

func NewConflictError(paramName string, id any, reason string) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id, Reason: reason}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s: %s", ErrConflict, sanitize(e.ParamName), sanitize(e.ID), sanitize(e.Reason))
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
