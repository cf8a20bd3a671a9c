package errs

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// UnauthorizedError reports missing or rejected credentials.
type UnauthorizedError struct {
	Reason string
}

func NewUnauthorizedError(reason string) *UnauthorizedError {
	return &UnauthorizedError{Reason: reason}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnauthorized, sanitize(e.Reason))
}

func (e *UnauthorizedError) Unwrap() error { return ErrUnauthorized }

// ForbiddenError reports an authenticated actor acting on something it does
// not own or with a role that may not perform the action.
type ForbiddenError struct {
	Action string
	Role   string
}

func NewForbiddenError(action, role string) *ForbiddenError {
	return &ForbiddenError{Action: action, Role: role}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s may not %s", ErrForbidden, sanitize(e.Role), sanitize(e.Action))
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }
