package errs

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid transition")

// InvalidTransitionError reports a lifecycle move that is not allowed from
// the current state or not allowed for the acting role.
type InvalidTransitionError struct {
	From string
	To   string
	Role string
}

func NewInvalidTransitionError(from, to, role fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{From: from.String(), To: to.String(), Role: role.String()}
}

// NewStatusTransitionError reports a move the status graph itself forbids,
// independent of who asked for it.
func NewStatusTransitionError(from, to fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{From: from.String(), To: to.String()}
}

func (e *InvalidTransitionError) Error() string {
	if e.Role == "" {
		return fmt.Sprintf("%s: cannot move order from %s to %s", ErrInvalidTransition, sanitize(e.From), sanitize(e.To))
	}
	return fmt.Sprintf("%s: %s cannot move order from %s to %s",
		ErrInvalidTransition, sanitize(e.Role), sanitize(e.From), sanitize(e.To))
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }
