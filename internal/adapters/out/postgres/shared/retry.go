package shared

import (
	"context"
	"errors"
	"time"

	"localeats/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/gorm"
)

// Retry calls op until it succeeds, returns a permanent error, ctx is done
// or maxRetries retries have failed.
func Retry(ctx context.Context, maxRetries uint64, initialWait time.Duration, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = initialWait
	policy.MaxElapsedTime = 0

	return backoff.Retry(func() error {
		err := op()
		if err != nil && !IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(policy, maxRetries), ctx))
}

// IsTransient reports whether err is worth another attempt. Missing rows,
// domain errors and cancellations are final.
func IsTransient(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrInvalidTransition):
		return false
	default:
		return true
	}
}

// Wrap turns a driver failure into a PersistenceError. Domain errors pass
// through unchanged.
func Wrap(operation string, err error) error {
	if err == nil {
		return nil
	}
	var persistence *errs.PersistenceError
	if errors.As(err, &persistence) ||
		errors.Is(err, errs.ErrValidation) ||
		errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrConflict) {
		return err
	}
	return errs.NewPersistenceError(operation, err)
}
