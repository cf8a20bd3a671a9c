package errs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"localeats/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringer string

func (s stringer) String() string { return string(s) }

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "123")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: order 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("restaurant", 456, cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "object not found: restaurant 456 (cause: record not found)", err.Error())
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.NotErrorIs(t, err, errs.ErrValidation)
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
	})

	t.Run("belongs to the validation family", func(t *testing.T) {
		var err error = errs.NewValueIsInvalidError("email")

		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.NotErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 0, 1, nil)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, 0, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Nil(t, err.Max)
		assert.Equal(t, "value is out of range: 0 is quantity, min value is 1, max value is <nil>", err.Error())
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("negative price")
		err := errs.NewValueIsOutOfRangeErrorWithCause("price", -5, 0, nil, cause)

		assert.Equal(t, cause, err.Cause)
		assert.Contains(t, err.Error(), "(cause: negative price)")
	})

	t.Run("sanitizes newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)

		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("name")

	assert.Equal(t, "value is required: name", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	assert.ErrorIs(t, err, errs.ErrValidation)

	withCause := errs.NewValueIsRequiredErrorWithCause("name", errors.New("blank"))
	assert.Equal(t, "value is required: name (cause: blank)", withCause.Error())
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError(stringer("ready"), stringer("confirmed"), stringer("restaurant"))

	assert.Equal(t, "ready", err.From)
	assert.Equal(t, "confirmed", err.To)
	assert.Equal(t, "restaurant", err.Role)
	assert.Equal(t, "invalid transition: restaurant cannot move order from ready to confirmed", err.Error())
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.NotErrorIs(t, err, errs.ErrValidation)

	statusOnly := errs.NewStatusTransitionError(stringer("delivered"), stringer("cancelled"))
	assert.Equal(t, "invalid transition: cannot move order from delivered to cancelled", statusOnly.Error())

	var target *errs.InvalidTransitionError
	require.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &target)
	assert.Equal(t, "confirmed", target.To)
}

func TestConflictError(t *testing.T) {
	err := errs.NewConflictError("order", "42", "already claimed")

	assert.Equal(t, "conflict: order 42: already claimed", err.Error())
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestPersistenceError(t *testing.T) {
	t.Run("exposes sentinel and cause", func(t *testing.T) {
		err := errs.NewPersistenceError("find orders", context.DeadlineExceeded)

		assert.ErrorIs(t, err, errs.ErrPersistence)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, "persistence failure: find orders (cause: context deadline exceeded)", err.Error())
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewPersistenceError("commit", nil)

		assert.ErrorIs(t, err, errs.ErrPersistence)
		assert.Equal(t, "persistence failure: commit", err.Error())
	})
}

func TestAccessErrors(t *testing.T) {
	unauthorized := errs.NewUnauthorizedError("token expired")
	assert.Equal(t, "unauthorized: token expired", unauthorized.Error())
	assert.ErrorIs(t, unauthorized, errs.ErrUnauthorized)

	forbidden := errs.NewForbiddenError("edit menu", "customer")
	assert.Equal(t, "forbidden: customer may not edit menu", forbidden.Error())
	assert.ErrorIs(t, forbidden, errs.ErrForbidden)
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "invalid transition", errs.ErrInvalidTransition.Error())
	assert.Equal(t, "conflict", errs.ErrConflict.Error())
}
