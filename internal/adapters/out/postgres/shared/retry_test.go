package shared_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"localeats/internal/adapters/out/postgres/shared"
	"localeats/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRetry_RecoversFromTransientFailures(t *testing.T) {
	attempts := 0
	err := shared.Retry(t.Context(), 3, time.Millisecond, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("connection reset by peer")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetry_GivesUpAfterMaxRetries(t *testing.T) {
	attempts := 0
	err := shared.Retry(t.Context(), 3, time.Millisecond, func() error {
		attempts++
		return errors.New("connection refused")
	})

	require.Error(t, err)
	assert.Equal(t, 4, attempts)
}

func TestRetry_DoesNotRetryPermanentErrors(t *testing.T) {
	for _, permanent := range []error{
		gorm.ErrRecordNotFound,
		errs.NewObjectNotFoundError("order", "1"),
		errs.NewConflictError("order", "1", "already claimed"),
		errs.NewValueIsRequiredError("id"),
		context.Canceled,
	} {
		attempts := 0
		err := shared.Retry(t.Context(), 3, time.Millisecond, func() error {
			attempts++
			return permanent
		})

		require.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, attempts, permanent.Error())
	}
}

func TestRetry_StopsWhenContextIsDone(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	attempts := 0
	err := shared.Retry(ctx, 3, time.Millisecond, func() error {
		attempts++
		return errors.New("connection refused")
	})

	require.Error(t, err)
	assert.LessOrEqual(t, attempts, 1)
}

func TestWrap(t *testing.T) {
	assert.NoError(t, shared.Wrap("get order", nil))

	driverErr := errors.New("pq: too many connections")
	wrapped := shared.Wrap("get order", driverErr)
	assert.ErrorIs(t, wrapped, errs.ErrPersistence)
	assert.ErrorIs(t, wrapped, driverErr)
	assert.Contains(t, wrapped.Error(), "get order")

	notFound := errs.NewObjectNotFoundError("order", "1")
	assert.Same(t, notFound, shared.Wrap("get order", notFound))

	assert.Same(t, wrapped, shared.Wrap("again", wrapped))
}

func TestOptions_Read(t *testing.T) {
	opts := shared.NewOptions(shared.WithOpTimeout(time.Second))
	calls := 0
	err := opts.Read(t.Context(), func(ctx context.Context) error {
		calls++
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return errors.New("flaky")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls, "reads are not retried unless enabled")

	calls = 0
	opts = shared.NewOptions(shared.WithReadRetry(2))
	opts.InitialWait = time.Millisecond
	err = opts.Read(t.Context(), func(context.Context) error {
		calls++
		return errors.New("flaky")
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}
