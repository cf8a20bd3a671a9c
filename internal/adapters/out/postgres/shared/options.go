// Package shared holds what the GORM repositories have in common: the
// per-operation timeout, retries of idempotent reads and the mapping of
// driver failures to domain errors.
package shared

import (
	"context"
	"time"
)

const DefaultOpTimeout = 5 * time.Second

// Options tune a repository. Repositories bound to a transaction never
// retry: a failed statement aborts the whole transaction.
type Options struct {
	OpTimeout   time.Duration
	RetryReads  bool
	MaxRetries  uint64
	InitialWait time.Duration
	Now         func() time.Time
}

type Option func(*Options)

func WithOpTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.OpTimeout = d
		}
	}
}

// WithReadRetry enables bounded exponential backoff on reads.
func WithReadRetry(maxRetries uint64) Option {
	return func(o *Options) {
		o.RetryReads = true
		o.MaxRetries = maxRetries
	}
}

// WithClock replaces time.Now for stamping writes.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Now = now
		}
	}
}

func NewOptions(opts ...Option) Options {
	o := Options{
		OpTimeout:   DefaultOpTimeout,
		MaxRetries:  3,
		InitialWait: 50 * time.Millisecond,
		Now:         time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Context bounds one store operation.
func (o Options) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.OpTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.OpTimeout)
}

// Read runs an idempotent read under the operation timeout, retrying
// transient failures when read retries are enabled.
func (o Options) Read(ctx context.Context, read func(ctx context.Context) error) error {
	if !o.RetryReads {
		opCtx, cancel := o.Context(ctx)
		defer cancel()
		return read(opCtx)
	}

	return Retry(ctx, o.MaxRetries, o.InitialWait, func() error {
		opCtx, cancel := o.Context(ctx)
		defer cancel()
		return read(opCtx)
	})
}
