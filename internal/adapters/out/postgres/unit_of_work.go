// Package postgres implements the LocalEats store on GORM. The same code
// runs on PostgreSQL in production and on SQLite for local runs; see
// Open for the supported drivers.
package postgres

import (
	"context"
	"errors"
	"log/slog"

	"localeats/internal/adapters/out/postgres/orderrepo"
	"localeats/internal/adapters/out/postgres/restaurantrepo"
	"localeats/internal/adapters/out/postgres/shared"
	"localeats/internal/adapters/out/postgres/userrepo"
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/ports"
	"localeats/internal/pkg/errs"

	"gorm.io/gorm"
)

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// CredentialStore is an identity provider that can run on a given
// connection, typically the unit of work's transaction.
type CredentialStore interface {
	Bind(db *gorm.DB) ports.IdentityProvider
}

// GormUnitOfWorkFactory creates units of work and the non-transactional
// readers used by queries and the change feed.
type GormUnitOfWorkFactory struct {
	db          *gorm.DB
	publisher   ports.OrderChangePublisher
	credentials CredentialStore
	logger      *slog.Logger
	opts        []shared.Option
}

// NewGormUnitOfWorkFactory wires the store. publisher receives a change for
// every order written by a committed unit of work; it may be nil.
func NewGormUnitOfWorkFactory(
	db *gorm.DB,
	publisher ports.OrderChangePublisher,
	logger *slog.Logger,
	opts ...shared.Option,
) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With("component", "unit_of_work"),
		opts:      opts,
	}
}

// WithCredentials lets units of work register credentials in their
// transaction. Without it IdentityProvider refuses every call.
func (f *GormUnitOfWorkFactory) WithCredentials(store CredentialStore) *GormUnitOfWorkFactory {
	f.credentials = store
	return f
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		credentials:       f.credentials,
		logger:            f.logger,
		opts:              f.opts,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

func (f *GormUnitOfWorkFactory) OrderReader() ports.OrderReader {
	return orderrepo.NewGormOrderRepository(f.db, nil, f.readerOptions()...)
}

func (f *GormUnitOfWorkFactory) RestaurantReader() ports.RestaurantReader {
	return restaurantrepo.NewGormRestaurantRepository(f.db, f.readerOptions()...)
}

func (f *GormUnitOfWorkFactory) UserReader() ports.UserReader {
	return userrepo.NewGormUserRepository(f.db, f.readerOptions()...)
}

func (f *GormUnitOfWorkFactory) readerOptions() []shared.Option {
	opts := make([]shared.Option, 0, len(f.opts)+1)
	opts = append(opts, shared.WithReadRetry(3))
	return append(opts, f.opts...)
}

// GormUnitOfWork is one transaction. Orders written through it are
// announced on the change feed after Commit succeeds.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.OrderChangePublisher
	credentials       CredentialStore
	logger            *slog.Logger
	opts              []shared.Option
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction, retrying transient connection failures.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	options := shared.NewOptions(uow.opts...)
	err := shared.Retry(ctx, options.MaxRetries, options.InitialWait, func() error {
		tx := uow.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return tx.Error
		}
		uow.tx = tx
		return nil
	})
	if err != nil {
		return errs.NewPersistenceError("begin transaction", err)
	}

	return nil
}

func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return errs.NewPersistenceError("commit", err)
	}

	uow.publishTracked(context.WithoutCancel(ctx))
	return nil
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow, uow.opts...)
}

func (uow *GormUnitOfWork) RestaurantRepository() ports.RestaurantRepository {
	return restaurantrepo.NewGormRestaurantRepository(uow.conn(), uow.opts...)
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn(), uow.opts...)
}

// IdentityProvider registers and checks credentials on the unit of work's
// connection, inside the transaction once Begin has run.
func (uow *GormUnitOfWork) IdentityProvider() ports.IdentityProvider {
	if uow.credentials == nil {
		return noCredentialStore{}
	}
	return uow.credentials.Bind(uow.conn())
}

// TrackAggregate remembers a written aggregate. A later write of the same
// aggregate replaces the earlier one.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	for i, tracked := range uow.trackedAggregates {
		if tracked.ID.IsEqual(id) {
			uow.trackedAggregates[i].Aggregate = aggregate
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// publishTracked never fails the commit: subscribers that miss a change
// catch up on the next refresh of the driver pool.
func (uow *GormUnitOfWork) publishTracked(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)
	if uow.publisher == nil {
		return
	}

	for _, t := range tracked {
		o, ok := t.Aggregate.(*order.Order)
		if !ok {
			continue
		}
		if err := uow.publisher.Publish(ctx, ports.OrderChangeFrom(o)); err != nil {
			uow.logger.WarnContext(ctx, "failed to publish order change",
				"order_id", o.ID().String(),
				"status", o.Status().String(),
				"error", err,
			)
		}
	}
}

type noCredentialStore struct{}

var errNoCredentialStore = errors.New("unit of work has no credential store")

func (noCredentialStore) Register(context.Context, string, string) (kernel.UUID, error) {
	return kernel.UUID{}, errNoCredentialStore
}

func (noCredentialStore) Authenticate(context.Context, string, string) (kernel.UUID, error) {
	return kernel.UUID{}, errNoCredentialStore
}
