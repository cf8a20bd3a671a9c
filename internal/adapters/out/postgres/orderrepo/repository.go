package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"localeats/internal/adapters/out/postgres/shared"
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/ports"
	"localeats/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	opts    shared.Options
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository binds a repository to db, which is either a
// transaction or the pool. tracker may be nil for read-only use.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker, opts ...shared.Option) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
		opts:    shared.NewOptions(opts...),
	}
}

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	aggregate.Stamp(r.opts.Now())
	dto := fromDomain(aggregate)

	ctx, cancel := r.opts.Context(ctx)
	defer cancel()
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return shared.Wrap("add order", err)
	}

	r.track(aggregate)
	return nil
}

// CompareAndSwap issues a single guarded UPDATE. It is never retried.
func (r *GormOrderRepository) CompareAndSwap(
	ctx context.Context,
	aggregate *order.Order,
	expected order.Precondition,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expected.Status.Validate(); err != nil {
		return err
	}

	aggregate.Stamp(r.opts.Now())
	dto := fromDomain(aggregate)

	ctx, cancel := r.opts.Context(ctx)
	defer cancel()

	query := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected.Status))
	if expected.DriverUnset {
		query = query.Where("driver_id IS NULL")
	}

	var driverID any
	if dto.DriverID != nil {
		driverID = *dto.DriverID
	}
	result := query.Updates(map[string]any{
		"status":     dto.Status,
		"driver_id":  driverID,
		"updated_at": dto.UpdatedAt,
	})
	if result.Error != nil {
		return shared.Wrap("update order status", result.Error)
	}

	if result.RowsAffected == 0 {
		return r.explainMiss(ctx, aggregate.ID(), expected)
	}

	r.track(aggregate)
	return nil
}

func (r *GormOrderRepository) explainMiss(ctx context.Context, id kernel.UUID, expected order.Precondition) error {
	var stored OrderDTO
	err := r.db.WithContext(ctx).Select("status", "driver_id").First(&stored, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("order", id.String())
		}
		return shared.Wrap("update order status", err)
	}

	if expected.DriverUnset && stored.DriverID != nil {
		return errs.NewConflictError("order", id.String(), "already claimed by another driver")
	}
	return errs.NewConflictError("order", id.String(),
		fmt.Sprintf("status changed to %s", order.Status(stored.Status)))
}

func (r *GormOrderRepository) AddStatusChange(ctx context.Context, change order.StatusChange) error {
	if err := change.OrderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}

	dto := statusChangeFromDomain(change)

	ctx, cancel := r.opts.Context(ctx)
	defer cancel()
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return shared.Wrap("add status change", err)
	}
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.opts.Read(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, shared.Wrap("get order", err)
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) Find(
	ctx context.Context,
	filter ports.OrderFilter,
	sort ports.OrderSort,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.opts.Read(ctx, func(ctx context.Context) error {
		dtos = nil
		return applyFilter(r.db.WithContext(ctx), filter).
			Order(sortClause(sort)).
			Find(&dtos).Error
	})
	if err != nil {
		return nil, shared.Wrap("find orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) StatusHistory(ctx context.Context, orderID kernel.UUID) ([]order.StatusChange, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusChangeDTO
	err := r.opts.Read(ctx, func(ctx context.Context) error {
		dtos = nil
		return r.db.WithContext(ctx).
			Where("order_id = ?", orderID.Bytes()).
			Order("at ASC, id ASC").
			Find(&dtos).Error
	})
	if err != nil {
		return nil, shared.Wrap("get status history", err)
	}

	history := make([]order.StatusChange, 0, len(dtos))
	for _, dto := range dtos {
		change, mapErr := statusChangeToDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		history = append(history, change)
	}
	return history, nil
}

func (r *GormOrderRepository) track(aggregate *order.Order) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}

func applyFilter(db *gorm.DB, filter ports.OrderFilter) *gorm.DB {
	query := db.Model(&OrderDTO{})
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", filter.CustomerID.Bytes())
	}
	if filter.RestaurantID != nil {
		query = query.Where("restaurant_id = ?", filter.RestaurantID.Bytes())
	}
	if filter.DriverID != nil {
		query = query.Where("driver_id = ?", filter.DriverID.Bytes())
	}
	if filter.DriverUnset {
		query = query.Where("driver_id IS NULL")
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", statusValues(filter.Statuses))
	}
	if len(filter.ExcludedStatuses) > 0 {
		query = query.Where("status NOT IN ?", statusValues(filter.ExcludedStatuses))
	}
	if !filter.CreatedAfter.IsZero() {
		query = query.Where("created_at >= ?", filter.CreatedAfter.UTC())
	}
	if !filter.CreatedBefore.IsZero() {
		query = query.Where("created_at < ?", filter.CreatedBefore.UTC())
	}
	return query
}

func sortClause(sort ports.OrderSort) string {
	if sort == ports.NewestFirst {
		return "created_at DESC, id DESC"
	}
	return "created_at ASC, id ASC"
}

func statusValues(statuses []order.Status) []int {
	values := make([]int, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, int(s))
	}
	return values
}
