package ports

import (
	"context"
	"time"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"
)

// OrderChange announces that an order was created or changed status. It
// carries enough of the order to evaluate an OrderFilter without a read.
type OrderChange struct {
	OrderID      kernel.UUID
	CustomerID   kernel.UUID
	RestaurantID kernel.UUID
	DriverID     *kernel.UUID
	Status       order.Status
	CreatedAt    time.Time
}

func OrderChangeFrom(o *order.Order) OrderChange {
	return OrderChange{
		OrderID:      o.ID(),
		CustomerID:   o.Customer().ID,
		RestaurantID: o.RestaurantID(),
		DriverID:     o.Driver(),
		Status:       o.Status(),
		CreatedAt:    o.CreatedAt(),
	}
}

type OrderChangePublisher interface {
	Publish(ctx context.Context, change OrderChange) error
}

// OrderChangeBus fans order changes out to every process of the service.
type OrderChangeBus interface {
	OrderChangePublisher
	// Listen calls handler for every change until ctx is done.
	Listen(ctx context.Context, handler func(OrderChange)) error
	Close() error
}

// Subscription stops callbacks once closed: when Close returns, any
// callback in progress has finished and no further one starts. Close is
// idempotent and must not be called from inside the callback.
type Subscription interface {
	Close()
}

// OrderFeed delivers full query snapshots. The callback receives the
// initial result before Subscribe returns and a fresh result after every
// change that can affect it, one call at a time.
type OrderFeed interface {
	Subscribe(
		ctx context.Context,
		filter OrderFilter,
		sort OrderSort,
		callback func([]*order.Order),
	) (Subscription, error)
}

// OrderFeedRefresher re-runs the queries of matching subscriptions.
type OrderFeedRefresher interface {
	Refresh(ctx context.Context, match func(OrderFilter) bool)
}
