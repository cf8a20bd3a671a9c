package views

import (
	"context"

	"localeats/internal/core/application/usecases/commands"
	"localeats/internal/core/application/usecases/queries"
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/ports"
)

// PoolFilter selects the orders waiting for a driver.
func PoolFilter() ports.OrderFilter {
	return ports.OrderFilter{Statuses: []order.Status{order.Ready}, DriverUnset: true}
}

// IsPoolFilter reports whether f is the filter of a pool subscription.
func IsPoolFilter(f ports.OrderFilter) bool {
	return f.DriverUnset && len(f.Statuses) == 1 && f.Statuses[0] == order.Ready
}

type DriverView struct {
	base
}

// SetOnline toggles the driver's availability flag. Claims are not gated
// on it.
func (v *DriverView) SetOnline(ctx context.Context, online bool) error {
	command, err := commands.NewSetDriverAvailabilityCommand(v.session.UserID(), online)
	if err != nil {
		return err
	}
	return v.handlers.SetAvailability.Handle(ctx, command)
}

// AvailablePool lists unclaimed ready orders, oldest first.
func (v *DriverView) AvailablePool(ctx context.Context) ([]queries.PoolEntry, error) {
	orders, err := v.find(ctx, PoolFilter(), ports.OldestFirst)
	if err != nil {
		return nil, err
	}
	return queries.NewPoolEntries(orders), nil
}

// ActiveDeliveries lists the orders this driver has picked up and not yet
// delivered.
func (v *DriverView) ActiveDeliveries(ctx context.Context) ([]queries.OrderView, error) {
	orders, err := v.find(ctx, v.deliveriesFilter(), ports.OldestFirst)
	if err != nil {
		return nil, err
	}
	return queries.NewOrderViews(orders), nil
}

// Claim takes a ready order from the pool. Losing the race to another
// driver returns a ConflictError.
func (v *DriverView) Claim(ctx context.Context, orderID kernel.UUID) error {
	return v.move(ctx, orderID, order.PickedUp)
}

func (v *DriverView) StartDelivery(ctx context.Context, orderID kernel.UUID) error {
	return v.move(ctx, orderID, order.OutForDelivery)
}

func (v *DriverView) CompleteDelivery(ctx context.Context, orderID kernel.UUID) error {
	return v.move(ctx, orderID, order.Delivered)
}

func (v *DriverView) WatchPool(ctx context.Context, callback func([]queries.PoolEntry)) (ports.Subscription, error) {
	return v.feed.Subscribe(ctx, PoolFilter(), ports.OldestFirst, func(orders []*order.Order) {
		callback(queries.NewPoolEntries(orders))
	})
}

func (v *DriverView) WatchDeliveries(ctx context.Context, callback func([]queries.OrderView)) (ports.Subscription, error) {
	return v.feed.Subscribe(ctx, v.deliveriesFilter(), ports.OldestFirst, func(orders []*order.Order) {
		callback(queries.NewOrderViews(orders))
	})
}

func (v *DriverView) deliveriesFilter() ports.OrderFilter {
	driverID := v.session.UserID()
	return ports.OrderFilter{DriverID: &driverID, Statuses: queries.DriverDeliveryStatuses()}
}
