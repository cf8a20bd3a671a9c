package views

import (
	"context"
	"sync"
	"time"

	"localeats/internal/core/application/usecases/commands"
	"localeats/internal/core/application/usecases/queries"
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/domain/model/restaurant"
	"localeats/internal/core/ports"
)

type RestaurantView struct {
	base

	mu           sync.Mutex
	restaurantID *kernel.UUID
}

// Register creates the owner's restaurant and links it to the owner.
func (v *RestaurantView) Register(ctx context.Context, profile restaurant.Profile) (queries.RestaurantView, error) {
	restaurantID := kernel.NewUUID()
	command, err := commands.NewRegisterRestaurantCommand(restaurantID, v.session.UserID(), profile)
	if err != nil {
		return queries.RestaurantView{}, err
	}
	if err = v.handlers.RegisterRestaurant.Handle(ctx, command); err != nil {
		return queries.RestaurantView{}, err
	}
	return v.Restaurant(ctx)
}

// Restaurant returns the owner's restaurant with its menu.
func (v *RestaurantView) Restaurant(ctx context.Context) (queries.RestaurantView, error) {
	query, err := queries.NewGetOwnedRestaurantQuery(v.session.UserID())
	if err != nil {
		return queries.RestaurantView{}, err
	}
	return v.handlers.GetRestaurant.Handle(ctx, query)
}

// Orders returns the kitchen board, newest first within each column.
func (v *RestaurantView) Orders(ctx context.Context) (queries.RestaurantOrders, error) {
	filter, err := v.boardFilter(ctx)
	if err != nil {
		return queries.RestaurantOrders{}, err
	}
	orders, err := v.find(ctx, filter, ports.NewestFirst)
	if err != nil {
		return queries.RestaurantOrders{}, err
	}
	return queries.PartitionRestaurantOrders(orders), nil
}

func (v *RestaurantView) Accept(ctx context.Context, orderID kernel.UUID) error {
	return v.move(ctx, orderID, order.Confirmed)
}

func (v *RestaurantView) Reject(ctx context.Context, orderID kernel.UUID) error {
	return v.move(ctx, orderID, order.Cancelled)
}

func (v *RestaurantView) StartPreparing(ctx context.Context, orderID kernel.UUID) error {
	return v.move(ctx, orderID, order.Preparing)
}

// MarkReady puts the order in the driver pool.
func (v *RestaurantView) MarkReady(ctx context.Context, orderID kernel.UUID) error {
	return v.move(ctx, orderID, order.Ready)
}

func (v *RestaurantView) AddMenuItem(ctx context.Context, item restaurant.MenuItem) error {
	return v.update(ctx, commands.AddMenuItem{Item: item})
}

func (v *RestaurantView) SetMenuItemAvailability(ctx context.Context, itemID kernel.UUID, available bool) error {
	return v.update(ctx, commands.SetMenuItemAvailability{ItemID: itemID, Available: available})
}

func (v *RestaurantView) RemoveMenuItem(ctx context.Context, itemID kernel.UUID) error {
	return v.update(ctx, commands.RemoveMenuItem{ItemID: itemID})
}

func (v *RestaurantView) ReplaceMenu(ctx context.Context, items []restaurant.MenuItem) error {
	return v.update(ctx, commands.ReplaceMenu{Items: items})
}

func (v *RestaurantView) SetOpen(ctx context.Context, open bool) error {
	return v.update(ctx, commands.SetRestaurantOpen{Open: open})
}

func (v *RestaurantView) UpdateProfile(ctx context.Context, profile restaurant.Profile) error {
	return v.update(ctx, commands.UpdateRestaurantProfile{Profile: profile})
}

// Stats summarises the workload now and the orders created on day's
// calendar date in day's location.
func (v *RestaurantView) Stats(ctx context.Context, day time.Time) (queries.RestaurantStats, error) {
	restaurantID, err := v.ownedRestaurantID(ctx)
	if err != nil {
		return queries.RestaurantStats{}, err
	}
	query, err := queries.NewGetRestaurantStatsQuery(restaurantID, day)
	if err != nil {
		return queries.RestaurantStats{}, err
	}
	return v.handlers.RestaurantStats.Handle(ctx, query)
}

func (v *RestaurantView) WatchOrders(
	ctx context.Context,
	callback func(queries.RestaurantOrders),
) (ports.Subscription, error) {
	filter, err := v.boardFilter(ctx)
	if err != nil {
		return nil, err
	}
	return v.feed.Subscribe(ctx, filter, ports.NewestFirst, func(orders []*order.Order) {
		callback(queries.PartitionRestaurantOrders(orders))
	})
}

func (v *RestaurantView) update(ctx context.Context, mutation commands.RestaurantMutation) error {
	command, err := commands.NewUpdateRestaurantCommand(v.session.UserID(), mutation)
	if err != nil {
		return err
	}
	return v.handlers.UpdateRestaurant.Handle(ctx, command)
}

func (v *RestaurantView) boardFilter(ctx context.Context) (ports.OrderFilter, error) {
	restaurantID, err := v.ownedRestaurantID(ctx)
	if err != nil {
		return ports.OrderFilter{}, err
	}
	return ports.OrderFilter{RestaurantID: &restaurantID, Statuses: queries.RestaurantBoardStatuses()}, nil
}

// ownedRestaurantID looks the restaurant up once per view. An owner who
// has not registered a restaurant gets an ObjectNotFoundError.
func (v *RestaurantView) ownedRestaurantID(ctx context.Context) (kernel.UUID, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.restaurantID != nil {
		return *v.restaurantID, nil
	}
	r, err := v.Restaurant(ctx)
	if err != nil {
		return kernel.UUID{}, err
	}
	v.restaurantID = &r.ID
	return r.ID, nil
}
