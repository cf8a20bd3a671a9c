package views

import (
	"context"

	"localeats/internal/core/application/usecases/commands"
	"localeats/internal/core/application/usecases/queries"
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/ports"
	"localeats/internal/pkg/errs"
)

type CustomerView struct {
	base
}

// ListRestaurants returns restaurants whose name or description contains
// search, ignoring case. An empty search lists every restaurant.
func (v *CustomerView) ListRestaurants(ctx context.Context, search string) ([]queries.RestaurantView, error) {
	return v.handlers.ListRestaurants.Handle(ctx, queries.NewListRestaurantsQuery(search))
}

func (v *CustomerView) Restaurant(ctx context.Context, restaurantID kernel.UUID) (queries.RestaurantView, error) {
	query, err := queries.NewGetRestaurantQuery(restaurantID)
	if err != nil {
		return queries.RestaurantView{}, err
	}
	return v.handlers.GetRestaurant.Handle(ctx, query)
}

// Orders splits the customer's orders into active ones and history.
func (v *CustomerView) Orders(ctx context.Context) (queries.CustomerOrders, error) {
	orders, err := v.find(ctx, v.filter(), ports.NewestFirst)
	if err != nil {
		return queries.CustomerOrders{}, err
	}
	return queries.PartitionCustomerOrders(orders), nil
}

// PlaceOrder checks out cart. The cart is left untouched so the caller
// decides whether to clear it.
func (v *CustomerView) PlaceOrder(
	ctx context.Context,
	cart *Cart,
	paymentMethod order.PaymentMethod,
) (queries.OrderDetails, error) {
	if cart == nil || cart.IsEmpty() {
		return queries.OrderDetails{}, errs.NewValueIsRequiredError("items")
	}

	orderID := kernel.NewUUID()
	command, err := commands.NewPlaceOrderCommand(
		orderID,
		v.session.UserID(),
		cart.RestaurantID(),
		cart.orderLines(),
		paymentMethod,
	)
	if err != nil {
		return queries.OrderDetails{}, err
	}
	if err = v.handlers.PlaceOrder.Handle(ctx, command); err != nil {
		return queries.OrderDetails{}, err
	}
	return v.Order(ctx, orderID)
}

// Reorder places a new pending order with the items of a past order.
func (v *CustomerView) Reorder(ctx context.Context, sourceOrderID kernel.UUID) (queries.OrderDetails, error) {
	orderID := kernel.NewUUID()
	command, err := commands.NewReorderCommand(orderID, sourceOrderID, v.session.UserID())
	if err != nil {
		return queries.OrderDetails{}, err
	}
	if err = v.handlers.Reorder.Handle(ctx, command); err != nil {
		return queries.OrderDetails{}, err
	}
	return v.Order(ctx, orderID)
}

// CancelOrder asks to cancel one of the customer's orders. Only the
// restaurant may cancel, so the lifecycle rejects the move with an
// InvalidTransitionError; the request is still routed through it.
func (v *CustomerView) CancelOrder(ctx context.Context, orderID kernel.UUID) error {
	return v.move(ctx, orderID, order.Cancelled)
}

// WatchOrders calls callback with the partitioned orders now and after
// every change to one of them.
func (v *CustomerView) WatchOrders(
	ctx context.Context,
	callback func(queries.CustomerOrders),
) (ports.Subscription, error) {
	return v.feed.Subscribe(ctx, v.filter(), ports.NewestFirst, func(orders []*order.Order) {
		callback(queries.PartitionCustomerOrders(orders))
	})
}

func (v *CustomerView) filter() ports.OrderFilter {
	customerID := v.session.UserID()
	return ports.OrderFilter{CustomerID: &customerID}
}
