package queries

import (
	"context"
	"errors"

	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/domain/model/restaurant"
	"localeats/internal/core/domain/model/user"
	"localeats/internal/core/domain/services"
	"localeats/internal/core/ports"
	"localeats/internal/pkg/errs"
)

// OrderDetails is an order with its audit trail and the moves the viewer
// may make next.
type OrderDetails struct {
	OrderView
	History []StatusChangeView `json:"history"`
	Allowed []order.Status     `json:"allowedTransitions"`
}

type GetOrderQueryHandler struct {
	orders      ports.OrderReader
	restaurants ports.RestaurantReader
	lifecycle   services.OrderLifecycle
}

func NewGetOrderQueryHandler(orders ports.OrderReader, restaurants ports.RestaurantReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		orders:      orders,
		restaurants: restaurants,
		lifecycle:   services.NewOrderLifecycle(),
	}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return OrderDetails{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return OrderDetails{}, err
	}

	viewer := query.Viewer()
	var owned *restaurant.Restaurant
	if viewer.Role == user.RestaurantOwner {
		owned, err = h.restaurants.GetByOwner(ctx, viewer.ID)
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return OrderDetails{}, err
		}
	}

	if !canView(o, viewer, owned) {
		return OrderDetails{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	history, err := h.orders.StatusHistory(ctx, o.ID())
	if err != nil {
		return OrderDetails{}, err
	}

	details := OrderDetails{
		OrderView: NewOrderView(o),
		History:   make([]StatusChangeView, 0, len(history)),
		Allowed:   h.lifecycle.Allowed(o, viewer, owned),
	}
	for _, change := range history {
		details.History = append(details.History, StatusChangeView{
			From:      change.From,
			To:        change.To,
			ActorID:   change.ActorID,
			ActorRole: change.ActorRole,
			At:        change.At,
		})
	}
	if details.Allowed == nil {
		details.Allowed = []order.Status{}
	}
	return details, nil
}

func canView(o *order.Order, viewer services.Actor, owned *restaurant.Restaurant) bool {
	switch viewer.Role {
	case user.Customer:
		return o.BelongsTo(viewer.ID)
	case user.Driver:
		return o.IsAssignedTo(viewer.ID) || (o.Status() == order.Ready && o.Driver() == nil)
	case user.RestaurantOwner:
		return owned != nil && owned.ID().IsEqual(o.RestaurantID())
	default:
		return false
	}
}
