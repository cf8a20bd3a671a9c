package views

import (
	"context"

	"localeats/internal/core/application/usecases/commands"
	"localeats/internal/core/application/usecases/queries"
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/ports"
)

// base holds what every role view shares.
type base struct {
	session  Session
	handlers Handlers
	feed     ports.OrderFeed
}

func (b base) Session() Session { return b.session }

// Order returns one order if the session may see it.
func (b base) Order(ctx context.Context, orderID kernel.UUID) (queries.OrderDetails, error) {
	query, err := queries.NewGetOrderQuery(orderID, b.session.Actor)
	if err != nil {
		return queries.OrderDetails{}, err
	}
	return b.handlers.GetOrder.Handle(ctx, query)
}

func (b base) move(ctx context.Context, orderID kernel.UUID, target order.Status) error {
	command, err := commands.NewChangeOrderStatusCommand(orderID, b.session.Actor, target)
	if err != nil {
		return err
	}
	return b.handlers.ChangeOrderStatus.Handle(ctx, command)
}

func (b base) find(ctx context.Context, filter ports.OrderFilter, sort ports.OrderSort) ([]*order.Order, error) {
	return b.handlers.ListOrders.Handle(ctx, queries.NewListOrdersQuery(filter, sort))
}

// AccountView covers the signed-in user's own profile.
type AccountView struct {
	base
}

func (v *AccountView) Profile(ctx context.Context) (queries.UserView, error) {
	query, err := queries.NewGetUserQuery(v.session.UserID())
	if err != nil {
		return queries.UserView{}, err
	}
	return v.handlers.GetUser.Handle(ctx, query)
}
