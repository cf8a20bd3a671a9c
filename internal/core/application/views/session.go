// Package views groups the LocalEats operations by role. A view is opened
// for one authenticated session and exposes only what that role may see
// and do: customers browse, order and follow their orders; drivers work
// the pool of ready orders; restaurant owners run their kitchen board and
// menu. Views are cheap and hold no state beyond the session.
package views

import (
	"localeats/internal/core/application/usecases/commands"
	"localeats/internal/core/application/usecases/queries"
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/user"
	"localeats/internal/core/domain/services"
	"localeats/internal/core/ports"
	"localeats/internal/pkg/errs"
)

// Session is the authenticated caller.
type Session struct {
	Actor services.Actor
}

func NewSession(userID kernel.UUID, role user.Role) (Session, error) {
	actor, err := services.NewActor(userID, role)
	if err != nil {
		return Session{}, err
	}
	return Session{Actor: actor}, nil
}

func (s Session) UserID() kernel.UUID { return s.Actor.ID }
func (s Session) Role() user.Role     { return s.Actor.Role }

// Handlers are the use cases the views are built from.
type Handlers struct {
	PlaceOrder         commands.PlaceOrderCommandHandler
	Reorder            commands.ReorderCommandHandler
	ChangeOrderStatus  commands.ChangeOrderStatusCommandHandler
	SetAvailability    commands.SetDriverAvailabilityCommandHandler
	RegisterRestaurant commands.RegisterRestaurantCommandHandler
	UpdateRestaurant   commands.UpdateRestaurantCommandHandler

	ListRestaurants queries.ListRestaurantsQueryHandler
	GetRestaurant   queries.GetRestaurantQueryHandler
	GetOrder        queries.GetOrderQueryHandler
	ListOrders      queries.ListOrdersQueryHandler
	RestaurantStats queries.GetRestaurantStatsQueryHandler
	GetUser         queries.GetUserQueryHandler
}

// Factory opens role views for sessions.
type Factory struct {
	handlers Handlers
	feed     ports.OrderFeed
}

func NewFactory(handlers Handlers, feed ports.OrderFeed) *Factory {
	return &Factory{handlers: handlers, feed: feed}
}

func (f *Factory) Customer(s Session) (*CustomerView, error) {
	if err := f.check(s, user.Customer, "open customer view"); err != nil {
		return nil, err
	}
	return &CustomerView{base: base{session: s, handlers: f.handlers, feed: f.feed}}, nil
}

func (f *Factory) Driver(s Session) (*DriverView, error) {
	if err := f.check(s, user.Driver, "open driver view"); err != nil {
		return nil, err
	}
	return &DriverView{base: base{session: s, handlers: f.handlers, feed: f.feed}}, nil
}

func (f *Factory) Restaurant(s Session) (*RestaurantView, error) {
	if err := f.check(s, user.RestaurantOwner, "open restaurant view"); err != nil {
		return nil, err
	}
	return &RestaurantView{base: base{session: s, handlers: f.handlers, feed: f.feed}}, nil
}

// Account is available to every role.
func (f *Factory) Account(s Session) (*AccountView, error) {
	if err := s.Actor.Validate(); err != nil {
		return nil, errs.NewUnauthorizedError("session has no valid actor")
	}
	return &AccountView{base: base{session: s, handlers: f.handlers, feed: f.feed}}, nil
}

func (f *Factory) check(s Session, role user.Role, action string) error {
	if err := s.Actor.Validate(); err != nil {
		return errs.NewUnauthorizedError("session has no valid actor")
	}
	if s.Actor.Role != role {
		return errs.NewForbiddenError(action, s.Actor.Role.String())
	}
	return nil
}
