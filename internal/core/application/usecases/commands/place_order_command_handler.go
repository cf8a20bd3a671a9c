package commands

import (
	"context"
	"errors"

	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/domain/model/restaurant"
	"localeats/internal/core/domain/model/user"
	"localeats/internal/pkg/errs"
)

var (
	ErrRestaurantIsClosed  = errors.New("restaurant is not accepting orders")
	ErrMenuItemUnavailable = errors.New("menu item is not available")
)

type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewPlaceOrderCommandHandler(uowFactory UoWFactory) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{uowFactory: uowFactory}
}

// Handle snapshots the customer's contact details and the live menu prices
// into a new pending order.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, command PlaceOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customer, err := uow.UserRepository().Get(ctx, command.CustomerID())
	if err != nil {
		return err
	}
	if customer.Role() != user.Customer {
		return errs.NewForbiddenError("place orders", customer.Role().String())
	}

	r, err := uow.RestaurantRepository().Get(ctx, command.RestaurantID())
	if err != nil {
		return err
	}
	if !r.IsOpen() {
		return errs.NewValueIsInvalidErrorWithCause("restaurantId", ErrRestaurantIsClosed)
	}

	items, err := priceLines(r, command.Lines())
	if err != nil {
		return err
	}

	o, err := order.NewOrder(command.OrderID(), snapshotCustomer(customer), r.ID(), r.Name(), items, command.PaymentMethod())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func priceLines(r *restaurant.Restaurant, lines []OrderLine) ([]order.Item, error) {
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		menuItem, ok := r.MenuItem(line.MenuItemID)
		if !ok {
			return nil, errs.NewObjectNotFoundError("menuItem", line.MenuItemID.String())
		}
		if !menuItem.IsAvailable() {
			return nil, errs.NewValueIsInvalidErrorWithCause(menuItem.Name(), ErrMenuItemUnavailable)
		}
		item, err := order.NewItem(menuItem.ID(), menuItem.Name(), menuItem.Price(), line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func snapshotCustomer(u *user.User) order.Customer {
	return order.Customer{
		ID:      u.ID(),
		Name:    u.Name(),
		Phone:   u.Phone(),
		Address: u.Address(),
	}
}
