package commands

import (
	"context"

	"localeats/internal/core/domain/model/order"
	"localeats/internal/pkg/errs"
)

type ReorderCommandHandler struct {
	uowFactory UoWFactory
}

func NewReorderCommandHandler(uowFactory UoWFactory) ReorderCommandHandler {
	return ReorderCommandHandler{uowFactory: uowFactory}
}

// Handle copies the historical items and total of the source order and the
// customer's current contact details. An order owned by someone else is
// reported as not found.
func (h ReorderCommandHandler) Handle(ctx context.Context, command ReorderCommand) error {
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

	orders := uow.OrderRepository()
	source, err := orders.Get(ctx, command.SourceOrderID())
	if err != nil {
		return err
	}
	if !source.BelongsTo(command.CustomerID()) {
		return errs.NewObjectNotFoundError("order", command.SourceOrderID().String())
	}

	customer, err := uow.UserRepository().Get(ctx, command.CustomerID())
	if err != nil {
		return err
	}

	r, err := uow.RestaurantRepository().Get(ctx, source.RestaurantID())
	if err != nil {
		return err
	}
	if !r.IsOpen() {
		return errs.NewValueIsInvalidErrorWithCause("restaurantId", ErrRestaurantIsClosed)
	}

	o, err := order.NewOrder(
		command.OrderID(),
		snapshotCustomer(customer),
		source.RestaurantID(),
		source.RestaurantName(),
		source.Items(),
		source.PaymentMethod(),
	)
	if err != nil {
		return err
	}

	if err = orders.Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
