package commands

import (
	"context"
)

type UpdateRestaurantCommandHandler struct {
	uowFactory RestaurantUoWFactory
}

func NewUpdateRestaurantCommandHandler(uowFactory RestaurantUoWFactory) UpdateRestaurantCommandHandler {
	return UpdateRestaurantCommandHandler{uowFactory: uowFactory}
}

// Handle loads the owner's restaurant, applies the mutation and stores the
// whole aggregate back. A failed mutation leaves the stored restaurant as it
// was.
func (h UpdateRestaurantCommandHandler) Handle(ctx context.Context, command UpdateRestaurantCommand) error {
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

	restaurants := uow.RestaurantRepository()
	r, err := restaurants.GetByOwner(ctx, command.OwnerID())
	if err != nil {
		return err
	}

	if err = command.Mutation().Apply(r); err != nil {
		return err
	}

	if err = restaurants.Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
