package commands

import (
	"context"
	"errors"

	"localeats/internal/core/domain/model/restaurant"
	"localeats/internal/core/domain/model/user"
	"localeats/internal/pkg/errs"
)

var ErrOwnerAlreadyHasRestaurant = errors.New("owner already manages a restaurant")

type RegisterRestaurantCommandHandler struct {
	uowFactory RestaurantUoWFactory
}

func NewRegisterRestaurantCommandHandler(uowFactory RestaurantUoWFactory) RegisterRestaurantCommandHandler {
	return RegisterRestaurantCommandHandler{uowFactory: uowFactory}
}

// Handle creates the restaurant and links it to its owner in one
// transaction.
func (h RegisterRestaurantCommandHandler) Handle(ctx context.Context, command RegisterRestaurantCommand) error {
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

	users := uow.UserRepository()
	owner, err := users.Get(ctx, command.OwnerID())
	if err != nil {
		return err
	}
	if owner.Role() != user.RestaurantOwner {
		return errs.NewForbiddenError("register a restaurant", owner.Role().String())
	}
	if owner.RestaurantID() != nil {
		return errs.NewValueIsInvalidErrorWithCause("ownerId", ErrOwnerAlreadyHasRestaurant)
	}

	r, err := restaurant.NewRestaurant(command.RestaurantID(), owner.ID(), command.Profile())
	if err != nil {
		return err
	}
	if err = uow.RestaurantRepository().Add(ctx, r); err != nil {
		return err
	}

	if err = owner.LinkRestaurant(r.ID()); err != nil {
		return err
	}
	if err = users.Update(ctx, owner); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
