package commands

import (
	"errors"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/restaurant"
	"localeats/internal/pkg/errs"
	"localeats/internal/pkg/guard"
)

var ErrRegisterRestaurantCommandIsNotConstructed = errors.New(
	"RegisterRestaurantCommand must be created via NewRegisterRestaurantCommand constructor",
)

type RegisterRestaurantCommand struct {
	restaurantID kernel.UUID
	ownerID      kernel.UUID
	profile      restaurant.Profile

	guard guard.ConstructorGuard
}

func NewRegisterRestaurantCommand(
	restaurantID, ownerID kernel.UUID,
	profile restaurant.Profile,
) (RegisterRestaurantCommand, error) {
	var errList []error
	if err := restaurantID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("restaurantId", err))
	}
	if err := ownerID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("ownerId", err))
	}
	if err := errors.Join(errList...); err != nil {
		return RegisterRestaurantCommand{}, err
	}

	return RegisterRestaurantCommand{
		restaurantID: restaurantID,
		ownerID:      ownerID,
		profile:      profile,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterRestaurantCommand) Validate() error {
	return c.guard.Validate(ErrRegisterRestaurantCommandIsNotConstructed)
}

func (c RegisterRestaurantCommand) RestaurantID() kernel.UUID   { return c.restaurantID }
func (c RegisterRestaurantCommand) OwnerID() kernel.UUID        { return c.ownerID }
func (c RegisterRestaurantCommand) Profile() restaurant.Profile { return c.profile }
