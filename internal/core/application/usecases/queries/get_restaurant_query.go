package queries

import (
	"errors"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/pkg/errs"
	"localeats/internal/pkg/guard"
)

var ErrGetRestaurantQueryIsNotConstructed = errors.New(
	"GetRestaurantQuery must be created via NewGetRestaurantQuery or NewGetOwnedRestaurantQuery constructor",
)

// GetRestaurantQuery loads one restaurant with its full menu, either by id
// or by the owner's user id.
type GetRestaurantQuery struct {
	restaurantID kernel.UUID
	ownerID      kernel.UUID
	byOwner      bool

	guard guard.ConstructorGuard
}

func NewGetRestaurantQuery(restaurantID kernel.UUID) (GetRestaurantQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetRestaurantQuery{}, errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	return GetRestaurantQuery{restaurantID: restaurantID, guard: guard.NewConstructorGuard()}, nil
}

func NewGetOwnedRestaurantQuery(ownerID kernel.UUID) (GetRestaurantQuery, error) {
	if err := ownerID.Validate(); err != nil {
		return GetRestaurantQuery{}, errs.NewValueIsRequiredErrorWithCause("ownerId", err)
	}
	return GetRestaurantQuery{ownerID: ownerID, byOwner: true, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRestaurantQuery) Validate() error {
	return q.guard.Validate(ErrGetRestaurantQueryIsNotConstructed)
}
