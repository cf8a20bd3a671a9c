package commands

import (
	"errors"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/restaurant"
	"localeats/internal/pkg/errs"
	"localeats/internal/pkg/guard"
)

var ErrUpdateRestaurantCommandIsNotConstructed = errors.New(
	"UpdateRestaurantCommand must be created via NewUpdateRestaurantCommand constructor",
)

// RestaurantMutation is one owner edit of a restaurant.
type RestaurantMutation interface {
	Apply(r *restaurant.Restaurant) error
}

type AddMenuItem struct{ Item restaurant.MenuItem }

func (m AddMenuItem) Apply(r *restaurant.Restaurant) error { return r.AddMenuItem(m.Item) }

type SetMenuItemAvailability struct {
	ItemID    kernel.UUID
	Available bool
}

func (m SetMenuItemAvailability) Apply(r *restaurant.Restaurant) error {
	return r.SetMenuItemAvailability(m.ItemID, m.Available)
}

type RemoveMenuItem struct{ ItemID kernel.UUID }

func (m RemoveMenuItem) Apply(r *restaurant.Restaurant) error { return r.RemoveMenuItem(m.ItemID) }

type ReplaceMenu struct{ Items []restaurant.MenuItem }

func (m ReplaceMenu) Apply(r *restaurant.Restaurant) error { return r.ReplaceMenu(m.Items) }

type SetRestaurantOpen struct{ Open bool }

func (m SetRestaurantOpen) Apply(r *restaurant.Restaurant) error {
	r.SetOpen(m.Open)
	return nil
}

type UpdateRestaurantProfile struct{ Profile restaurant.Profile }

func (m UpdateRestaurantProfile) Apply(r *restaurant.Restaurant) error {
	return r.UpdateProfile(m.Profile)
}

// UpdateRestaurantCommand applies a mutation to the restaurant managed by
// ownerID.
type UpdateRestaurantCommand struct {
	ownerID  kernel.UUID
	mutation RestaurantMutation

	guard guard.ConstructorGuard
}

func NewUpdateRestaurantCommand(ownerID kernel.UUID, mutation RestaurantMutation) (UpdateRestaurantCommand, error) {
	var errList []error
	if err := ownerID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("ownerId", err))
	}
	if mutation == nil {
		errList = append(errList, errs.NewValueIsRequiredError("mutation"))
	}
	if err := errors.Join(errList...); err != nil {
		return UpdateRestaurantCommand{}, err
	}

	return UpdateRestaurantCommand{
		ownerID:  ownerID,
		mutation: mutation,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateRestaurantCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRestaurantCommandIsNotConstructed)
}

func (c UpdateRestaurantCommand) OwnerID() kernel.UUID         { return c.ownerID }
func (c UpdateRestaurantCommand) Mutation() RestaurantMutation { return c.mutation }
