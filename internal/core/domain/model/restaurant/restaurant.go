package restaurant

import (
	"errors"
	"fmt"
	"strings"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/pkg/errs"
	"localeats/internal/pkg/guard"
)

var ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant or RestoreRestaurant")

const (
	minRating = 0.0
	maxRating = 5.0
)

// Profile is the descriptive part of a restaurant that its owner edits.
type Profile struct {
	Name         string
	Description  string
	Address      string
	Phone        string
	DeliveryTime string
	DeliveryFee  kernel.Money
}

// Restaurant is the aggregate root for a restaurant and its menu.
type Restaurant struct {
	id      kernel.UUID
	ownerID kernel.UUID
	profile Profile
	rating  float64
	isOpen  bool
	menu    []MenuItem
	guard   guard.ConstructorGuard
}

// NewRestaurant registers a restaurant. New restaurants are open, unrated
// and have an empty menu.
func NewRestaurant(id, ownerID kernel.UUID, profile Profile) (*Restaurant, error) {
	r := &Restaurant{
		isOpen: true,
		menu:   []MenuItem{},
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setOwner(ownerID),
		r.UpdateProfile(profile),
	); err != nil {
		return nil, err
	}
	return r, nil
}

func RestoreRestaurant(
	id, ownerID kernel.UUID,
	profile Profile,
	rating float64,
	isOpen bool,
	menu []MenuItem,
) (*Restaurant, error) {
	r, err := NewRestaurant(id, ownerID, profile)
	if err != nil {
		return nil, err
	}
	if rating < minRating || rating > maxRating {
		return nil, errs.NewValueIsOutOfRangeError("rating", rating, minRating, maxRating)
	}
	r.rating = rating
	r.isOpen = isOpen
	if err = r.ReplaceMenu(menu); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Restaurant) Validate() error {
	if r == nil {
		return ErrRestaurantIsNotConstructed
	}
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

func (r *Restaurant) ID() kernel.UUID      { return r.id }
func (r *Restaurant) OwnerID() kernel.UUID { return r.ownerID }
func (r *Restaurant) Profile() Profile     { return r.profile }
func (r *Restaurant) Name() string         { return r.profile.Name }
func (r *Restaurant) Rating() float64      { return r.rating }
func (r *Restaurant) IsOpen() bool         { return r.isOpen }

func (r *Restaurant) IsOwnedBy(userID kernel.UUID) bool {
	return r.ownerID.IsEqual(userID)
}

// Menu returns a copy of the menu in display order.
func (r *Restaurant) Menu() []MenuItem {
	out := make([]MenuItem, len(r.menu))
	copy(out, r.menu)
	return out
}

func (r *Restaurant) MenuItem(id kernel.UUID) (MenuItem, bool) {
	for _, item := range r.menu {
		if item.id.IsEqual(id) {
			return item, true
		}
	}
	return MenuItem{}, false
}

func (r *Restaurant) SetOpen(open bool) {
	r.isOpen = open
}

func (r *Restaurant) UpdateProfile(p Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Address = strings.TrimSpace(p.Address)
	p.Phone = strings.TrimSpace(p.Phone)
	p.DeliveryTime = strings.TrimSpace(p.DeliveryTime)

	var errList []error
	if p.Name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if p.Address == "" {
		errList = append(errList, errs.NewValueIsRequiredError("address"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	r.profile = p
	return nil
}

// ReplaceMenu swaps the whole menu. Item identifiers must be unique.
func (r *Restaurant) ReplaceMenu(items []MenuItem) error {
	seen := make(map[kernel.UUID]struct{}, len(items))
	next := make([]MenuItem, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("menu", err)
		}
		if _, dup := seen[item.id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("menu", fmt.Errorf("duplicate menu item %s", item.id))
		}
		seen[item.id] = struct{}{}
		next = append(next, item)
	}
	r.menu = next
	return nil
}

func (r *Restaurant) AddMenuItem(item MenuItem) error {
	return r.ReplaceMenu(append(r.Menu(), item))
}

func (r *Restaurant) SetMenuItemAvailability(itemID kernel.UUID, available bool) error {
	menu := r.Menu()
	for i, item := range menu {
		if item.id.IsEqual(itemID) {
			menu[i] = item.WithAvailability(available)
			return r.ReplaceMenu(menu)
		}
	}
	return errs.NewObjectNotFoundError("menuItem", itemID.String())
}

func (r *Restaurant) RemoveMenuItem(itemID kernel.UUID) error {
	menu := make([]MenuItem, 0, len(r.menu))
	for _, item := range r.menu {
		if !item.id.IsEqual(itemID) {
			menu = append(menu, item)
		}
	}
	if len(menu) == len(r.menu) {
		return errs.NewObjectNotFoundError("menuItem", itemID.String())
	}
	return r.ReplaceMenu(menu)
}

func (r *Restaurant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	r.id = id
	return nil
}

func (r *Restaurant) setOwner(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("ownerId", err)
	}
	r.ownerID = ownerID
	return nil
}
