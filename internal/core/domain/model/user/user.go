package user

import (
	"errors"
	"net/mail"
	"strings"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/pkg/errs"
	"localeats/internal/pkg/guard"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

// User is a registered account. Email and role never change after sign-up;
// the online flag only exists for drivers and the restaurant link only for
// restaurant owners.
type User struct {
	id           kernel.UUID
	email        string
	name         string
	role         Role
	phone        string
	address      string
	online       bool
	restaurantID *kernel.UUID
	guard        guard.ConstructorGuard
}

// NewUser creates an account. Drivers start offline.
func NewUser(id kernel.UUID, email, name string, role Role, phone, address string) (*User, error) {
	u := &User{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		u.setID(id),
		u.setEmail(email),
		u.setName(name),
		u.setRole(role),
	); err != nil {
		return nil, err
	}
	u.phone = strings.TrimSpace(phone)
	u.address = strings.TrimSpace(address)

	return u, nil
}

// RestoreUser rebuilds a persisted account.
func RestoreUser(
	id kernel.UUID,
	email, name string,
	role Role,
	phone, address string,
	online bool,
	restaurantID *kernel.UUID,
) (*User, error) {
	u, err := NewUser(id, email, name, role, phone, address)
	if err != nil {
		return nil, err
	}
	if online {
		if err = u.SetOnline(true); err != nil {
			return nil, err
		}
	}
	if restaurantID != nil {
		if err = u.LinkRestaurant(*restaurantID); err != nil {
			return nil, err
		}
	}
	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID            { return u.id }
func (u *User) Email() string              { return u.email }
func (u *User) Name() string               { return u.name }
func (u *User) Role() Role                 { return u.role }
func (u *User) Phone() string              { return u.phone }
func (u *User) Address() string            { return u.address }
func (u *User) IsOnline() bool             { return u.online }
func (u *User) RestaurantID() *kernel.UUID { return u.restaurantID }

// SetOnline toggles a driver's availability.
func (u *User) SetOnline(online bool) error {
	if u.role != Driver {
		return errs.NewValueIsInvalidErrorWithCause("online", errors.New("only drivers have an availability flag"))
	}
	u.online = online
	return nil
}

// LinkRestaurant records the restaurant a restaurant owner manages.
func (u *User) LinkRestaurant(restaurantID kernel.UUID) error {
	if u.role != RestaurantOwner {
		return errs.NewValueIsInvalidErrorWithCause("restaurantId", errors.New("only restaurant owners manage a restaurant"))
	}
	if err := restaurantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	if u.restaurantID != nil && !u.restaurantID.IsEqual(restaurantID) {
		return errs.NewValueIsInvalidErrorWithCause("restaurantId", errors.New("owner already manages a restaurant"))
	}
	u.restaurantID = &restaurantID
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	u.id = id
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	u.email = strings.ToLower(email)
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
