package user

import (
	"fmt"

	"localeats/internal/pkg/errs"
)

// Role is fixed at sign-up.
type Role int

const (
	// UnknownRole is the invalid zero value.
	UnknownRole Role = iota

	// Customer browses restaurants and places orders.
	Customer

	// Driver claims ready orders from the pool and delivers them.
	Driver

	// RestaurantOwner runs one restaurant: its menu, its open flag and the
	// kitchen side of its orders. Stored as "restaurant".
	RestaurantOwner
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole:     "unknown",
		Customer:        "customer",
		Driver:          "driver",
		RestaurantOwner: "restaurant",
	}
}

// ParseRole accepts the lowercase names used on the wire and in storage.
func ParseRole(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != UnknownRole && name == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) Validate() error {
	if r == UnknownRole {
		return errs.NewValueIsRequiredError("role")
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

func (r Role) MarshalText() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
