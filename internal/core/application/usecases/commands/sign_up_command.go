package commands

import (
	"errors"
	"strings"

	"localeats/internal/core/domain/model/user"
	"localeats/internal/pkg/errs"
	"localeats/internal/pkg/guard"
)

const MinPasswordLength = 6

var ErrSignUpCommandIsNotConstructed = errors.New(
	"SignUpCommand must be created via NewSignUpCommand constructor",
)

type SignUpCommand struct {
	email    string
	password string
	name     string
	role     user.Role
	phone    string
	address  string

	guard guard.ConstructorGuard
}

func NewSignUpCommand(email, password, name string, role user.Role, phone, address string) (SignUpCommand, error) {
	var errList []error
	if strings.TrimSpace(email) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("email"))
	}
	if len(password) < MinPasswordLength {
		errList = append(errList, errs.NewValueIsOutOfRangeError("password length", len(password), MinPasswordLength, nil))
	}
	if strings.TrimSpace(name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if err := role.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return SignUpCommand{}, err
	}

	return SignUpCommand{
		email:    strings.TrimSpace(email),
		password: password,
		name:     name,
		role:     role,
		phone:    phone,
		address:  address,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SignUpCommand) Validate() error {
	return c.guard.Validate(ErrSignUpCommandIsNotConstructed)
}

func (c SignUpCommand) Email() string    { return c.email }
func (c SignUpCommand) Password() string { return c.password }
func (c SignUpCommand) Name() string     { return c.name }
func (c SignUpCommand) Role() user.Role  { return c.role }
func (c SignUpCommand) Phone() string    { return c.phone }
func (c SignUpCommand) Address() string  { return c.address }
