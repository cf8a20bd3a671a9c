package queries

import (
	"errors"
	"strings"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/pkg/errs"
	"localeats/internal/pkg/guard"
)

var ErrSignInQueryIsNotConstructed = errors.New(
	"SignInQuery must be created via NewSignInQuery constructor",
)

type SignInQuery struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewSignInQuery(email, password string) (SignInQuery, error) {
	var errList []error
	email = strings.TrimSpace(email)
	if email == "" {
		errList = append(errList, errs.NewValueIsRequiredError("email"))
	}
	if password == "" {
		errList = append(errList, errs.NewValueIsRequiredError("password"))
	}
	if err := errors.Join(errList...); err != nil {
		return SignInQuery{}, err
	}
	return SignInQuery{email: email, password: password, guard: guard.NewConstructorGuard()}, nil
}

func (q SignInQuery) Validate() error {
	return q.guard.Validate(ErrSignInQueryIsNotConstructed)
}

var ErrGetUserQueryIsNotConstructed = errors.New(
	"GetUserQuery must be created via NewGetUserQuery constructor",
)

// GetUserQuery loads the profile of a signed-in user.
type GetUserQuery struct {
	userID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewGetUserQuery(userID kernel.UUID) (GetUserQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUserQuery{}, errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	return GetUserQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserQuery) Validate() error {
	return q.guard.Validate(ErrGetUserQueryIsNotConstructed)
}
