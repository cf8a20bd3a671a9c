package queries

import (
	"context"
	"errors"

	"localeats/internal/core/ports"
	"localeats/internal/pkg/errs"
)

type SignInQueryHandler struct {
	identity ports.IdentityProvider
	users    ports.UserReader
}

func NewSignInQueryHandler(identity ports.IdentityProvider, users ports.UserReader) SignInQueryHandler {
	return SignInQueryHandler{identity: identity, users: users}
}

// Handle checks the credentials and returns the matching profile. A
// credential without a profile is reported as unauthorized.
func (h SignInQueryHandler) Handle(ctx context.Context, query SignInQuery) (UserView, error) {
	if err := query.Validate(); err != nil {
		return UserView{}, err
	}

	id, err := h.identity.Authenticate(ctx, query.email, query.password)
	if err != nil {
		return UserView{}, err
	}

	u, err := h.users.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return UserView{}, errs.NewUnauthorizedError("no profile for these credentials")
	}
	if err != nil {
		return UserView{}, err
	}
	return NewUserView(u), nil
}

type GetUserQueryHandler struct {
	users ports.UserReader
}

func NewGetUserQueryHandler(users ports.UserReader) GetUserQueryHandler {
	return GetUserQueryHandler{users: users}
}

func (h GetUserQueryHandler) Handle(ctx context.Context, query GetUserQuery) (UserView, error) {
	if err := query.Validate(); err != nil {
		return UserView{}, err
	}
	u, err := h.users.Get(ctx, query.userID)
	if err != nil {
		return UserView{}, err
	}
	return NewUserView(u), nil
}
