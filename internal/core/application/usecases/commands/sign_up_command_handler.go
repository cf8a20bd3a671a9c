package commands

import (
	"context"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/user"
)

type SignUpCommandHandler struct {
	uowFactory SignUpUoWFactory
}

func NewSignUpCommandHandler(uowFactory SignUpUoWFactory) SignUpCommandHandler {
	return SignUpCommandHandler{uowFactory: uowFactory}
}

// Handle registers the credentials and creates the user under the id the
// identity provider assigned. Both are committed together or not at all.
func (h SignUpCommandHandler) Handle(ctx context.Context, command SignUpCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	// Profile errors must surface before credentials are hashed.
	if _, err := user.NewUser(kernel.NewUUID(), command.Email(), command.Name(), command.Role(),
		command.Phone(), command.Address()); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	id, err := uow.IdentityProvider().Register(ctx, command.Email(), command.Password())
	if err != nil {
		return kernel.UUID{}, err
	}

	u, err := user.NewUser(id, command.Email(), command.Name(), command.Role(), command.Phone(), command.Address())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.UserRepository().Add(ctx, u); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return id, nil
}
