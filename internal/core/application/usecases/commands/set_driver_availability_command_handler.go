package commands

import (
	"context"

	"localeats/internal/core/domain/model/user"
	"localeats/internal/pkg/errs"
)

type SetDriverAvailabilityCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewSetDriverAvailabilityCommandHandler(uowFactory UserUoWFactory) SetDriverAvailabilityCommandHandler {
	return SetDriverAvailabilityCommandHandler{uowFactory: uowFactory}
}

func (h SetDriverAvailabilityCommandHandler) Handle(ctx context.Context, command SetDriverAvailabilityCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	driver, err := users.Get(ctx, command.DriverID())
	if err != nil {
		return err
	}
	if driver.Role() != user.Driver {
		return errs.NewForbiddenError("change availability", driver.Role().String())
	}

	if err = driver.SetOnline(command.Online()); err != nil {
		return err
	}

	if err = users.Update(ctx, driver); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
