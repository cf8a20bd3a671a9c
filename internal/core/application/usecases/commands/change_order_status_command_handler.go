package commands

import (
	"context"
	"errors"

	"localeats/internal/core/domain/model/restaurant"
	"localeats/internal/core/domain/model/user"
	"localeats/internal/core/domain/services"
	"localeats/internal/core/ports"
	"localeats/internal/pkg/errs"
)

type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.OrderLifecycle
	recorder   ports.TransitionRecorder
}

func NewChangeOrderStatusCommandHandler(
	uowFactory UoWFactory,
	recorder ports.TransitionRecorder,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  services.NewOrderLifecycle(),
		recorder:   recorder,
	}
}

// Handle validates the move against the lifecycle and writes it with a
// conditional update, so of several concurrent requests against the same
// starting state exactly one succeeds and the rest get a ConflictError.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, command ChangeOrderStatusCommand) error {
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

	orders := uow.OrderRepository()
	o, err := orders.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	actor := command.Actor()
	var owned *restaurant.Restaurant
	if actor.Role == user.RestaurantOwner {
		owned, err = uow.RestaurantRepository().GetByOwner(ctx, actor.ID)
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}
	}

	transition, err := h.lifecycle.Transition(o, actor, command.Target(), owned)
	if err != nil {
		return h.observe(err)
	}

	if err = orders.CompareAndSwap(ctx, o, transition.Precondition); err != nil {
		return h.observe(err)
	}

	change := transition.Change
	change.At = o.UpdatedAt()
	if err = orders.AddStatusChange(ctx, change); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.recorder != nil {
		h.recorder.RecordTransition(change.From, change.To, change.ActorRole)
	}
	return nil
}

func (h ChangeOrderStatusCommandHandler) observe(err error) error {
	if h.recorder != nil && errors.Is(err, errs.ErrConflict) {
		h.recorder.RecordClaimConflict()
	}
	return err
}
