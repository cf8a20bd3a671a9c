package commands

import (
	"errors"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/domain/services"
	"localeats/internal/pkg/errs"
	"localeats/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand asks the lifecycle to move an order. Confirm,
// reject, prepare, mark ready, claim, start delivery and deliver are all
// expressed through it.
type ChangeOrderStatusCommand struct {
	orderID kernel.UUID
	actor   services.Actor
	target  order.Status

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	actor services.Actor,
	target order.Status,
) (ChangeOrderStatusCommand, error) {
	var errList []error
	if err := orderID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("orderId", err))
	}
	if err := actor.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := target.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		orderID: orderID,
		actor:   actor,
		target:  target,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID  { return c.orderID }
func (c ChangeOrderStatusCommand) Actor() services.Actor { return c.actor }
func (c ChangeOrderStatusCommand) Target() order.Status  { return c.target }
