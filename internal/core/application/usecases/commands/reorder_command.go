package commands

import (
	"errors"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/pkg/errs"
	"localeats/internal/pkg/guard"
)

var ErrReorderCommandIsNotConstructed = errors.New(
	"ReorderCommand must be created via NewReorderCommand constructor",
)

// ReorderCommand places a new pending order with the same items and prices
// as one of the customer's earlier orders.
type ReorderCommand struct {
	orderID       kernel.UUID
	sourceOrderID kernel.UUID
	customerID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewReorderCommand(orderID, sourceOrderID, customerID kernel.UUID) (ReorderCommand, error) {
	var errList []error
	if err := orderID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("orderId", err))
	}
	if err := sourceOrderID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("sourceOrderId", err))
	}
	if err := customerID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("customerId", err))
	}
	if err := errors.Join(errList...); err != nil {
		return ReorderCommand{}, err
	}

	return ReorderCommand{
		orderID:       orderID,
		sourceOrderID: sourceOrderID,
		customerID:    customerID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c ReorderCommand) Validate() error {
	return c.guard.Validate(ErrReorderCommandIsNotConstructed)
}

func (c ReorderCommand) OrderID() kernel.UUID       { return c.orderID }
func (c ReorderCommand) SourceOrderID() kernel.UUID { return c.sourceOrderID }
func (c ReorderCommand) CustomerID() kernel.UUID    { return c.customerID }
