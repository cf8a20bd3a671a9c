package queries

import (
	"errors"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/services"
	"localeats/internal/pkg/errs"
	"localeats/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery loads one order as seen by viewer. Orders the viewer may
// not see are reported as not found.
type GetOrderQuery struct {
	orderID kernel.UUID
	viewer  services.Actor

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, viewer services.Actor) (GetOrderQuery, error) {
	var errList []error
	if err := orderID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("orderId", err))
	}
	if err := viewer.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{orderID: orderID, viewer: viewer, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID   { return q.orderID }
func (q GetOrderQuery) Viewer() services.Actor { return q.viewer }
