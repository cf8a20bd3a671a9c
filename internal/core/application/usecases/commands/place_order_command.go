package commands

import (
	"errors"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"
	"localeats/internal/pkg/errs"
	"localeats/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// OrderLine asks for quantity units of one menu item.
type OrderLine struct {
	MenuItemID kernel.UUID
	Quantity   int
}

// PlaceOrderCommand checks out a cart. Names and prices are taken from the
// restaurant's live menu when the command is handled.
type PlaceOrderCommand struct {
	orderID       kernel.UUID
	customerID    kernel.UUID
	restaurantID  kernel.UUID
	lines         []OrderLine
	paymentMethod order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand merges repeated lines for the same menu item.
func NewPlaceOrderCommand(
	orderID, customerID, restaurantID kernel.UUID,
	lines []OrderLine,
	paymentMethod order.PaymentMethod,
) (PlaceOrderCommand, error) {
	var errList []error
	if err := orderID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("orderId", err))
	}
	if err := customerID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("customerId", err))
	}
	if err := restaurantID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("restaurantId", err))
	}
	merged, err := mergeLines(lines)
	if err != nil {
		errList = append(errList, err)
	}
	if err = paymentMethod.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err = errors.Join(errList...); err != nil {
		return PlaceOrderCommand{}, err
	}

	return PlaceOrderCommand{
		orderID:       orderID,
		customerID:    customerID,
		restaurantID:  restaurantID,
		lines:         merged,
		paymentMethod: paymentMethod,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID               { return c.orderID }
func (c PlaceOrderCommand) CustomerID() kernel.UUID            { return c.customerID }
func (c PlaceOrderCommand) RestaurantID() kernel.UUID          { return c.restaurantID }
func (c PlaceOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }

func (c PlaceOrderCommand) Lines() []OrderLine {
	out := make([]OrderLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func mergeLines(lines []OrderLine) ([]OrderLine, error) {
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	merged := make([]OrderLine, 0, len(lines))
	index := make(map[kernel.UUID]int, len(lines))
	for _, line := range lines {
		if err := line.MenuItemID.Validate(); err != nil {
			return nil, errs.NewValueIsRequiredErrorWithCause("items.menuItemId", err)
		}
		if line.Quantity < 1 {
			return nil, errs.NewValueIsOutOfRangeError("items.quantity", line.Quantity, 1, nil)
		}
		if i, ok := index[line.MenuItemID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.MenuItemID] = len(merged)
		merged = append(merged, line)
	}
	return merged, nil
}
