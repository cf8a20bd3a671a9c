package order

import (
	"errors"
	"strings"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/pkg/errs"
	"localeats/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem")

// Item is one order line. Name and price are copied from the menu at the
// moment the order is placed and never change afterwards.
type Item struct {
	menuItemID kernel.UUID
	name       string
	price      kernel.Money
	quantity   int
	guard      guard.ConstructorGuard
}

// NewItem requires a menu item id, a name and a quantity of at least one.
// All field errors are returned together.
func NewItem(menuItemID kernel.UUID, name string, price kernel.Money, quantity int) (Item, error) {
	var errList []error
	if err := menuItemID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("item.menuItemId", err))
	}
	name = strings.TrimSpace(name)
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("item.name"))
	}
	if quantity < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("item.quantity", quantity, 1, nil))
	}
	if err := errors.Join(errList...); err != nil {
		return Item{}, err
	}

	return Item{
		menuItemID: menuItemID,
		name:       name,
		price:      price,
		quantity:   quantity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) MenuItemID() kernel.UUID { return i.menuItemID }
func (i Item) Name() string            { return i.name }
func (i Item) Price() kernel.Money     { return i.price }
func (i Item) Quantity() int           { return i.quantity }

func (i Item) Subtotal() kernel.Money {
	return i.price.Times(i.quantity)
}
