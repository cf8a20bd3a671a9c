package views

import (
	"localeats/internal/core/application/usecases/commands"
	"localeats/internal/core/application/usecases/queries"
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/pkg/errs"
)

// CartLine is one menu item in a cart with the price shown when it was
// added. The order is priced from the live menu at checkout.
type CartLine struct {
	MenuItemID kernel.UUID
	Name       string
	Price      kernel.Money
	Quantity   int
}

func (l CartLine) Subtotal() kernel.Money {
	return l.Price.Times(l.Quantity)
}

// Cart collects items from a single restaurant before checkout. It is
// owned by one session and is not safe for concurrent use.
type Cart struct {
	restaurantID kernel.UUID
	lines        []CartLine
}

func NewCart(restaurantID kernel.UUID) (*Cart, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	return &Cart{restaurantID: restaurantID}, nil
}

// CartLineFor builds a line from a menu entry as listed to customers.
func CartLineFor(item queries.MenuItemView, quantity int) (CartLine, error) {
	price, err := kernel.MoneyFromFloat(item.Price)
	if err != nil {
		return CartLine{}, err
	}
	return CartLine{MenuItemID: item.ID, Name: item.Name, Price: price, Quantity: quantity}, nil
}

func (c *Cart) RestaurantID() kernel.UUID { return c.restaurantID }

// Add puts a line in the cart, adding to the quantity of a line for the
// same menu item.
func (c *Cart) Add(line CartLine) error {
	if err := line.MenuItemID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("menuItemId", err)
	}
	if line.Quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", line.Quantity, 1, nil)
	}
	for i := range c.lines {
		if c.lines[i].MenuItemID.IsEqual(line.MenuItemID) {
			c.lines[i].Quantity += line.Quantity
			return nil
		}
	}
	c.lines = append(c.lines, line)
	return nil
}

func (c *Cart) Remove(menuItemID kernel.UUID) {
	lines := c.lines[:0]
	for _, line := range c.lines {
		if !line.MenuItemID.IsEqual(menuItemID) {
			lines = append(lines, line)
		}
	}
	c.lines = lines
}

// SetQuantity changes a line's quantity; zero or less removes it.
func (c *Cart) SetQuantity(menuItemID kernel.UUID, quantity int) {
	if quantity <= 0 {
		c.Remove(menuItemID)
		return
	}
	for i := range c.lines {
		if c.lines[i].MenuItemID.IsEqual(menuItemID) {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

func (c *Cart) Total() kernel.Money {
	total := kernel.ZeroMoney
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

func (c *Cart) orderLines() []commands.OrderLine {
	lines := make([]commands.OrderLine, 0, len(c.lines))
	for _, line := range c.lines {
		lines = append(lines, commands.OrderLine{MenuItemID: line.MenuItemID, Quantity: line.Quantity})
	}
	return lines
}
