package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/pkg/errs"
	"localeats/internal/pkg/guard"
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of the delivery lifecycle.
//
// Invariants:
//   - at least one item, and total equals the sum of price times quantity
//   - customer, restaurant, items, total and payment method never change
//   - a driver is set exactly when the status requires one
//   - terminal orders accept no further moves
type Order struct {
	id             kernel.UUID
	customer       Customer
	restaurantID   kernel.UUID
	restaurantName string
	driverID       *kernel.UUID
	items          []Item
	total          kernel.Money
	paymentMethod  PaymentMethod
	status         Status
	createdAt      time.Time
	updatedAt      time.Time
	guard          guard.ConstructorGuard
}

// NewOrder creates a pending order without a driver and computes its total.
// Timestamps are left zero until the order is stored.
func NewOrder(
	id kernel.UUID,
	customer Customer,
	restaurantID kernel.UUID,
	restaurantName string,
	items []Item,
	paymentMethod PaymentMethod,
) (*Order, error) {
	o := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setRestaurant(restaurantID, restaurantName),
		o.setItems(items),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds a stored order and re-checks every invariant,
// including that the stored total matches the items.
func RestoreOrder(
	id kernel.UUID,
	customer Customer,
	restaurantID kernel.UUID,
	restaurantName string,
	driverID *kernel.UUID,
	items []Item,
	total kernel.Money,
	paymentMethod PaymentMethod,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o, err := NewOrder(id, customer, restaurantID, restaurantName, items, paymentMethod)
	if err != nil {
		return nil, err
	}
	if !o.total.Equal(total) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"total", fmt.Errorf("stored total %s does not match items total %s", total, o.total))
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	if driverID != nil {
		if err = driverID.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("driverId", err)
		}
	}
	if err = status.ValidateCanHaveDriver(driverID != nil); err != nil {
		return nil, err
	}

	o.status = status
	o.driverID = driverID
	o.createdAt = createdAt
	o.updatedAt = updatedAt
	return o, nil
}

// Validate fails for orders not built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                       { return o.id }
func (o *Order) Customer() Customer                    { return o.customer }
func (o *Order) RestaurantID() kernel.UUID             { return o.restaurantID }
func (o *Order) RestaurantName() string                { return o.restaurantName }
func (o *Order) Driver() *kernel.UUID                  { return o.driverID }
func (o *Order) Total() kernel.Money                   { return o.total }
func (o *Order) PaymentMethod() PaymentMethod          { return o.paymentMethod }
func (o *Order) Status() Status                        { return o.status }
func (o *Order) CreatedAt() time.Time                  { return o.createdAt }
func (o *Order) UpdatedAt() time.Time                  { return o.updatedAt }
func (o *Order) IsTerminal() bool                      { return o.status.IsTerminal() }
func (o *Order) BelongsTo(customerID kernel.UUID) bool { return o.customer.ID.IsEqual(customerID) }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// IsAssignedTo reports whether driverID is the order's driver.
func (o *Order) IsAssignedTo(driverID kernel.UUID) bool {
	return o.driverID != nil && o.driverID.IsEqual(driverID)
}

// Stamp records a write at the given instant. The creation time is set on
// the first call only.
func (o *Order) Stamp(at time.Time) {
	at = at.UTC().Truncate(time.Microsecond)
	if o.createdAt.IsZero() {
		o.createdAt = at
	}
	o.updatedAt = at
}

// Lifecycle moves. Each checks only the status graph; role and ownership
// are checked by services.OrderLifecycle before the move is applied.

func (o *Order) Confirm() error        { return o.moveTo(Confirmed) }
func (o *Order) StartPreparing() error { return o.moveTo(Preparing) }
func (o *Order) MarkReady() error      { return o.moveTo(Ready) }
func (o *Order) StartDelivery() error  { return o.moveTo(OutForDelivery) }
func (o *Order) Deliver() error        { return o.moveTo(Delivered) }

// Cancel rejects a pending order or abandons one that is still in the
// kitchen.
func (o *Order) Cancel() error { return o.moveTo(Cancelled) }

// PickUp assigns the driver and moves a ready order to picked_up.
func (o *Order) PickUp(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}
	if o.driverID != nil {
		return errs.NewConflictError("order", o.id.String(), "a driver is already assigned")
	}
	if err := o.moveTo(PickedUp); err != nil {
		return err
	}
	o.driverID = &driverID
	return nil
}

func (o *Order) moveTo(next Status) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(c Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	o.customer = c
	return nil
}

func (o *Order) setRestaurant(id kernel.UUID, name string) error {
	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("restaurantId", err))
	}
	name = strings.TrimSpace(name)
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("restaurantName"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	o.restaurantID = id
	o.restaurantName = name
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	total := kernel.ZeroMoney
	lines := make([]Item, 0, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
		lines = append(lines, item)
		total = total.Add(item.Subtotal())
	}
	o.items = lines
	o.total = total
	return nil
}

func (o *Order) setPaymentMethod(p PaymentMethod) error {
	if err := p.Validate(); err != nil {
		return err
	}
	o.paymentMethod = p
	return nil
}
