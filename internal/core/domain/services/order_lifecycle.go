package services

import (
	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/domain/model/restaurant"
	"localeats/internal/core/domain/model/user"
	"localeats/internal/pkg/errs"
)

// Transition is the outcome of an accepted move: the stored state the
// conditional write must still find, and the audit record to append.
type Transition struct {
	Precondition order.Precondition
	Change       order.StatusChange
}

type transitionRule struct {
	from  []order.Status
	to    order.Status
	role  user.Role
	apply func(o *order.Order, actor Actor) error
}

func getTransitionRules() []transitionRule {
	return []transitionRule{
		{from: []order.Status{order.Pending}, to: order.Confirmed, role: user.RestaurantOwner,
			apply: func(o *order.Order, _ Actor) error { return o.Confirm() }},
		{from: []order.Status{order.Pending, order.Confirmed, order.Preparing}, to: order.Cancelled, role: user.RestaurantOwner,
			apply: func(o *order.Order, _ Actor) error { return o.Cancel() }},
		{from: []order.Status{order.Confirmed}, to: order.Preparing, role: user.RestaurantOwner,
			apply: func(o *order.Order, _ Actor) error { return o.StartPreparing() }},
		{from: []order.Status{order.Preparing}, to: order.Ready, role: user.RestaurantOwner,
			apply: func(o *order.Order, _ Actor) error { return o.MarkReady() }},
		{from: []order.Status{order.Ready}, to: order.PickedUp, role: user.Driver,
			apply: func(o *order.Order, a Actor) error { return o.PickUp(a.ID) }},
		{from: []order.Status{order.PickedUp}, to: order.OutForDelivery, role: user.Driver,
			apply: func(o *order.Order, _ Actor) error { return o.StartDelivery() }},
		{from: []order.Status{order.OutForDelivery}, to: order.Delivered, role: user.Driver,
			apply: func(o *order.Order, _ Actor) error { return o.Deliver() }},
	}
}

// OrderLifecycle is the single authority on order status moves.
type OrderLifecycle struct{}

func NewOrderLifecycle() OrderLifecycle {
	return OrderLifecycle{}
}

// Transition moves o to target on behalf of actor, mutating o in place.
//
// restaurant must be the restaurant the order was placed with when the actor
// is a restaurant owner; it is ignored otherwise. A driver claiming an order
// that already has a driver gets a ConflictError; every other rejected move
// is an InvalidTransitionError and leaves o untouched.
func (l OrderLifecycle) Transition(
	o *order.Order,
	actor Actor,
	target order.Status,
	owned *restaurant.Restaurant,
) (Transition, error) {
	if err := o.Validate(); err != nil {
		return Transition{}, err
	}
	if err := actor.Validate(); err != nil {
		return Transition{}, err
	}
	if err := target.Validate(); err != nil {
		return Transition{}, err
	}

	from := o.Status()
	if target == order.PickedUp && actor.Role == user.Driver && o.Driver() != nil {
		return Transition{}, errs.NewConflictError("order", o.ID().String(), "already claimed by another driver")
	}

	rule, ok := l.findRule(from, target, actor.Role)
	if !ok || !l.authorized(o, actor, owned) {
		return Transition{}, errs.NewInvalidTransitionError(from, target, actor.Role)
	}

	if err := rule.apply(o, actor); err != nil {
		return Transition{}, err
	}

	return Transition{
		Precondition: order.Precondition{Status: from, DriverUnset: target == order.PickedUp},
		Change: order.StatusChange{
			OrderID:   o.ID(),
			From:      from,
			To:        target,
			ActorID:   actor.ID,
			ActorRole: actor.Role,
		},
	}, nil
}

// Allowed reports the statuses actor could move o to right now.
func (l OrderLifecycle) Allowed(o *order.Order, actor Actor, owned *restaurant.Restaurant) []order.Status {
	if o.Validate() != nil || !l.authorized(o, actor, owned) {
		return nil
	}
	var out []order.Status
	for _, rule := range getTransitionRules() {
		if rule.role == actor.Role && contains(rule.from, o.Status()) {
			if rule.to == order.PickedUp && o.Driver() != nil {
				continue
			}
			out = append(out, rule.to)
		}
	}
	return out
}

func (l OrderLifecycle) findRule(from, to order.Status, role user.Role) (transitionRule, bool) {
	for _, rule := range getTransitionRules() {
		if rule.to == to && rule.role == role && contains(rule.from, from) {
			return rule, true
		}
	}
	return transitionRule{}, false
}

func (l OrderLifecycle) authorized(o *order.Order, actor Actor, owned *restaurant.Restaurant) bool {
	switch actor.Role {
	case user.RestaurantOwner:
		return owned.Validate() == nil &&
			owned.ID().IsEqual(o.RestaurantID()) &&
			owned.IsOwnedBy(actor.ID)
	case user.Driver:
		// Any driver may claim a ready order; later moves need the assignee.
		return o.Status() == order.Ready || o.IsAssignedTo(actor.ID)
	case user.Customer:
		return o.BelongsTo(actor.ID)
	default:
		return false
	}
}

func contains(statuses []order.Status, s order.Status) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}
