package order

import (
	"fmt"

	"localeats/internal/pkg/errs"
)

// Status is the lifecycle state of an order. It only knows which moves the
// graph allows; who may make a move is decided by services.OrderLifecycle.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Preparing ──> Ready ──> PickedUp ──> OutForDelivery ──> Delivered
//	   │            │             │
//	   └────────────┴─────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Statuses are persisted and sent
// over the wire by their snake_case names.
type Status int

const (
	// UnknownStatus is the zero value and never valid; it catches
	// uninitialised statuses.
	UnknownStatus Status = iota

	// Pending is the status of a freshly placed order waiting for the
	// restaurant to accept or reject it.
	Pending

	// Confirmed means the restaurant accepted the order.
	Confirmed

	// Preparing means the kitchen is working on the order.
	Preparing

	// Ready means the food is waiting for pickup. A ready order without a
	// driver is in the available pool.
	Ready

	// PickedUp means a driver claimed the order. From here on the order
	// always carries a driver.
	PickedUp

	// OutForDelivery means the driver is on the way to the customer.
	OutForDelivery

	// Delivered is terminal: the customer received the order.
	Delivered

	// Cancelled is terminal: the restaurant rejected or abandoned the
	// order before it was ready.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus:  "unknown",
		Pending:        "pending",
		Confirmed:      "confirmed",
		Preparing:      "preparing",
		Ready:          "ready",
		PickedUp:       "picked_up",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// getTransitions lists the successors of every non-terminal status.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal and unknown statuses have no successors
	return map[Status][]Status{
		Pending:        {Confirmed, Cancelled},
		Confirmed:      {Preparing, Cancelled},
		Preparing:      {Ready, Cancelled},
		Ready:          {PickedUp},
		PickedUp:       {OutForDelivery},
		OutForDelivery: {Delivered},
	}
}

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Confirmed, Preparing, Ready, PickedUp, OutForDelivery, Delivered, Cancelled}
}

// ParseStatus maps a stored or wire name such as "out_for_delivery" back to
// its Status. Unknown names are a ValueIsInvalidError.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != UnknownStatus && name == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// Validate rejects UnknownStatus and values outside the enum, for example
// ones read from the database.
func (s Status) Validate() error {
	if s == UnknownStatus {
		return errs.NewValueIsRequiredError("status")
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name, or "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the order accepts no further moves.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// RequiresDriver reports whether an order in this status must carry a driver.
func (s Status) RequiresDriver() bool {
	return s == PickedUp || s == OutForDelivery || s == Delivered
}

// CanTransitionTo reports whether the graph has an edge from s to next.
// It ignores roles and the driver.
func (s Status) CanTransitionTo(next Status) bool {
	for _, candidate := range getTransitions()[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next if the graph allows the move.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return UnknownStatus, err
	}
	if !s.CanTransitionTo(next) {
		return UnknownStatus, errs.NewStatusTransitionError(s, next)
	}
	return next, nil
}

// ValidateCanHaveDriver checks that a driver is present exactly in the
// statuses that require one:
//   - Pending through Ready must have no driver
//   - PickedUp, OutForDelivery and Delivered must have one
//
// Cancelled orders never had a driver, since cancelling stops at Preparing.
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	if hasDriver && !s.RequiresDriver() {
		return errs.NewValueIsInvalidErrorWithCause(
			"driverId",
			fmt.Errorf("%s is not a valid status to have a driver", s),
		)
	}
	if !hasDriver && s.RequiresDriver() {
		return errs.NewValueIsInvalidErrorWithCause(
			"driverId",
			fmt.Errorf("%s is not a valid status to have no driver", s),
		)
	}
	return nil
}

func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
