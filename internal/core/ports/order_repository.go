// Package ports declares the contracts between the application core and
// its adapters: repositories, the unit of work, the order change feed, the
// identity provider and the transition metrics sink.
package ports

import (
	"context"
	"time"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"
)

// OrderSort orders query results by creation time. Ties are broken by id.
// The zero value is oldest first.
type OrderSort int

const (
	OldestFirst OrderSort = iota
	NewestFirst
)

// OrderFilter selects orders. Zero-valued fields do not constrain the
// result; Statuses is a set, matched with OR, and ExcludedStatuses removes
// orders in any of its statuses.
type OrderFilter struct {
	CustomerID       *kernel.UUID
	RestaurantID     *kernel.UUID
	DriverID         *kernel.UUID
	DriverUnset      bool
	Statuses         []order.Status
	ExcludedStatuses []order.Status
	CreatedAfter     time.Time
	CreatedBefore    time.Time
}

// Matches evaluates the filter against an order change notification.
func (f OrderFilter) Matches(c OrderChange) bool {
	if f.CustomerID != nil && !f.CustomerID.IsEqual(c.CustomerID) {
		return false
	}
	if f.RestaurantID != nil && !f.RestaurantID.IsEqual(c.RestaurantID) {
		return false
	}
	if f.DriverID != nil && (c.DriverID == nil || !f.DriverID.IsEqual(*c.DriverID)) {
		return false
	}
	if f.DriverUnset && c.DriverID != nil {
		return false
	}
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, c.Status) {
		return false
	}
	if containsStatus(f.ExcludedStatuses, c.Status) {
		return false
	}
	if !f.CreatedAfter.IsZero() && c.CreatedAt.Before(f.CreatedAfter) {
		return false
	}
	if !f.CreatedBefore.IsZero() && !c.CreatedAt.Before(f.CreatedBefore) {
		return false
	}
	return true
}

func containsStatus(statuses []order.Status, s order.Status) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// OrderReader answers order queries outside any transaction.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	Find(ctx context.Context, filter OrderFilter, sort OrderSort) ([]*order.Order, error)
	// StatusHistory lists the audit trail oldest first.
	StatusHistory(ctx context.Context, orderID kernel.UUID) ([]order.StatusChange, error)
}

// OrderRepository is the transactional order store.
type OrderRepository interface {
	OrderReader

	// Add stores a new order and stamps its timestamps.
	Add(ctx context.Context, aggregate *order.Order) error

	// CompareAndSwap writes the aggregate's status and driver only if the
	// stored order still satisfies expected. It returns a ConflictError when
	// the precondition no longer holds and an ObjectNotFoundError when the
	// order does not exist.
	CompareAndSwap(ctx context.Context, aggregate *order.Order, expected order.Precondition) error

	// AddStatusChange appends to the order's audit trail.
	AddStatusChange(ctx context.Context, change order.StatusChange) error
}
