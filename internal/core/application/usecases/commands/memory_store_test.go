package commands_test

import (
	"context"
	"sync"
	"time"

	"localeats/internal/core/application/usecases/commands"
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/ports"
	"localeats/internal/pkg/errs"
)

// memoryStore is a race-safe order store with the same conditional write
// semantics as the SQL repository.
type memoryStore struct {
	mu      sync.Mutex
	orders  map[kernel.UUID]*order.Order
	history []order.StatusChange
}

func newMemoryStore(seed ...*order.Order) *memoryStore {
	s := &memoryStore{orders: make(map[kernel.UUID]*order.Order)}
	for _, o := range seed {
		s.orders[o.ID()] = cloneOrder(o)
	}
	return s
}

func cloneOrder(o *order.Order) *order.Order {
	clone, err := order.RestoreOrder(o.ID(), o.Customer(), o.RestaurantID(), o.RestaurantName(), o.Driver(),
		o.Items(), o.Total(), o.PaymentMethod(), o.Status(), o.CreatedAt(), o.UpdatedAt())
	if err != nil {
		panic(err)
	}
	return clone
}

func (s *memoryStore) Create() commands.UoW {
	return memoryUoW{store: s}
}

func (s *memoryStore) snapshot(id kernel.UUID) *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneOrder(s.orders[id])
}

type memoryUoW struct {
	store *memoryStore
}

func (u memoryUoW) Begin(context.Context) error    { return nil }
func (u memoryUoW) Commit(context.Context) error   { return nil }
func (u memoryUoW) Rollback(context.Context) error { return nil }

func (u memoryUoW) OrderRepository() ports.OrderRepository { return memoryOrderRepository(u) }
func (u memoryUoW) RestaurantRepository() ports.RestaurantRepository {
	return nil
}
func (u memoryUoW) UserRepository() ports.UserRepository { return nil }

type memoryOrderRepository memoryUoW

func (r memoryOrderRepository) Add(_ context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o.Stamp(time.Now())
	r.store.orders[o.ID()] = cloneOrder(o)
	return nil
}

func (r memoryOrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return cloneOrder(o), nil
}

func (r memoryOrderRepository) Find(context.Context, ports.OrderFilter, ports.OrderSort) ([]*order.Order, error) {
	return nil, nil
}

func (r memoryOrderRepository) CompareAndSwap(_ context.Context, o *order.Order, expected order.Precondition) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.orders[o.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("order", o.ID().String())
	}
	if !expected.HoldsFor(stored) {
		return errs.NewConflictError("order", o.ID().String(), "order changed concurrently")
	}
	o.Stamp(time.Now())
	r.store.orders[o.ID()] = cloneOrder(o)
	return nil
}

func (r memoryOrderRepository) AddStatusChange(_ context.Context, change order.StatusChange) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.history = append(r.store.history, change)
	return nil
}

func (r memoryOrderRepository) StatusHistory(_ context.Context, id kernel.UUID) ([]order.StatusChange, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []order.StatusChange
	for _, change := range r.store.history {
		if change.OrderID.IsEqual(id) {
			out = append(out, change)
		}
	}
	return out, nil
}
