package changefeed_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/ports"
	"localeats/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

// fakeReader is an in-memory OrderReader that counts queries.
type fakeReader struct {
	mu      sync.Mutex
	orders  map[kernel.UUID]*order.Order
	queries int
}

func newFakeReader() *fakeReader {
	return &fakeReader{orders: make(map[kernel.UUID]*order.Order)}
}

func (r *fakeReader) put(o *order.Order) ports.OrderChange {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID()] = o
	return ports.OrderChangeFrom(o)
}

func (r *fakeReader) queryCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.queries
}

func (r *fakeReader) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}

func (r *fakeReader) Find(_ context.Context, filter ports.OrderFilter, s ports.OrderSort) ([]*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries++
	out := make([]*order.Order, 0)
	for _, o := range r.orders {
		if filter.Matches(ports.OrderChangeFrom(o)) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if s == ports.NewestFirst {
			return out[i].CreatedAt().After(out[j].CreatedAt())
		}
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out, nil
}

func (r *fakeReader) StatusHistory(context.Context, kernel.UUID) ([]order.StatusChange, error) {
	return []order.StatusChange{}, nil
}

func newReadyOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Burrito", kernel.MustMoney("8.00"), 1)
	require.NoError(t, err)
	o, err := order.NewOrder(
		kernel.NewUUID(),
		order.Customer{ID: kernel.NewUUID(), Name: "Cara", Phone: "555-0100", Address: "2 Elm St"},
		kernel.NewUUID(),
		"Taco Stand",
		[]order.Item{item},
		order.Cash,
	)
	require.NoError(t, err)
	require.NoError(t, o.Confirm())
	require.NoError(t, o.StartPreparing())
	require.NoError(t, o.MarkReady())
	return o
}
