// Package changefeed turns order change notifications into live query
// results. The Hub keeps one goroutine per subscription and re-runs its
// query whenever a change may affect it; a bus carries the notifications
// between service instances.
package changefeed

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/ports"
)

var ErrHubClosed = errors.New("order feed is closed")

var (
	_ ports.OrderFeed          = (*Hub)(nil)
	_ ports.OrderFeedRefresher = (*Hub)(nil)
)

// Hub implements ports.OrderFeed on top of an OrderReader.
type Hub struct {
	reader ports.OrderReader
	logger *slog.Logger

	// base outlives the callers of Subscribe and is cancelled by Close.
	base   context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	subs   map[*subscription]struct{}
	closed bool
	wg     sync.WaitGroup
}

func NewHub(reader ports.OrderReader, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	base, cancel := context.WithCancel(context.Background())
	return &Hub{
		reader: reader,
		logger: logger.With("component", "order_feed"),
		base:   base,
		cancel: cancel,
		subs:   make(map[*subscription]struct{}),
	}
}

// Subscribe runs the query, hands the result to callback and keeps
// calling it with fresh results until the subscription is closed. The
// first call happens before Subscribe returns.
func (h *Hub) Subscribe(
	ctx context.Context,
	filter ports.OrderFilter,
	sort ports.OrderSort,
	callback func([]*order.Order),
) (ports.Subscription, error) {
	if callback == nil {
		return nil, errors.New("order feed callback is required")
	}

	sub := &subscription{
		hub:      h,
		filter:   filter,
		sort:     sort,
		callback: callback,
		signal:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrHubClosed
	}
	// Registered before the first read so a change committed in between
	// still triggers a refresh. The goroutine is counted while closed is
	// known to be false, so Close cannot already be waiting.
	h.subs[sub] = struct{}{}
	h.wg.Add(1)
	h.mu.Unlock()

	snapshot, err := h.reader.Find(ctx, filter, sort)
	if err != nil {
		h.remove(sub)
		h.wg.Done()
		return nil, err
	}
	sub.deliver(snapshot)

	go sub.run()
	return sub, nil
}

// Handle routes one change notification. Subscriptions whose filter
// matches the new state, or whose last result contained the order, are
// scheduled for a refresh.
func (h *Hub) Handle(change ports.OrderChange) {
	for _, sub := range h.snapshot() {
		if sub.filter.Matches(change) || sub.contains(change.OrderID) {
			sub.notify()
		}
	}
}

// Refresh schedules every subscription whose filter satisfies match.
func (h *Hub) Refresh(_ context.Context, match func(ports.OrderFilter) bool) {
	for _, sub := range h.snapshot() {
		if match == nil || match(sub.filter) {
			sub.notify()
		}
	}
}

// Run feeds the hub from bus until ctx is done.
func (h *Hub) Run(ctx context.Context, bus ports.OrderChangeBus) error {
	return bus.Listen(ctx, h.Handle)
}

// Len reports the number of open subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close ends every subscription and waits for their goroutines.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	subs := make([]*subscription, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	h.cancel()
	for _, sub := range subs {
		sub.Close()
	}
	h.wg.Wait()
}

func (h *Hub) snapshot() []*subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := make([]*subscription, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	return subs
}

func (h *Hub) remove(sub *subscription) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
}

type subscription struct {
	hub      *Hub
	filter   ports.OrderFilter
	sort     ports.OrderSort
	callback func([]*order.Order)

	// signal holds at most one pending refresh; further changes coalesce.
	signal chan struct{}
	done   chan struct{}
	once   sync.Once

	// deliverMu serialises callbacks with Close.
	deliverMu sync.Mutex
	closed    bool

	mu   sync.Mutex
	last map[kernel.UUID]struct{}
}

// Close waits for a callback in progress and guarantees no callback runs
// after it returns. It must not be called from inside the callback.
func (s *subscription) Close() {
	s.once.Do(func() {
		s.deliverMu.Lock()
		s.closed = true
		close(s.done)
		s.deliverMu.Unlock()
		s.hub.remove(s)
	})
}

func (s *subscription) notify() {
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *subscription) contains(id kernel.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.last[id]
	return ok
}

func (s *subscription) run() {
	defer s.hub.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case <-s.signal:
		}

		snapshot, err := s.hub.reader.Find(s.hub.base, s.filter, s.sort)
		if err != nil {
			if s.hub.base.Err() == nil {
				s.hub.logger.Warn("failed to refresh subscription", "error", err)
			}
			continue
		}

		s.deliver(snapshot)
	}
}

func (s *subscription) deliver(snapshot []*order.Order) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	if s.closed {
		return
	}

	ids := make(map[kernel.UUID]struct{}, len(snapshot))
	for _, o := range snapshot {
		ids[o.ID()] = struct{}{}
	}
	s.mu.Lock()
	s.last = ids
	s.mu.Unlock()

	s.callback(snapshot)
}
