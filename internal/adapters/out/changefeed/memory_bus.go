package changefeed

import (
	"context"
	"sync"

	"localeats/internal/core/ports"
)

var _ ports.OrderChangeBus = (*MemoryBus)(nil)

// MemoryBus delivers changes to listeners of the same process. Handlers
// run on the publishing goroutine and must not block.
type MemoryBus struct {
	mu       sync.RWMutex
	next     int
	handlers map[int]func(ports.OrderChange)
	closed   chan struct{}
	once     sync.Once
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[int]func(ports.OrderChange)),
		closed:   make(chan struct{}),
	}
}

func (b *MemoryBus) Publish(_ context.Context, change ports.OrderChange) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, handler := range b.handlers {
		handler(change)
	}
	return nil
}

// Listen registers handler and blocks until ctx is done or the bus is
// closed.
func (b *MemoryBus) Listen(ctx context.Context, handler func(ports.OrderChange)) error {
	b.mu.Lock()
	id := b.next
	b.next++
	b.handlers[id] = handler
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}()

	select {
	case <-ctx.Done():
	case <-b.closed:
	}
	return nil
}

// Listeners reports how many Listen calls are currently registered.
func (b *MemoryBus) Listeners() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}

func (b *MemoryBus) Close() error {
	b.once.Do(func() { close(b.closed) })
	return nil
}
