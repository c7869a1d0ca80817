package payment

import (
	"sync"
)

// Sentinel is the single broadcast value signaling payment completion
const Sentinel = "PAYMENT_SUCCESS"

// Bus fans a sentinel out to every current subscriber. It offers no
// delivery guarantees: a sentinel published with no subscribers is lost,
// a slow subscriber misses sentinels, and nothing stops duplicates.
// Listeners own idempotency.
type Bus struct {
	mu   sync.Mutex
	subs map[int]chan string
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan string)}
}

// Subscribe returns a sentinel channel and a cancel func that releases it
func (b *Bus) Subscribe() (<-chan string, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan string, 4)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Publish broadcasts a sentinel without blocking; full subscribers drop it
func (b *Bus) Publish(sentinel string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- sentinel:
		default:
		}
	}
}
