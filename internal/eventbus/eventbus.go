// Package eventbus provides the in-process publish/subscribe bus carrying
// model lifecycle events from the service to subscribers such as the
// metrics collector.
package eventbus

import "sync"

// DefaultBuffer is the per-subscriber channel capacity used by New.
const DefaultBuffer = 16

// Event is any value published on the bus.
type Event interface{}

// EventBus fans published events out to every subscriber.
type EventBus interface {
	Publish(Event)
	Subscribe() <-chan Event
	Unsubscribe(<-chan Event)
	Close()
}

// Bus is the channel-based EventBus implementation. Delivery is best effort:
// a subscriber that falls behind its buffer loses events rather than
// blocking the publisher.
type Bus struct {
	mu     sync.RWMutex
	buffer int
	subs   []chan Event
	closed bool
}

// New returns a Bus with the default per-subscriber buffer.
func New() *Bus { return NewBuffered(DefaultBuffer) }

// NewBuffered returns a Bus whose subscriber channels hold up to size
// pending events each.
func NewBuffered(size int) *Bus {
	if size < 1 {
		size = 1
	}
	return &Bus{buffer: size}
}

// Publish delivers the event to every subscriber without blocking.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe registers a subscriber and returns its receive channel. After
// Close the returned channel is already closed.
func (b *Bus) Subscribe() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan Event, b.buffer)
	if b.closed {
		close(ch)
	} else {
		b.subs = append(b.subs, ch)
	}
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *Bus) Unsubscribe(sub <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, ch := range b.subs {
		if ch == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(ch)
			return
		}
	}
}

// Close closes every subscriber channel. Events already buffered remain
// readable; further Publish calls are dropped.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
