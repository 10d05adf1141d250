// Package bus provides the process-internal invalidation channel used to
// decouple mutation origins from data-displaying consumers. Signals carry
// no payload; a signal means "re-fetch your data". Delivery is synchronous
// and in registration order, and a listener that subscribes after a signal
// was published never sees it.
package bus

import "sync"

// Signal identifies a broadcast kind
type Signal string

// TasksChanged is published after any mutation of the task collection
// that the mutating component did not apply to its own local state.
const TasksChanged Signal = "tasks_changed"

// Handler is invoked for each published signal a subscriber registered for
type Handler func(Signal)

// Bus is an in-process publish/subscribe channel
type Bus struct {
	mu     sync.Mutex
	nextID int64
	subs   map[Signal][]*Subscription
}

// Subscription is a handle to an active subscription. Holders must call
// Unsubscribe on teardown so listeners are not leaked.
type Subscription struct {
	bus     *Bus
	signal  Signal
	id      int64
	handler Handler
}

// New creates a new Bus
func New() *Bus {
	return &Bus{
		subs: make(map[Signal][]*Subscription),
	}
}

// Subscribe registers a handler for a signal and returns its subscription handle
func (b *Bus) Subscribe(signal Signal, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		bus:     b,
		signal:  signal,
		id:      b.nextID,
		handler: handler,
	}
	b.subs[signal] = append(b.subs[signal], sub)
	return sub
}

// Publish invokes all current subscribers of the signal synchronously,
// in registration order. Handlers run outside the bus lock, so a handler
// may itself publish or unsubscribe.
func (b *Bus) Publish(signal Signal) {
	b.mu.Lock()
	current := make([]*Subscription, len(b.subs[signal]))
	copy(current, b.subs[signal])
	b.mu.Unlock()

	for _, sub := range current {
		sub.handler(signal)
	}
}

// SubscriberCount returns the number of active subscriptions for a signal
func (b *Bus) SubscriberCount(signal Signal) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[signal])
}

// Unsubscribe removes the subscription from the bus. It is safe to call
// more than once.
func (s *Subscription) Unsubscribe() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()

	subs := s.bus.subs[s.signal]
	for i, sub := range subs {
		if sub.id == s.id {
			s.bus.subs[s.signal] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}
