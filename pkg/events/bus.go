package events

import (
	"sync"

	"github.com/jscyril/golang_video_player/api"
)

// Ensure Subscription implements api.Subscription at compile time
var _ api.Subscription = (*Subscription)(nil)

// EventBus handles event distribution using channels
type EventBus struct {
	subscribers map[api.EventType][]*Subscription
	mu          sync.RWMutex
	closed      bool
}

// Subscription is the set of registrations made by one Subscribe call.
type Subscription struct {
	bus  *EventBus
	ch   chan api.MediaEvent
	once sync.Once
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[api.EventType][]*Subscription),
	}
}

// Subscribe returns a subscription receiving events of the given types.
// With no types it receives every event type.
func (b *EventBus) Subscribe(types ...api.EventType) *Subscription {
	if len(types) == 0 {
		types = api.AllEvents()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &Subscription{bus: b, ch: make(chan api.MediaEvent, 32)}
	if b.closed {
		sub.once.Do(func() { close(sub.ch) })
		return sub
	}
	for _, eventType := range types {
		b.subscribers[eventType] = append(b.subscribers[eventType], sub)
	}
	return sub
}

// Publish broadcasts an event to all subscribers of that event type
func (b *EventBus) Publish(event api.MediaEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers[event.Type] {
		select {
		case sub.ch <- event:
		default:
			// Channel full, skip to prevent blocking
		}
	}
}

// Events returns the channel events are delivered on.
func (s *Subscription) Events() <-chan api.MediaEvent {
	return s.ch
}

// Unsubscribe removes every registration of s and closes its channel.
// It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.bus.remove(s)
}

func (b *EventBus) remove(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.subscribers {
		for i, sub := range subs {
			if sub == s {
				b.subscribers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
	s.once.Do(func() { close(s.ch) })
}

// Close closes all subscriber channels
func (b *EventBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, subs := range b.subscribers {
		for _, sub := range subs {
			sub.once.Do(func() { close(sub.ch) })
		}
	}
	b.subscribers = make(map[api.EventType][]*Subscription)
	b.closed = true
}
