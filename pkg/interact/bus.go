package interact

import (
	"slices"

	"github.com/google/uuid"
)

// Handler receives a published event.
type Handler func(Event)

type subscription struct {
	id    uuid.UUID
	topic Topic
	fn    Handler
}

// Bus dispatches events to subscribers synchronously, in subscription order.
// Handlers may publish or unsubscribe from within a callback; such changes
// take effect for the next Publish.
//
// A Bus is meant to be driven from one event loop and is not safe for
// concurrent use.
type Bus struct {
	subs []subscription
}

// NewBus returns an empty bus.
func NewBus() *Bus { return &Bus{} }

// Subscribe registers fn for topic. An empty topic receives every event.
func (b *Bus) Subscribe(topic Topic, fn Handler) uuid.UUID {
	id := uuid.New()
	b.subs = append(b.subs, subscription{id: id, topic: topic, fn: fn})
	return id
}

// Unsubscribe removes a subscription and reports whether it existed.
func (b *Bus) Unsubscribe(id uuid.UUID) bool {
	i := slices.IndexFunc(b.subs, func(s subscription) bool { return s.id == id })
	if i < 0 {
		return false
	}
	b.subs = slices.Delete(slices.Clone(b.subs), i, i+1)
	return true
}

// Len returns the number of subscriptions.
func (b *Bus) Len() int { return len(b.subs) }

// Publish delivers ev and returns the number of handlers called.
func (b *Bus) Publish(ev Event) int {
	if ev == nil {
		return 0
	}
	n := 0
	for _, s := range b.subs {
		if s.topic == "" || s.topic == ev.Topic() {
			s.fn(ev)
			n++
		}
	}
	return n
}

// PublishAll delivers evs in order.
func (b *Bus) PublishAll(evs []Event) {
	for _, ev := range evs {
		b.Publish(ev)
	}
}
