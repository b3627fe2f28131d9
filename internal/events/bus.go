// Package events publishes network mutations to interested subscribers.
package events

import (
	"sync"
	"time"
)

// Type identifies what happened in the network.
type Type string

const (
	MemberAdded       Type = "member_added"
	MemberUpdated     Type = "member_updated"
	MemberRemoved     Type = "member_removed"
	ConnectionAdded   Type = "connection_added"
	ConnectionRemoved Type = "connection_removed"
	InterestAdded     Type = "interest_added"
	InterestRemoved   Type = "interest_removed"
	ActivityPosted    Type = "activity_posted"
	ActivityEvicted   Type = "activity_evicted"
	MessageSent       Type = "message_sent"
	MessageEvicted    Type = "message_evicted"
	MailboxDrained    Type = "mailbox_drained"
)

// Types lists every event type in declaration order.
var Types = []Type{
	MemberAdded, MemberUpdated, MemberRemoved,
	ConnectionAdded, ConnectionRemoved,
	InterestAdded, InterestRemoved,
	ActivityPosted, ActivityEvicted,
	MessageSent, MessageEvicted, MailboxDrained,
}

// Event is a single published mutation. Subject is the identity the event
// is about; Data carries operation specific fields.
type Event struct {
	Type      Type
	Timestamp time.Time
	Subject   string
	Data      map[string]string
}

// Handler handles events.
type Handler func(Event)

// Bus fans events out to subscribers synchronously, in subscription order.
type Bus struct {
	mu          sync.RWMutex
	handlers    map[Type][]Handler
	allHandlers []Handler
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(t Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], handler)
}

// SubscribeAll registers a handler for every event type.
func (b *Bus) SubscribeAll(handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allHandlers = append(b.allHandlers, handler)
}

// Publish delivers the event to type-specific handlers, then to catch-all
// handlers. A zero Timestamp is set to now.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	for _, handler := range b.handlers[event.Type] {
		handler(event)
	}
	for _, handler := range b.allHandlers {
		handler(event)
	}
}

// Emit is shorthand for publishing an event with optional key/value pairs.
// A trailing odd key is ignored.
func (b *Bus) Emit(t Type, subject string, kv ...string) {
	var data map[string]string
	if len(kv) > 1 {
		data = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			data[kv[i]] = kv[i+1]
		}
	}
	b.Publish(Event{Type: t, Subject: subject, Data: data})
}
