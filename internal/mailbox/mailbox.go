// Package mailbox implements per-recipient message queues.
//
// Each mailbox is a FIFO bounded by the same kind of limit as the activity
// feed: once a mailbox is full, sending evicts its oldest unread message.
// Receiving drains the mailbox.
package mailbox

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the per-mailbox message limit.
const DefaultCapacity = 1000

// Message is a direct message between two identities.
type Message struct {
	ID       string    `json:"id"`
	Sender   string    `json:"sender"`
	Receiver string    `json:"receiver"`
	Text     string    `json:"text"`
	SentAt   time.Time `json:"sent_at"`
}

// Store holds one queue per receiver.
type Store struct {
	mu       sync.Mutex
	queues   map[string][]Message
	capacity int
}

// New creates a store whose mailboxes each hold at most capacity messages.
// A non-positive capacity falls back to DefaultCapacity.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		queues:   make(map[string][]Message),
		capacity: capacity,
	}
}

// Send queues a message for receiver. The second result reports whether the
// receiver's oldest message was evicted to make room.
func (s *Store) Send(sender, receiver, text string) (Message, bool) {
	msg := Message{
		ID:       uuid.NewString(),
		Sender:   sender,
		Receiver: receiver,
		Text:     text,
		SentAt:   time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.queues[receiver]
	evicted := false
	if len(q) >= s.capacity {
		q = q[len(q)-s.capacity+1:]
		evicted = true
	}
	s.queues[receiver] = append(q, msg)
	return msg, evicted
}

// Receive returns every queued message for receiver in send order and
// empties the mailbox. An empty or unknown mailbox yields an empty slice.
func (s *Store) Receive(receiver string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.queues[receiver]
	delete(s.queues, receiver)
	if q == nil {
		return []Message{}
	}
	return q
}

// Pending returns the number of unread messages for receiver.
func (s *Store) Pending(receiver string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queues[receiver])
}

// Total returns the number of unread messages across all mailboxes.
func (s *Store) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, q := range s.queues {
		n += len(q)
	}
	return n
}

func (s *Store) Capacity() int {
	return s.capacity
}
