// Package feed implements the bounded activity feed.
package feed

import (
	"iter"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the number of entries kept before the oldest is evicted.
const DefaultCapacity = 1000

// Entry is one posted activity.
type Entry struct {
	ID       string    `json:"id"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PostedAt time.Time `json:"posted_at"`
}

// Feed is a fixed-capacity ring of entries in posting order.
type Feed struct {
	mu    sync.RWMutex
	buf   []Entry
	head  int // index of the oldest entry
	size  int
	clock func() time.Time
}

// New creates a feed holding at most capacity entries.
// A non-positive capacity falls back to DefaultCapacity.
func New(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{
		buf:   make([]Entry, capacity),
		clock: time.Now,
	}
}

// Post appends an entry. When the feed is full the oldest entry is evicted
// first; the second result reports whether that happened.
func (f *Feed) Post(author, text string) (Entry, bool) {
	e := Entry{
		ID:       uuid.NewString(),
		Author:   author,
		Text:     text,
		PostedAt: f.clock(),
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	evicted := false
	if f.size == len(f.buf) {
		f.buf[f.head] = Entry{}
		f.head = (f.head + 1) % len(f.buf)
		f.size--
		evicted = true
	}
	f.buf[(f.head+f.size)%len(f.buf)] = e
	f.size++
	return e, evicted
}

// All returns the current entries oldest first. The sequence reads a
// snapshot taken when All is called, so it can be ranged over repeatedly and
// is unaffected by later posts.
func (f *Feed) All() iter.Seq[Entry] {
	snapshot := f.snapshot()
	return func(yield func(Entry) bool) {
		for _, e := range snapshot {
			if !yield(e) {
				return
			}
		}
	}
}

func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.size
}

func (f *Feed) Cap() int {
	return len(f.buf)
}

func (f *Feed) snapshot() []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Entry, f.size)
	for i := range f.size {
		out[i] = f.buf[(f.head+i)%len(f.buf)]
	}
	return out
}
