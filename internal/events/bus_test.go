package events

import (
	"sync"
	"testing"
	"time"
)

func TestNewBus(t *testing.T) {
	b := NewBus()
	if b == nil {
		t.Fatal("expected non-nil Bus")
	}
	if b.handlers == nil {
		t.Fatal("expected non-nil handlers map")
	}
}

func TestBus_Subscribe(t *testing.T) {
	b := NewBus()
	called := false

	b.Subscribe(MemberAdded, func(e Event) {
		called = true
	})

	b.Publish(Event{Type: MemberAdded})

	if !called {
		t.Error("handler was not called")
	}
}

func TestBus_SubscribeAll(t *testing.T) {
	b := NewBus()
	count := 0

	b.SubscribeAll(func(e Event) {
		count++
	})

	b.Publish(Event{Type: MemberAdded})
	b.Publish(Event{Type: ConnectionAdded})
	b.Publish(Event{Type: MailboxDrained})

	if count != 3 {
		t.Errorf("expected 3 calls, got %d", count)
	}
}

func TestBus_Emit(t *testing.T) {
	b := NewBus()
	var received Event

	b.Subscribe(ConnectionAdded, func(e Event) {
		received = e
	})

	b.Emit(ConnectionAdded, "alice", "peer", "bob", "dangling")

	if received.Subject != "alice" {
		t.Errorf("expected subject 'alice', got %q", received.Subject)
	}
	if received.Data["peer"] != "bob" {
		t.Errorf("expected peer 'bob', got %q", received.Data["peer"])
	}
	if len(received.Data) != 1 {
		t.Errorf("expected odd trailing key to be dropped, got %v", received.Data)
	}
}

func TestBus_EmitWithoutData(t *testing.T) {
	b := NewBus()
	var received Event
	b.SubscribeAll(func(e Event) { received = e })

	b.Emit(MailboxDrained, "bob")

	if received.Type != MailboxDrained {
		t.Errorf("expected MailboxDrained, got %v", received.Type)
	}
	if received.Data != nil {
		t.Errorf("expected nil data, got %v", received.Data)
	}
}

func TestBus_TimestampAutoSet(t *testing.T) {
	b := NewBus()
	var received Event

	b.Subscribe(ActivityPosted, func(e Event) {
		received = e
	})

	before := time.Now()
	b.Publish(Event{Type: ActivityPosted})
	after := time.Now()

	if received.Timestamp.Before(before) || received.Timestamp.After(after) {
		t.Error("timestamp not set correctly")
	}
}

func TestBus_DifferentEventTypes(t *testing.T) {
	b := NewBus()
	addCalled := false
	removeCalled := false

	b.Subscribe(InterestAdded, func(e Event) {
		addCalled = true
	})
	b.Subscribe(InterestRemoved, func(e Event) {
		removeCalled = true
	})

	b.Publish(Event{Type: InterestAdded})

	if !addCalled {
		t.Error("add handler was not called")
	}
	if removeCalled {
		t.Error("remove handler should not have been called")
	}
}

func TestBus_ConcurrentPublish(t *testing.T) {
	b := NewBus()
	var count int
	var mu sync.Mutex

	b.SubscribeAll(func(e Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Publish(Event{Type: MessageSent})
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if count != 100 {
		t.Errorf("expected 100 events, got %d", count)
	}
}

func TestTypes_Complete(t *testing.T) {
	seen := make(map[Type]bool)
	for _, et := range Types {
		if string(et) == "" {
			t.Error("event type should not be empty")
		}
		if seen[et] {
			t.Errorf("duplicate event type %q", et)
		}
		seen[et] = true
	}
	if len(Types) != 12 {
		t.Errorf("expected 12 event types, got %d", len(Types))
	}
}
