package observe

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountEvent(t *testing.T) {
	m := NewMetrics()

	m.CountEvent("member_added")
	m.CountEvent("member_added")
	m.CountEvent("message_sent")

	if got := testutil.ToFloat64(m.events.WithLabelValues("member_added")); got != 2 {
		t.Errorf("expected 2 member_added, got %v", got)
	}

	counts, err := m.EventCounts()
	if err != nil {
		t.Fatalf("EventCounts failed: %v", err)
	}
	if counts["message_sent"] != 1 {
		t.Errorf("expected 1 message_sent, got %v", counts["message_sent"])
	}
	if _, ok := counts["mailbox_drained"]; ok {
		t.Error("expected no entry for an event that never fired")
	}
}

func TestMetrics_Gauges(t *testing.T) {
	m := NewMetrics()

	m.SetFeedSize(42)
	m.SetPendingMessages(7)

	if got := testutil.ToFloat64(m.feedSize); got != 42 {
		t.Errorf("expected feed size 42, got %v", got)
	}
	if got := testutil.ToFloat64(m.pending); got != 7 {
		t.Errorf("expected 7 pending, got %v", got)
	}
}

func TestMetrics_IsolatedRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.CountEvent("member_added")

	counts, _ := b.EventCounts()
	if len(counts) != 0 {
		t.Errorf("expected separate registries, got %v", counts)
	}
}
