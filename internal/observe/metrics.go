package observe

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "toxicmates"

// Metrics keeps counters and gauges in a private registry. Nothing is
// exported over HTTP; the stats command reads them through EventCounts.
type Metrics struct {
	registry *prometheus.Registry
	events   *prometheus.CounterVec
	feedSize prometheus.Gauge
	pending  prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Network events published, by type.",
		}, []string{"event"}),
		feedSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "feed_entries",
			Help:      "Entries currently held in the activity feed.",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_messages",
			Help:      "Unread messages across all mailboxes.",
		}),
	}
	m.registry.MustRegister(m.events, m.feedSize, m.pending)
	return m
}

func (m *Metrics) CountEvent(event string) {
	m.events.WithLabelValues(event).Inc()
}

func (m *Metrics) SetFeedSize(n int) {
	m.feedSize.Set(float64(n))
}

func (m *Metrics) SetPendingMessages(n int) {
	m.pending.Set(float64(n))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// EventCounts gathers the events counter into a map keyed by event type.
func (m *Metrics) EventCounts() (map[string]float64, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	for _, mf := range families {
		if mf.GetName() == namespace+"_events_total" {
			return eventCounts(mf), nil
		}
	}
	return map[string]float64{}, nil
}

func eventCounts(mf *dto.MetricFamily) map[string]float64 {
	counts := make(map[string]float64, len(mf.GetMetric()))
	for _, metric := range mf.GetMetric() {
		for _, label := range metric.GetLabel() {
			if label.GetName() == "event" {
				counts[label.GetValue()] = metric.GetCounter().GetValue()
			}
		}
	}
	return counts
}
