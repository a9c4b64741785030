package event

import "github.com/prometheus/client_golang/prometheus"

type busMetrics struct {
	published *prometheus.CounterVec
	delivered *prometheus.CounterVec
}

func newBusMetrics(registry *prometheus.Registry) *busMetrics {
	if registry == nil {
		return nil
	}

	m := &busMetrics{
		published: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glance_events_published_total",
				Help: "Total number of events published by event type",
			},
			[]string{"event_type"},
		),
		delivered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glance_events_delivered_total",
				Help: "Total number of events delivered by event type",
			},
			[]string{"event_type"},
		),
	}

	registry.MustRegister(m.published, m.delivered)

	return m
}

func (m *busMetrics) IncrementPublished(eventType string) {
	if m != nil && m.published != nil {
		m.published.WithLabelValues(eventType).Inc()
	}
}

func (m *busMetrics) IncrementDelivered(eventType string) {
	if m != nil && m.delivered != nil {
		m.delivered.WithLabelValues(eventType).Inc()
	}
}
