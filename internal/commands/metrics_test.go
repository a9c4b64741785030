package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nursultanov/glance/internal/category"
	"github.com/nursultanov/glance/internal/event"
)

func TestDumpMetricsRendersBusCounters(t *testing.T) {
	t.Parallel()
	registry := prometheus.NewRegistry()
	bus := event.NewBus(registry, nil)

	event.Subscribe(bus, func(event.GoalCompleted) {})
	event.Publish(bus, event.GoalCompleted{Category: category.Work, TargetMinutes: 30})

	var buf bytes.Buffer
	if err := dumpMetrics(&buf, registry); err != nil {
		t.Fatalf("dump metrics: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "glance_events_published_total") {
		t.Fatalf("dump is missing the published counter:\n%s", out)
	}
	if !strings.Contains(out, "glance_events_delivered_total") {
		t.Fatalf("dump is missing the delivered counter:\n%s", out)
	}
	if !strings.Contains(out, `event_type="GoalCompleted"`) {
		t.Fatalf("dump is missing the event type label:\n%s", out)
	}
}
