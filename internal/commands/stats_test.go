package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nursultanov/glance/internal/analytics"
	"github.com/nursultanov/glance/internal/category"
	"github.com/nursultanov/glance/internal/db"
	"github.com/nursultanov/glance/internal/event"
	"github.com/nursultanov/glance/internal/notify"
	"github.com/nursultanov/glance/internal/tracker"
)

func newRecordTestApp(t *testing.T) *app {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "glance.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	bus := event.NewBus(nil, nil)
	goals := tracker.NewGoalSet(bus)
	if err := goals.SetTarget(category.Work, 30); err != nil {
		t.Fatalf("set target: %v", err)
	}

	a := &app{
		store:      store,
		bus:        bus,
		goals:      goals,
		tracker:    tracker.New(goals),
		analytics:  analytics.NewService(store, bus),
		dispatcher: notify.NewDispatcher(bus, store),
	}
	t.Cleanup(a.close)
	return a
}

func TestRecordTodayRollupPublishesNoGoalEvents(t *testing.T) {
	t.Parallel()
	a := newRecordTestApp(t)

	start := time.Now().Add(-time.Second)
	finished := start.Add(45 * time.Minute)
	session := &tracker.Session{
		ID:              uuid.New(),
		Category:        category.Work,
		StartedAt:       start,
		FinishedAt:      &finished,
		DurationSeconds: 45 * 60,
		Productivity:    tracker.ProductivityMedium,
	}
	if _, err := a.store.SaveSession(session); err != nil {
		t.Fatalf("save session: %v", err)
	}

	// Rolling up twice replays the same goal-crossing sessions; the
	// persistent history must not gain a completion row either time.
	if err := recordToday(a); err != nil {
		t.Fatalf("first rollup: %v", err)
	}
	if err := recordToday(a); err != nil {
		t.Fatalf("second rollup: %v", err)
	}

	record, err := a.store.DailyRecordByDate(time.Now().Format("2006-01-02"))
	if err != nil {
		t.Fatalf("daily record: %v", err)
	}
	if record == nil || !record.AllGoalsMet {
		t.Fatalf("rollup did not mark the day achieved: %+v", record)
	}

	history, err := a.store.Notifications()
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	for _, n := range history {
		if n.Type == "goal_completed" {
			t.Fatalf("rollup replayed a completion into history: %+v", history)
		}
	}
}

func TestRecordTodayLeavesLiveGoalsUntouched(t *testing.T) {
	t.Parallel()
	a := newRecordTestApp(t)

	start := time.Now().Add(-time.Second)
	finished := start.Add(10 * time.Minute)
	session := &tracker.Session{
		ID:              uuid.New(),
		Category:        category.Work,
		StartedAt:       start,
		FinishedAt:      &finished,
		DurationSeconds: 10 * 60,
		Productivity:    tracker.ProductivityMedium,
	}
	if _, err := a.store.SaveSession(session); err != nil {
		t.Fatalf("save session: %v", err)
	}

	if err := recordToday(a); err != nil {
		t.Fatalf("rollup: %v", err)
	}

	if got := a.goals.Snapshot()[0].CurrentMinutes; got != 0 {
		t.Fatalf("rollup leaked %v minutes into the live goal set", got)
	}
}
