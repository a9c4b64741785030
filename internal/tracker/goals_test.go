package tracker

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nursultanov/glance/internal/category"
	"github.com/nursultanov/glance/internal/event"
)

// collectCompletions subscribes a recorder for GoalCompleted events.
func collectCompletions(bus *event.Bus) *[]event.GoalCompleted {
	var got []event.GoalCompleted
	event.Subscribe(bus, func(e event.GoalCompleted) {
		got = append(got, e)
	})
	return &got
}

func TestApplyDeltaChunkingSumsExactly(t *testing.T) {
	t.Parallel()
	goals := NewGoalSet(nil)
	if err := goals.SetTarget(category.Work, 1000); err != nil {
		t.Fatalf("set target: %v", err)
	}

	// 90 minutes total, in uneven chunks
	chunks := []float64{0.5, 30, 1.0 / 60.0, 59, 29.0 / 60.0, 0}
	total := 0.0
	for _, c := range chunks {
		goals.ApplyDelta(category.Work, c)
		total += c
	}

	got := goals.Snapshot()[0]
	if math.Abs(got.CurrentMinutes-total) > 1e-9 {
		t.Fatalf("current = %v, want %v regardless of chunking", got.CurrentMinutes, total)
	}
}

func TestCompletedMatchesCurrentVersusTarget(t *testing.T) {
	t.Parallel()
	goals := NewGoalSet(nil)
	if err := goals.SetTarget(category.Work, 30); err != nil {
		t.Fatalf("set target: %v", err)
	}
	if err := goals.SetTarget(category.Study, 10); err != nil {
		t.Fatalf("set target: %v", err)
	}

	goals.ApplyDelta(category.Work, 29.9)
	goals.ApplyDelta(category.Study, 10)

	for _, g := range goals.Snapshot() {
		want := g.CurrentMinutes >= float64(g.TargetMinutes)
		if g.Completed != want {
			t.Fatalf("%s: completed=%v with current=%v target=%d",
				g.Category, g.Completed, g.CurrentMinutes, g.TargetMinutes)
		}
	}
}

func TestCompletionEventFiresExactlyOnce(t *testing.T) {
	t.Parallel()
	bus := event.NewBus(nil, nil)
	got := collectCompletions(bus)

	goals := NewGoalSet(bus)
	if err := goals.SetTarget(category.Work, 2); err != nil {
		t.Fatalf("set target: %v", err)
	}

	goals.ApplyDelta(category.Work, 1)
	if len(*got) != 0 {
		t.Fatalf("premature completion event: %v", *got)
	}
	goals.ApplyDelta(category.Work, 1)
	goals.ApplyDelta(category.Work, 5)

	want := []event.GoalCompleted{{Category: category.Work, TargetMinutes: 2}}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Fatalf("completion events mismatch (-want +got):\n%s", diff)
	}
}

func TestLoweredTargetCompletesSilently(t *testing.T) {
	t.Parallel()
	bus := event.NewBus(nil, nil)
	got := collectCompletions(bus)

	goals := NewGoalSet(bus)
	if err := goals.SetTarget(category.Work, 60); err != nil {
		t.Fatalf("set target: %v", err)
	}
	goals.ApplyDelta(category.Work, 30)

	// Lowering the target below current progress marks the goal complete
	// without a notification.
	if err := goals.SetTarget(category.Work, 20); err != nil {
		t.Fatalf("lower target: %v", err)
	}

	g := goals.Snapshot()[0]
	if !g.Completed {
		t.Fatal("goal not marked complete after target lowered below progress")
	}
	if len(*got) != 0 {
		t.Fatalf("lowered target must not emit completion events, got %v", *got)
	}
}

func TestRestoreProgressIsSilent(t *testing.T) {
	t.Parallel()
	bus := event.NewBus(nil, nil)
	got := collectCompletions(bus)

	goals := NewGoalSet(bus)
	if err := goals.SetTarget(category.Work, 30); err != nil {
		t.Fatalf("set target: %v", err)
	}

	goals.RestoreProgress(category.Work, 45)

	g := goals.Snapshot()[0]
	if g.CurrentMinutes != 45 || !g.Completed {
		t.Fatalf("restored goal = %+v, want 45 min and complete", g)
	}
	if len(*got) != 0 {
		t.Fatalf("restoring progress must not emit completion events, got %v", *got)
	}

	// Restoring never decreases progress.
	goals.RestoreProgress(category.Work, 10)
	if goals.Snapshot()[0].CurrentMinutes != 45 {
		t.Fatalf("restore decreased progress to %v", goals.Snapshot()[0].CurrentMinutes)
	}

	// Untracked categories are a no-op.
	goals.RestoreProgress(category.Study, 5)
	if len(goals.Snapshot()) != 1 {
		t.Fatalf("restore created a goal: %+v", goals.Snapshot())
	}
}

func TestUnknownCategoryDeltaIsNoOp(t *testing.T) {
	t.Parallel()
	goals := NewGoalSet(nil)
	if err := goals.SetTarget(category.Work, 30); err != nil {
		t.Fatalf("set target: %v", err)
	}

	goals.ApplyDelta(category.Study, 10)              // known but untracked
	goals.ApplyDelta(category.Category("gaming"), 10) // outside the closed set

	snap := goals.Snapshot()
	if len(snap) != 1 || snap[0].CurrentMinutes != 0 {
		t.Fatalf("untracked deltas changed state: %+v", snap)
	}
}

func TestSetTargetRejectsNegative(t *testing.T) {
	t.Parallel()
	goals := NewGoalSet(nil)
	if err := goals.SetTarget(category.Work, -1); err == nil {
		t.Fatal("negative target accepted")
	}
	if err := goals.SetTarget(category.Category("nope"), 10); err == nil {
		t.Fatal("unknown category accepted")
	}
}

func TestResetAllClearsAndIsIdempotent(t *testing.T) {
	t.Parallel()
	bus := event.NewBus(nil, nil)
	var resets int
	event.Subscribe(bus, func(event.GoalsReset) { resets++ })

	goals := NewGoalSet(bus)
	if err := goals.SetTarget(category.Work, 10); err != nil {
		t.Fatalf("set target: %v", err)
	}
	if err := goals.SetTarget(category.Study, 5); err != nil {
		t.Fatalf("set target: %v", err)
	}
	goals.ApplyDelta(category.Work, 15)
	goals.ApplyDelta(category.Study, 7)

	goals.ResetAll()
	goals.ResetAll()

	for _, g := range goals.Snapshot() {
		if g.CurrentMinutes != 0 || g.Completed {
			t.Fatalf("%s not reset: %+v", g.Category, g)
		}
	}
	if resets != 2 {
		t.Fatalf("got %d GoalsReset events, want one per call", resets)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	t.Parallel()
	goals := NewGoalSet(nil)
	if err := goals.SetTarget(category.Work, 10); err != nil {
		t.Fatalf("set target: %v", err)
	}

	snap := goals.Snapshot()
	snap[0].CurrentMinutes = 999

	if goals.Snapshot()[0].CurrentMinutes != 0 {
		t.Fatal("mutating a snapshot leaked into internal state")
	}
}

func TestAllCompleted(t *testing.T) {
	t.Parallel()
	goals := NewGoalSet(nil)
	if goals.AllCompleted() {
		t.Fatal("empty goal set must not count as all completed")
	}

	if err := goals.SetTarget(category.Work, 1); err != nil {
		t.Fatalf("set target: %v", err)
	}
	if err := goals.SetTarget(category.Study, 1); err != nil {
		t.Fatalf("set target: %v", err)
	}
	goals.ApplyDelta(category.Work, 2)
	if goals.AllCompleted() {
		t.Fatal("one incomplete goal, AllCompleted = true")
	}
	goals.ApplyDelta(category.Study, 2)
	if !goals.AllCompleted() {
		t.Fatal("all goals complete, AllCompleted = false")
	}
}
