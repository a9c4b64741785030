package tracker

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nursultanov/glance/internal/category"
	"github.com/nursultanov/glance/internal/event"
)

// Goal is the progress of one category against its daily target.
type Goal struct {
	Category       category.Category `json:"category"`
	TargetMinutes  int               `json:"target_minutes"`
	CurrentMinutes float64           `json:"current_minutes"`
	Completed      bool              `json:"completed"`
}

// GoalSet owns the per-category daily goals. All mutation goes through
// ApplyDelta, SetTarget and ResetAll; after every mutation
// completed == (current >= target) holds for every goal.
type GoalSet struct {
	mu    sync.Mutex
	goals map[category.Category]*Goal
	bus   *event.Bus
}

// NewGoalSet creates an empty goal set publishing on bus. bus may be nil
// when no one listens (tests).
func NewGoalSet(bus *event.Bus) *GoalSet {
	return &GoalSet{
		goals: make(map[category.Category]*Goal),
		bus:   bus,
	}
}

// SetTarget sets the daily target for a category, creating the goal if
// needed. Completion is recomputed against the unchanged progress; a
// lowered target that retroactively satisfies the goal marks it complete
// without publishing a completion event, so configuration changes never
// cause notification storms.
func (g *GoalSet) SetTarget(cat category.Category, targetMinutes int) error {
	if !category.Valid(cat) {
		return &category.ErrUnknown{Value: string(cat)}
	}
	if targetMinutes < 0 {
		return fmt.Errorf("target for %s must be non-negative, got %d", cat, targetMinutes)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	goal, ok := g.goals[cat]
	if !ok {
		goal = &Goal{Category: cat}
		g.goals[cat] = goal
	}
	goal.TargetMinutes = targetMinutes
	goal.Completed = goal.CurrentMinutes >= float64(goal.TargetMinutes)
	return nil
}

// ApplyDelta adds minutes of progress to a category. Unknown or untracked
// categories are a no-op. The completion event fires exactly on the
// false-to-true transition.
func (g *GoalSet) ApplyDelta(cat category.Category, minutes float64) {
	g.mu.Lock()
	goal, ok := g.goals[cat]
	if !ok {
		g.mu.Unlock()
		return
	}

	goal.CurrentMinutes += minutes
	wasCompleted := goal.Completed
	goal.Completed = goal.CurrentMinutes >= float64(goal.TargetMinutes)
	justCompleted := goal.Completed && !wasCompleted
	target := goal.TargetMinutes
	g.mu.Unlock()

	if justCompleted && g.bus != nil {
		event.Publish(g.bus, event.GoalCompleted{
			Category:      cat,
			TargetMinutes: target,
		})
	}
}

// RestoreProgress replaces a goal's progress from persisted state, for
// seeding at startup. Completion is recomputed without publishing, like
// SetTarget: restoring old state is not a qualifying transition. Progress
// never decreases; only ResetAll does that.
func (g *GoalSet) RestoreProgress(cat category.Category, minutes float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	goal, ok := g.goals[cat]
	if !ok || minutes <= goal.CurrentMinutes {
		return
	}
	goal.CurrentMinutes = minutes
	goal.Completed = goal.CurrentMinutes >= float64(goal.TargetMinutes)
}

// ResetAll clears all progress atomically for a new day. This is the only
// operation permitted to decrease a goal's progress. Idempotent.
func (g *GoalSet) ResetAll() {
	g.mu.Lock()
	for _, goal := range g.goals {
		goal.CurrentMinutes = 0
		goal.Completed = false
	}
	g.mu.Unlock()

	if g.bus != nil {
		event.Publish(g.bus, event.GoalsReset{})
	}
}

// Snapshot returns a copy of every goal, sorted by category for stable
// display. Internal state is never exposed.
func (g *GoalSet) Snapshot() []Goal {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Goal, 0, len(g.goals))
	for _, goal := range g.goals {
		out = append(out, *goal)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// AllCompleted reports whether every tracked goal is complete. An empty
// goal set is never "all completed".
func (g *GoalSet) AllCompleted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.goals) == 0 {
		return false
	}
	for _, goal := range g.goals {
		if !goal.Completed {
			return false
		}
	}
	return true
}
