package event

import "github.com/nursultanov/glance/internal/category"

// GoalCompleted is published exactly once when accumulated progress first
// reaches a goal's target for the day.
type GoalCompleted struct {
	Category      category.Category
	TargetMinutes int
}

// GoalsReset is published when all goal progress is cleared for a new day.
type GoalsReset struct{}

// StreakMilestoneReached is published when the current streak crosses a
// milestone threshold.
type StreakMilestoneReached struct {
	Count int
}
