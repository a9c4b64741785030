package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nursultanov/glance/internal/analytics"
	"github.com/nursultanov/glance/internal/category"
	"github.com/nursultanov/glance/internal/tracker"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streaks and productivity trend",
	Long: `Show streak and trend statistics derived from the daily history.

With --record, today's sessions are first rolled up into the daily
record so streaks and trends include the current day.`,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		if record, _ := cmd.Flags().GetBool("record"); record {
			if err := recordToday(a); err != nil {
				fmt.Printf("Error recording today: %v\n", err)
				return
			}
		}

		streak, err := a.analytics.StreakReport()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🔥 Streak: %d days (longest %d)\n", streak.Current, streak.Longest)
		if streak.LastAchievement != "" {
			fmt.Printf("Last full-goal day: %s\n", streak.LastAchievement)
		}

		days, _ := cmd.Flags().GetInt("days")
		trend, err := a.analytics.TrendReport(days)
		if err == analytics.ErrNoScores {
			fmt.Println("No daily records yet - track something first.")
			return
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		arrow := map[analytics.Direction]string{
			analytics.TrendUp:     "📈 up",
			analytics.TrendDown:   "📉 down",
			analytics.TrendStable: "➡️ stable",
		}[trend.Direction]
		fmt.Printf("Trend: %s (change %d)\n", arrow, trend.Change)
	}),
}

// recordToday recomputes today's goal progress from the saved sessions
// and writes the daily record. The rollup runs on a detached goal set:
// replaying sessions that already completed a goal live must not re-fire
// completion notifications.
func recordToday(a *app) error {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sessions, err := a.store.SessionsInRange(dayStart, now)
	if err != nil {
		return err
	}

	rollup := tracker.NewGoalSet(nil)
	for _, g := range a.goals.Snapshot() {
		if err := rollup.SetTarget(g.Category, g.TargetMinutes); err != nil {
			return err
		}
	}
	for _, s := range sessions {
		cat, err := category.Parse(s.Category)
		if err != nil {
			continue // unknown categories never break the rollup
		}
		rollup.ApplyDelta(cat, float64(s.DurationSeconds)/60)
	}

	goals := rollup.Snapshot()
	return a.analytics.RecordToday(goals, productivityScore(goals))
}

// productivityScore grades the day 0-100 by goal completion.
func productivityScore(goals []tracker.Goal) float64 {
	if len(goals) == 0 {
		return 0
	}
	total := 0.0
	for _, g := range goals {
		if g.TargetMinutes == 0 {
			total += 1
			continue
		}
		ratio := g.CurrentMinutes / float64(g.TargetMinutes)
		if ratio > 1 {
			ratio = 1
		}
		total += ratio
	}
	return 100 * total / float64(len(goals))
}

func init() {
	statsCmd.Flags().Int("days", 7, "How many daily records feed the trend")
	statsCmd.Flags().Bool("record", false, "Roll today's sessions into the daily record first")
}
