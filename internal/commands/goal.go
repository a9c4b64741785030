package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nursultanov/glance/internal/category"
	"github.com/nursultanov/glance/internal/config"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage daily goals",
}

var goalSetCmd = &cobra.Command{
	Use:   "set [category] [minutes]",
	Short: "Set the daily target for a category",
	Args:  cobra.ExactArgs(2),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		cat, err := category.Parse(args[0])
		if err != nil {
			fmt.Printf("Error: %v (known: %v)\n", err, category.All)
			return
		}
		minutes, err := strconv.Atoi(args[1])
		if err != nil || minutes < 0 {
			fmt.Printf("Error: minutes must be a non-negative integer, got %q\n", args[1])
			return
		}

		if err := a.goals.SetTarget(cat, minutes); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if a.cfg.GoalTargets == nil {
			a.cfg.GoalTargets = make(map[string]int)
		}
		a.cfg.GoalTargets[cat.String()] = minutes
		cfgPath, err := config.DefaultPath()
		if err == nil {
			err = config.Save(a.cfg, cfgPath)
		}
		if err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			return
		}
		fmt.Printf("✅ %s goal set to %d min/day\n", cat.Label(), minutes)
	}),
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show today's goal progress",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		today := time.Now().Format("2006-01-02")
		record, err := a.store.DailyRecordByDate(today)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		var progress map[string]float64
		if record != nil {
			progress = record.Breakdown()
		}

		fmt.Printf("%-12s %-8s %-10s %s\n", "CATEGORY", "TARGET", "TODAY", "STATUS")
		fmt.Println(strings.Repeat("-", 44))
		for _, goal := range a.goals.Snapshot() {
			current := goal.CurrentMinutes
			if v, ok := progress[goal.Category.String()]; ok && v > current {
				current = v
			}
			status := ""
			if current >= float64(goal.TargetMinutes) {
				status = "✅ done"
			}
			fmt.Printf("%-12s %-8d %-10.1f %s\n",
				goal.Category.Label(), goal.TargetMinutes, current, status)
		}
	}),
}

var goalResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all goal progress for the day",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		a.goals.ResetAll()
		fmt.Println("✅ All goal progress reset")
	}),
}

func init() {
	goalCmd.AddCommand(goalSetCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalResetCmd)
}
