package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif"},
	Short:   "Show notification history and preferences",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("goal-completed") ||
			cmd.Flags().Changed("goals-reset") ||
			cmd.Flags().Changed("streak-milestone") ||
			cmd.Flags().Changed("sound") {
			updatePrefs(a, cmd)
			return
		}

		history, err := a.store.Notifications()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(history) == 0 {
			fmt.Println("No notifications yet.")
			return
		}

		fmt.Printf("%-20s %-18s %s\n", "WHEN", "TYPE", "MESSAGE")
		fmt.Println(strings.Repeat("-", 70))
		for _, n := range history {
			fmt.Printf("%-20s %-18s %s\n",
				n.Timestamp.Format("2006-01-02 15:04:05"), n.Type, n.Title)
		}
	}),
}

func updatePrefs(a *app, cmd *cobra.Command) {
	prefs, err := a.store.Prefs()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if cmd.Flags().Changed("goal-completed") {
		prefs.GoalCompleted, _ = cmd.Flags().GetBool("goal-completed")
	}
	if cmd.Flags().Changed("goals-reset") {
		prefs.GoalsReset, _ = cmd.Flags().GetBool("goals-reset")
	}
	if cmd.Flags().Changed("streak-milestone") {
		prefs.StreakMilestone, _ = cmd.Flags().GetBool("streak-milestone")
	}
	if cmd.Flags().Changed("sound") {
		prefs.Sound, _ = cmd.Flags().GetBool("sound")
	}

	if err := a.store.SavePrefs(prefs); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("✅ Notification preferences updated")
}

func init() {
	notificationsCmd.Flags().Bool("goal-completed", true, "Notify when a goal completes")
	notificationsCmd.Flags().Bool("goals-reset", true, "Notify when goals are reset")
	notificationsCmd.Flags().Bool("streak-milestone", true, "Notify on streak milestones")
	notificationsCmd.Flags().Bool("sound", true, "Play a sound with notifications")
}
