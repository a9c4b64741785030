package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nursultanov/glance/internal/api"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Control the remote activity monitor",
}

var monitorStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start server-side recording",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := a.service.StartMonitor(ctx); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("✅ Monitor recording started")
	}),
}

var monitorStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop server-side recording",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := a.service.StopMonitor(ctx); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("✅ Monitor recording stopped")
	}),
}

var monitorConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Update the monitor configuration",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		sample, _ := cmd.Flags().GetInt("sample-interval")
		idle, _ := cmd.Flags().GetInt("idle-threshold")
		tabs, _ := cmd.Flags().GetBool("track-tabs")

		cfg := api.MonitorConfig{
			SampleIntervalSeconds: sample,
			IdleThresholdSeconds:  idle,
			TrackBrowserTabs:      tabs,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := a.service.UpdateConfig(ctx, cfg); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("✅ Monitor configuration updated")
	}),
}

var feedbackCmd = &cobra.Command{
	Use:   "feedback [session-id] [category]",
	Short: "Correct a session's category",
	Args:  cobra.ExactArgs(2),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		note, _ := cmd.Flags().GetString("note")
		fb := api.Feedback{
			SessionID: args[0],
			Category:  args[1],
			Note:      note,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := a.service.SubmitFeedback(ctx, fb); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("✅ Feedback submitted")
	}),
}

var retrainCmd = &cobra.Command{
	Use:   "retrain",
	Short: "Trigger categorization model retraining",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := a.service.TriggerRetrain(ctx); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("✅ Retraining triggered")
	}),
}

func init() {
	monitorCmd.AddCommand(monitorStartCmd)
	monitorCmd.AddCommand(monitorStopCmd)
	monitorCmd.AddCommand(monitorConfigCmd)

	monitorConfigCmd.Flags().Int("sample-interval", 30, "Seconds between activity samples")
	monitorConfigCmd.Flags().Int("idle-threshold", 300, "Seconds of inactivity before idle")
	monitorConfigCmd.Flags().Bool("track-tabs", false, "Track browser tab titles")
	feedbackCmd.Flags().String("note", "", "Optional note for the correction")
}
