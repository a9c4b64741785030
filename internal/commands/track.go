package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nursultanov/glance/internal/api"
	"github.com/nursultanov/glance/internal/category"
	"github.com/nursultanov/glance/internal/dashboard"
	"github.com/nursultanov/glance/internal/db"
	"github.com/nursultanov/glance/internal/sched"
	"github.com/nursultanov/glance/internal/tracker"
	"github.com/nursultanov/glance/internal/tui"
)

// storeSaver adapts the database store to the TUI's saver interface.
type storeSaver struct {
	store *db.Store
}

func (s storeSaver) SaveSession(session *tracker.Session) error {
	_, err := s.store.SaveSession(session)
	return err
}

var startCmd = &cobra.Command{
	Use:   "start [category]",
	Short: "Start tracking time in a category",
	Long: `Start tracking time in a category. Opens the interactive timer by
default; use --no-ui to track until interrupted.

Examples:
  glance start work         # Interactive timer
  glance start study --no-ui # Track until Ctrl+C`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		cat, err := category.Parse(args[0])
		if err != nil {
			fmt.Printf("Error: %v (known: %v)\n", err, category.All)
			return
		}

		session, err := a.tracker.Start(cat)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		// Mirror the lifecycle server-side; tracking works without it.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.client.StartMonitor(ctx); err != nil {
			fmt.Printf("Note: monitor not mirroring this session: %v\n", err)
		}
		cancel()

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			runHeadless(a, session)
			return
		}

		if err := tui.RunTimerTUI(a.tracker, a.goals, storeSaver{a.store}); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}

// runHeadless ticks the session once per second until the process is
// interrupted, then finalizes and saves it.
func runHeadless(a *app, session *tracker.Session) {
	fmt.Printf("⏱  Tracking %s. Press Ctrl+C to stop.\n", session.Category.Label())
	fmt.Printf("Started at: %s\n", session.StartedAt.Format("15:04:05"))

	scheduler := sched.NewWall()
	ticket := scheduler.Every(time.Second, a.tracker.Tick)
	defer ticket.Stop()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
	ticket.Stop()

	done, err := a.tracker.Stop()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if _, err := a.store.SaveSession(done); err != nil {
		fmt.Printf("Error saving session: %v\n", err)
		return
	}

	minutes := float64(done.DurationSeconds) / 60
	fmt.Printf("\n✅ Tracked %.1f min of %s\n", minutes, done.Category.Label())
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the server-side monitor recording",
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

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the monitor and current session status",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// Reading through the aggregator shares the fetch with any
		// concurrently running dashboard refresh.
		agg := a.service.Aggregator()
		result, ok := agg.Fetch(ctx, dashboard.KeySystemStatus)
		if !ok || result.Failed() {
			fmt.Printf("Monitor unreachable: %s\n", result.Err)
			return
		}
		status, ok := result.Payload.(*api.SystemStatus)
		if !ok {
			fmt.Println("Monitor unreachable")
			return
		}
		state := "stopped"
		if status.MonitorRunning {
			state = "running"
		}
		fmt.Printf("Monitor: %s (v%s)\n", state, status.Version)

		result, _ = agg.Fetch(ctx, dashboard.KeyCurrentSession)
		current, ok := result.Payload.(*api.MonitorSession)
		if result.Failed() || !ok || current.ID == "" {
			fmt.Println("No active session")
			return
		}
		fmt.Printf("Tracking %s since %s\n", current.Category, current.StartedAt.Format("15:04:05"))
	}),
}

func init() {
	startCmd.Flags().Bool("no-ui", false, "Track without the interactive timer")
}
