package commands

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/nursultanov/glance/internal/analytics"
	"github.com/nursultanov/glance/internal/api"
	"github.com/nursultanov/glance/internal/category"
	"github.com/nursultanov/glance/internal/config"
	"github.com/nursultanov/glance/internal/dashboard"
	"github.com/nursultanov/glance/internal/db"
	"github.com/nursultanov/glance/internal/event"
	"github.com/nursultanov/glance/internal/notify"
	"github.com/nursultanov/glance/internal/tracker"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "glance",
	Short: "A personal activity-tracking dashboard",
	Long: `glance tracks time per category against daily goals, derives streaks
and productivity trends, and aggregates status from the activity monitor
into one dashboard.`,
}

// app holds the explicitly constructed components a command needs. It is
// built per invocation and torn down when the command finishes.
type app struct {
	cfg        *config.Config
	store      *db.Store
	registry   *prometheus.Registry
	bus        *event.Bus
	goals      *tracker.GoalSet
	tracker    *tracker.Tracker
	client     *api.Client
	service    *dashboard.Service
	analytics  *analytics.Service
	dispatcher *notify.Dispatcher
}

// newApp wires the application together.
func newApp() (*app, error) {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	dbPath, err := db.DefaultPath()
	if err != nil {
		return nil, err
	}
	store, err := db.Open(dbPath)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	bus := event.NewBus(registry, nil)

	goals := tracker.NewGoalSet(bus)
	for name, target := range cfg.GoalTargets {
		cat, err := category.Parse(name)
		if err != nil {
			continue // stale config entry
		}
		if err := goals.SetTarget(cat, target); err != nil {
			return nil, err
		}
	}

	// Seed today's progress from the daily record so a fresh process
	// remembers minutes tracked earlier in the day.
	today := time.Now().Format("2006-01-02")
	if record, err := store.DailyRecordByDate(today); err == nil && record != nil {
		for name, minutes := range record.Breakdown() {
			cat, err := category.Parse(name)
			if err != nil {
				continue
			}
			goals.RestoreProgress(cat, minutes)
		}
	}

	client := api.NewClient(cfg.MonitorURL, cfg.RequestTimeout())
	agg := dashboard.New(
		dashboard.MonitorSources(client, cfg.RecentSessionLimit),
		dashboard.WithTTL(cfg.CacheTTL()),
	)

	return &app{
		cfg:        cfg,
		store:      store,
		registry:   registry,
		bus:        bus,
		goals:      goals,
		tracker:    tracker.New(goals),
		client:     client,
		service:    dashboard.NewService(client, agg),
		analytics:  analytics.NewService(store, bus),
		dispatcher: notify.NewDispatcher(bus, store),
	}, nil
}

func (a *app) close() {
	a.dispatcher.Close()
	if err := a.store.Close(); err != nil {
		fmt.Printf("Warning: failed to close database: %v\n", err)
	}
}

// withApp wraps a command function so the application is wired before the
// handler runs and torn down after.
func withApp(fn func(*app, *cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer a.close()
		fn(a, cmd, args)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("glance %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(retrainCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(versionCmd)
}
