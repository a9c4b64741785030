// Package notify turns goal and streak events into recorded
// notifications with best-effort side effects.
package notify

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nursultanov/glance/internal/event"
	"github.com/nursultanov/glance/internal/models"
)

// Store is the slice of persistence the dispatcher needs.
type Store interface {
	AppendNotification(n *models.Notification) error
	Prefs() (*models.NotificationPrefs, error)
}

// Sounder plays a notification sound. Failures are non-critical and never
// affect core state.
type Sounder interface {
	Play() error
}

// Dispatcher subscribes to the event bus and records qualifying events in
// the bounded notification history.
type Dispatcher struct {
	store   Store
	sounder Sounder
	now     func() time.Time
	logger  *slog.Logger

	subs []*event.Subscription
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSounder attaches a notification sound.
func WithSounder(s Sounder) Option {
	return func(d *Dispatcher) { d.sounder = s }
}

// WithClock injects a time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// WithLogger sets the dispatcher's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// NewDispatcher creates a dispatcher and subscribes it to bus.
func NewDispatcher(bus *event.Bus, store Store, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:  store,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.subs = append(d.subs,
		event.Subscribe(bus, d.onGoalCompleted),
		event.Subscribe(bus, d.onGoalsReset),
		event.Subscribe(bus, d.onStreakMilestone),
	)
	return d
}

// Close unsubscribes the dispatcher from the bus.
func (d *Dispatcher) Close() {
	for _, sub := range d.subs {
		sub.Unsubscribe()
	}
}

func (d *Dispatcher) onGoalCompleted(e event.GoalCompleted) {
	prefs := d.prefs()
	if !prefs.GoalCompleted {
		return
	}
	d.record(prefs, "goal_completed",
		fmt.Sprintf("%s goal complete", e.Category.Label()),
		fmt.Sprintf("You reached your %d-minute %s goal for today.", e.TargetMinutes, e.Category.Label()),
	)
}

func (d *Dispatcher) onGoalsReset(event.GoalsReset) {
	prefs := d.prefs()
	if !prefs.GoalsReset {
		return
	}
	d.record(prefs, "goals_reset", "Goals reset", "Daily goal progress was reset.")
}

func (d *Dispatcher) onStreakMilestone(e event.StreakMilestoneReached) {
	prefs := d.prefs()
	if !prefs.StreakMilestone {
		return
	}
	d.record(prefs, "streak_milestone",
		fmt.Sprintf("%d-day streak!", e.Count),
		fmt.Sprintf("All goals achieved %d days in a row.", e.Count),
	)
}

func (d *Dispatcher) prefs() *models.NotificationPrefs {
	prefs, err := d.store.Prefs()
	if err != nil {
		// Preferences are a convenience; fall back to everything on.
		d.logger.Warn("failed to load notification prefs", "error", err)
		return &models.NotificationPrefs{
			GoalCompleted:   true,
			GoalsReset:      true,
			StreakMilestone: true,
		}
	}
	return prefs
}

func (d *Dispatcher) record(prefs *models.NotificationPrefs, kind, title, message string) {
	n := &models.Notification{
		NotificationID: uuid.NewString(),
		Type:           kind,
		Title:          title,
		Message:        message,
		Timestamp:      d.now(),
	}
	if err := d.store.AppendNotification(n); err != nil {
		d.logger.Warn("failed to record notification", "type", kind, "error", err)
	}

	if prefs.Sound && d.sounder != nil {
		if err := d.sounder.Play(); err != nil {
			// Sound is best-effort.
			d.logger.Debug("notification sound failed", "error", err)
		}
	}
}
