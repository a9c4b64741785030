// Package tracker owns the live tracking state: the lifecycle of the
// in-progress session and the per-category daily goals it feeds.
package tracker

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nursultanov/glance/internal/category"
)

// Typed state errors. They signal a local precondition violation and are
// surfaced to the caller, never retried automatically.
var (
	ErrAlreadyTracking = errors.New("a tracking session is already active")
	ErrNotTracking     = errors.New("no tracking session is active")
)

// Tracker is the session lifecycle manager. It is the only component that
// mutates the active session; every elapsed second is forwarded to the
// goal set as a fractional-minute delta.
type Tracker struct {
	mu      sync.Mutex
	active  *Session
	history []Session // most-recent-first

	goals  *GoalSet
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock injects a time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger sets the tracker's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) { t.logger = logger }
}

// New creates an idle Tracker feeding the given goal set.
func New(goals *GoalSet, opts ...Option) *Tracker {
	t := &Tracker{
		goals:  goals,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins tracking the given category. It fails with
// ErrAlreadyTracking while a session is active.
func (t *Tracker) Start(cat category.Category) (*Session, error) {
	if !category.Valid(cat) {
		return nil, &category.ErrUnknown{Value: string(cat)}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active != nil {
		return nil, fmt.Errorf("cannot start %s: %w", cat, ErrAlreadyTracking)
	}

	t.active = &Session{
		ID:           uuid.New(),
		Category:     cat,
		StartedAt:    t.now(),
		Productivity: ProductivityMedium, // placeholder until the session closes
	}
	t.logger.Debug("tracking started", "category", cat, "session_id", t.active.ID)

	started := *t.active
	return &started, nil
}

// Tick records one elapsed second on the active session and forwards the
// fractional-minute delta to the goal set. A tick that arrives after Stop
// (ticket cancellation is asynchronous) is ignored.
func (t *Tracker) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return
	}

	t.active.DurationSeconds++
	t.goals.ApplyDelta(t.active.Category, 1.0/60.0)
}

// Stop finalizes the active session, prepends it to the history and
// returns it. It fails with ErrNotTracking while idle.
func (t *Tracker) Stop() (*Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return nil, ErrNotTracking
	}

	finished := t.now()
	t.active.FinishedAt = &finished

	done := *t.active
	t.history = append([]Session{done}, t.history...)
	t.active = nil

	t.logger.Debug("tracking stopped",
		"category", done.Category,
		"session_id", done.ID,
		"duration_seconds", done.DurationSeconds,
	)

	return &done, nil
}

// Active returns a copy of the in-progress session, or nil when idle.
func (t *Tracker) Active() *Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return nil
	}
	snap := *t.active
	return &snap
}

// Elapsed returns the accumulated duration of the active session, or zero
// when idle.
func (t *Tracker) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return 0
	}
	return time.Duration(t.active.DurationSeconds) * time.Second
}

// History returns a copy of the finalized sessions, most recent first.
func (t *Tracker) History() []Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Session, len(t.history))
	copy(out, t.history)
	return out
}

// SessionID returns the active session's id, or uuid.Nil when idle.
func (t *Tracker) SessionID() uuid.UUID {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return uuid.Nil
	}
	return t.active.ID
}
