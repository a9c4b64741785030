package tracker

import (
	"time"

	"github.com/google/uuid"

	"github.com/nursultanov/glance/internal/category"
)

// Productivity is a qualitative tag attached to a tracked session.
type Productivity string

const (
	ProductivityHigh   Productivity = "high"
	ProductivityMedium Productivity = "medium"
	ProductivityLow    Productivity = "low"
)

// Session is one contiguous interval of tracked activity in a single
// category. It is mutated only by the owning Tracker and becomes
// immutable once finalized.
type Session struct {
	ID              uuid.UUID         `json:"id"`
	Category        category.Category `json:"category"`
	StartedAt       time.Time         `json:"started_at"`
	FinishedAt      *time.Time        `json:"finished_at"`
	DurationSeconds int               `json:"duration_seconds"`
	Productivity    Productivity      `json:"productivity"`
}

// Finished reports whether the session has been finalized.
func (s *Session) Finished() bool {
	return s.FinishedAt != nil
}
