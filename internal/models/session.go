package models

import (
	"time"

	"gorm.io/gorm"
)

// TrackedSession is a finalized tracking session persisted locally.
type TrackedSession struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	SessionID       string     `gorm:"uniqueIndex;not null" json:"session_id"`
	Category        string     `gorm:"not null;index" json:"category"`
	StartedAt       time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at"`
	DurationSeconds int        `json:"duration_seconds"`
	Productivity    string     `gorm:"default:medium" json:"productivity"` // high, medium, low
}
