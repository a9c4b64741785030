package models

import (
	"time"
)

// Notification is one delivered notification, kept in a bounded history.
type Notification struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"-"`

	NotificationID string    `gorm:"uniqueIndex;not null" json:"id"`
	Type           string    `gorm:"not null" json:"type"` // goal_completed, goals_reset, streak_milestone
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Timestamp      time.Time `gorm:"index" json:"timestamp"`
}

// NotificationPrefs is the flat record of notification toggles. A single
// row with ID 1 holds the current preferences.
type NotificationPrefs struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	UpdatedAt time.Time `json:"-"`

	GoalCompleted   bool `gorm:"default:true" json:"goal_completed"`
	GoalsReset      bool `gorm:"default:true" json:"goals_reset"`
	StreakMilestone bool `gorm:"default:true" json:"streak_milestone"`
	Sound           bool `gorm:"default:true" json:"sound"`
}
