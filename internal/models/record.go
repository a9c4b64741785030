package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// DailyRecord is the append-only productivity summary for one calendar
// day. Exactly one row exists per date.
type DailyRecord struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Date              string  `gorm:"uniqueIndex;not null" json:"date"` // YYYY-MM-DD
	TotalMinutes      int     `json:"total_minutes"`
	ProductivityScore float64 `json:"productivity_score"` // 0-100
	GoalsCompleted    int     `json:"goals_completed"`
	AllGoalsMet       bool    `json:"all_goals_met"`
	BreakdownJSON     string  `json:"-"` // category -> minutes
}

// Breakdown decodes the per-category minute breakdown.
func (r *DailyRecord) Breakdown() map[string]float64 {
	out := make(map[string]float64)
	if r.BreakdownJSON == "" {
		return out
	}
	// A corrupt row yields an empty breakdown rather than an error.
	_ = json.Unmarshal([]byte(r.BreakdownJSON), &out)
	return out
}

// SetBreakdown encodes the per-category minute breakdown.
func (r *DailyRecord) SetBreakdown(breakdown map[string]float64) error {
	raw, err := json.Marshal(breakdown)
	if err != nil {
		return err
	}
	r.BreakdownJSON = string(raw)
	return nil
}
