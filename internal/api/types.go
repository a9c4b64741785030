package api

import "time"

// SystemStatus reports the health of the remote activity monitor.
type SystemStatus struct {
	MonitorRunning bool      `json:"monitor_running"`
	Version        string    `json:"version"`
	UptimeSeconds  int       `json:"uptime_seconds"`
	StartedAt      time.Time `json:"started_at"`
}

// MonitorSession is a raw session record produced by the monitor.
type MonitorSession struct {
	ID              string     `json:"id"`
	Category        string     `json:"category"`
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
	DurationSeconds int        `json:"duration_seconds"`
	Productivity    string     `json:"productivity"`
}

// TodaySummary aggregates the current day as the monitor sees it.
type TodaySummary struct {
	Date              string             `json:"date"`
	TotalMinutes      int                `json:"total_minutes"`
	ProductivityScore float64            `json:"productivity_score"`
	GoalsCompleted    int                `json:"goals_completed"`
	ByCategory        map[string]float64 `json:"by_category"`
}

// TimeOfDayAnalysis buckets productivity by hour of day.
type TimeOfDayAnalysis struct {
	PeakHour     int                `json:"peak_hour"`
	HourlyScores map[string]float64 `json:"hourly_scores"`
}

// CategoryInfo is one entry of the monitor's category catalog.
type CategoryInfo struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// CategoryStats summarizes tracked time per category.
type CategoryStats struct {
	Windows map[string]map[string]float64 `json:"windows"` // window -> category -> minutes
}

// DatabaseHealth reports the monitor's storage health.
type DatabaseHealth struct {
	Healthy bool   `json:"healthy"`
	Detail  string `json:"detail"`
}

// DatabaseStats reports monitor storage counters.
type DatabaseStats struct {
	SessionCount int   `json:"session_count"`
	SizeBytes    int64 `json:"size_bytes"`
}

// MonitorConfig is the remote monitor's tunable configuration.
type MonitorConfig struct {
	SampleIntervalSeconds int  `json:"sample_interval_seconds"`
	IdleThresholdSeconds  int  `json:"idle_threshold_seconds"`
	TrackBrowserTabs      bool `json:"track_browser_tabs"`
}

// Feedback corrects a categorization the monitor's insight model made.
type Feedback struct {
	SessionID string `json:"session_id"`
	Category  string `json:"category"`
	Note      string `json:"note,omitempty"`
}

// ExportBundle is the monitor-side bulk data payload.
type ExportBundle struct {
	Sessions []MonitorSession `json:"sessions"`
}
