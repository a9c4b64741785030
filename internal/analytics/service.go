package analytics

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/nursultanov/glance/internal/event"
	"github.com/nursultanov/glance/internal/models"
	"github.com/nursultanov/glance/internal/tracker"
)

// Store is the slice of persistence the analytics service reads and
// writes.
type Store interface {
	UpsertDailyRecord(record *models.DailyRecord) error
	LastDailyRecords(n int) ([]models.DailyRecord, error)
	AchievementDates() ([]string, error)
}

// Service derives streaks and trends from the daily history and closes
// out each day's record.
type Service struct {
	store Store
	bus   *event.Bus
	now   func() time.Time

	logger *slog.Logger
}

// NewService creates an analytics service. bus may be nil when milestone
// events have no audience.
func NewService(store Store, bus *event.Bus, opts ...ServiceOption) *Service {
	s := &Service{
		store:  store,
		bus:    bus,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock injects a time source, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the service's logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = logger }
}

// RecordToday writes today's productivity record from the current goal
// snapshot and score, then re-derives the streak. Crossing a milestone
// publishes StreakMilestoneReached exactly once, because the previous
// streak is read before the new record lands.
func (s *Service) RecordToday(goals []tracker.Goal, score float64) error {
	prev := s.currentStreak()

	today := s.now().Format("2006-01-02")
	record := &models.DailyRecord{
		Date:              today,
		ProductivityScore: clampScore(score),
	}

	breakdown := make(map[string]float64, len(goals))
	allMet := len(goals) > 0
	total := 0.0
	for _, g := range goals {
		breakdown[g.Category.String()] = g.CurrentMinutes
		total += g.CurrentMinutes
		if g.Completed {
			record.GoalsCompleted++
		} else {
			allMet = false
		}
	}
	record.TotalMinutes = int(total)
	record.AllGoalsMet = allMet
	if err := record.SetBreakdown(breakdown); err != nil {
		return fmt.Errorf("encode breakdown: %w", err)
	}

	if err := s.store.UpsertDailyRecord(record); err != nil {
		return fmt.Errorf("record day %s: %w", today, err)
	}

	next := s.currentStreak()
	if milestone, ok := CrossedMilestone(prev, next); ok && s.bus != nil {
		event.Publish(s.bus, event.StreakMilestoneReached{Count: milestone})
	}
	return nil
}

// StreakReport derives the streak counters from the achievement history.
func (s *Service) StreakReport() (StreakResult, error) {
	dates, err := s.store.AchievementDates()
	if err != nil {
		return StreakResult{}, err
	}
	return Streaks(dates, s.now()), nil
}

// TrendReport classifies the productivity trend over the last days
// records.
func (s *Service) TrendReport(days int) (TrendResult, error) {
	records, err := s.store.LastDailyRecords(days)
	if err != nil {
		return TrendResult{}, err
	}
	scores := make([]float64, len(records))
	for i, r := range records {
		scores[i] = r.ProductivityScore
	}
	return Trend(scores)
}

func (s *Service) currentStreak() int {
	dates, err := s.store.AchievementDates()
	if err != nil {
		s.logger.Warn("failed to load achievement dates", "error", err)
		return 0
	}
	return Streaks(dates, s.now()).Current
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
