package analytics

import (
	"testing"
	"time"

	"github.com/nursultanov/glance/internal/category"
	"github.com/nursultanov/glance/internal/event"
	"github.com/nursultanov/glance/internal/models"
	"github.com/nursultanov/glance/internal/tracker"
)

// memStore is an in-memory Store for service tests.
type memStore struct {
	records map[string]*models.DailyRecord
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]*models.DailyRecord)}
}

func (s *memStore) UpsertDailyRecord(record *models.DailyRecord) error {
	clone := *record
	s.records[record.Date] = &clone
	return nil
}

func (s *memStore) LastDailyRecords(n int) ([]models.DailyRecord, error) {
	dates := make([]string, 0, len(s.records))
	for d := range s.records {
		dates = append(dates, d)
	}
	// small maps; insertion order is irrelevant for these tests
	out := make([]models.DailyRecord, 0, len(dates))
	for _, d := range dates {
		out = append(out, *s.records[d])
	}
	return out, nil
}

func (s *memStore) AchievementDates() ([]string, error) {
	var dates []string
	for d, r := range s.records {
		if r.AllGoalsMet {
			dates = append(dates, d)
		}
	}
	return dates, nil
}

func TestRecordTodayWritesRollup(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	now := day("2024-08-12")
	svc := NewService(store, nil, WithClock(func() time.Time { return now }))

	goals := []tracker.Goal{
		{Category: category.Work, TargetMinutes: 60, CurrentMinutes: 72.5, Completed: true},
		{Category: category.Study, TargetMinutes: 30, CurrentMinutes: 10, Completed: false},
	}
	if err := svc.RecordToday(goals, 82.4); err != nil {
		t.Fatalf("record today: %v", err)
	}

	record := store.records["2024-08-12"]
	if record == nil {
		t.Fatal("no record written for today")
	}
	if record.TotalMinutes != 82 {
		t.Fatalf("total minutes = %d, want 82", record.TotalMinutes)
	}
	if record.GoalsCompleted != 1 || record.AllGoalsMet {
		t.Fatalf("goals completed = %d allMet=%v, want 1/false",
			record.GoalsCompleted, record.AllGoalsMet)
	}
	if record.ProductivityScore != 82.4 {
		t.Fatalf("score = %v, want 82.4", record.ProductivityScore)
	}
	if got := record.Breakdown()["work"]; got != 72.5 {
		t.Fatalf("work breakdown = %v, want 72.5", got)
	}
}

func TestRecordTodayEmitsMilestoneOnce(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	// Two achieved days already on the books
	for _, d := range []string{"2024-08-10", "2024-08-11"} {
		store.records[d] = &models.DailyRecord{Date: d, AllGoalsMet: true}
	}

	bus := event.NewBus(nil, nil)
	var milestones []event.StreakMilestoneReached
	event.Subscribe(bus, func(e event.StreakMilestoneReached) {
		milestones = append(milestones, e)
	})

	now := day("2024-08-12")
	svc := NewService(store, bus, WithClock(func() time.Time { return now }))

	goals := []tracker.Goal{
		{Category: category.Work, TargetMinutes: 30, CurrentMinutes: 45, Completed: true},
	}
	if err := svc.RecordToday(goals, 90); err != nil {
		t.Fatalf("record today: %v", err)
	}
	if len(milestones) != 1 || milestones[0].Count != 3 {
		t.Fatalf("milestones = %v, want one crossing at 3", milestones)
	}

	// Re-recording the same day must not fire again.
	if err := svc.RecordToday(goals, 90); err != nil {
		t.Fatalf("re-record today: %v", err)
	}
	if len(milestones) != 1 {
		t.Fatalf("milestones after re-record = %v, want still one", milestones)
	}
}

func TestRecordTodayClampsScore(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	now := day("2024-08-12")
	svc := NewService(store, nil, WithClock(func() time.Time { return now }))

	if err := svc.RecordToday(nil, 180); err != nil {
		t.Fatalf("record today: %v", err)
	}
	if got := store.records["2024-08-12"].ProductivityScore; got != 100 {
		t.Fatalf("score = %v, want clamped to 100", got)
	}
}

func TestStreakReportUsesAchievements(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	for _, d := range []string{"2024-08-10", "2024-08-11", "2024-08-12"} {
		store.records[d] = &models.DailyRecord{Date: d, AllGoalsMet: true}
	}
	store.records["2024-08-08"] = &models.DailyRecord{Date: "2024-08-08", AllGoalsMet: false}

	now := day("2024-08-12")
	svc := NewService(store, nil, WithClock(func() time.Time { return now }))

	streak, err := svc.StreakReport()
	if err != nil {
		t.Fatalf("streak report: %v", err)
	}
	if streak.Current != 3 || streak.Longest != 3 {
		t.Fatalf("streak = %+v, want 3/3", streak)
	}
}
