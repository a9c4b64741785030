package db

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nursultanov/glance/internal/category"
	"github.com/nursultanov/glance/internal/models"
	"github.com/nursultanov/glance/internal/tracker"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "glance.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func finishedSession(cat category.Category, start time.Time, seconds int) *tracker.Session {
	end := start.Add(time.Duration(seconds) * time.Second)
	return &tracker.Session{
		ID:              uuid.New(),
		Category:        cat,
		StartedAt:       start,
		FinishedAt:      &end,
		DurationSeconds: seconds,
		Productivity:    tracker.ProductivityMedium,
	}
}

func TestSaveSessionRejectsActive(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	active := &tracker.Session{ID: uuid.New(), Category: category.Work, StartedAt: time.Now()}
	if _, err := store.SaveSession(active); err == nil {
		t.Fatal("active session persisted")
	}
}

func TestSessionsInRange(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	base := time.Date(2024, 8, 12, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		s := finishedSession(category.Work, base.Add(time.Duration(i)*time.Hour), 600)
		if _, err := store.SaveSession(s); err != nil {
			t.Fatalf("save session %d: %v", i, err)
		}
	}

	got, err := store.SessionsInRange(base.Add(30*time.Minute), base.Add(3*time.Hour))
	if err != nil {
		t.Fatalf("sessions in range: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d sessions, want 2", len(got))
	}
	if got[0].StartedAt.After(got[1].StartedAt) {
		t.Fatal("sessions not ordered oldest first")
	}
}

func TestRecentSessionsNewestFirst(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	base := time.Date(2024, 8, 12, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		s := finishedSession(category.Study, base.Add(time.Duration(i)*time.Hour), 60)
		if _, err := store.SaveSession(s); err != nil {
			t.Fatalf("save session %d: %v", i, err)
		}
	}

	got, err := store.RecentSessions(3)
	if err != nil {
		t.Fatalf("recent sessions: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d sessions, want 3", len(got))
	}
	if !got[0].StartedAt.After(got[1].StartedAt.Add(-time.Second)) ||
		got[0].StartedAt.Before(got[2].StartedAt) {
		t.Fatalf("sessions not newest first: %v, %v, %v",
			got[0].StartedAt, got[1].StartedAt, got[2].StartedAt)
	}
}

func TestUpsertDailyRecordReplacesSameDate(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	first := &models.DailyRecord{Date: "2024-08-12", TotalMinutes: 30, ProductivityScore: 40}
	if err := store.UpsertDailyRecord(first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second := &models.DailyRecord{Date: "2024-08-12", TotalMinutes: 90, ProductivityScore: 80, AllGoalsMet: true}
	if err := store.UpsertDailyRecord(second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	records, err := store.DailyRecords("2024-08-12", "2024-08-12")
	if err != nil {
		t.Fatalf("daily records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records for one date, want 1", len(records))
	}
	if records[0].TotalMinutes != 90 || !records[0].AllGoalsMet {
		t.Fatalf("record not replaced: %+v", records[0])
	}
}

func TestDailyRecordsIgnoresMalformedBounds(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	for i := 1; i <= 3; i++ {
		r := &models.DailyRecord{Date: fmt.Sprintf("2024-08-1%d", i)}
		if err := store.UpsertDailyRecord(r); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	// A malformed bound degrades to an open range instead of failing.
	records, err := store.DailyRecords("garbage", "2024-08-12")
	if err != nil {
		t.Fatalf("daily records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2 (open lower bound)", len(records))
	}
}

func TestAchievementDatesSortedAscending(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	days := map[string]bool{
		"2024-08-12": true,
		"2024-08-10": true,
		"2024-08-11": false,
	}
	for date, met := range days {
		r := &models.DailyRecord{Date: date, AllGoalsMet: met}
		if err := store.UpsertDailyRecord(r); err != nil {
			t.Fatalf("upsert %s: %v", date, err)
		}
	}

	got, err := store.AchievementDates()
	if err != nil {
		t.Fatalf("achievement dates: %v", err)
	}
	want := []string{"2024-08-10", "2024-08-12"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNotificationHistoryBounded(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	base := time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 55; i++ {
		n := &models.Notification{
			NotificationID: uuid.NewString(),
			Type:           "goal_completed",
			Title:          fmt.Sprintf("n%02d", i),
			Timestamp:      base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.AppendNotification(n); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	history, err := store.Notifications()
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	if len(history) != 50 {
		t.Fatalf("history length = %d, want 50", len(history))
	}
	// Newest first, oldest five evicted
	if history[0].Title != "n54" {
		t.Fatalf("newest = %q, want n54", history[0].Title)
	}
	if history[len(history)-1].Title != "n05" {
		t.Fatalf("oldest kept = %q, want n05", history[len(history)-1].Title)
	}
}

func TestPrefsDefaultsAndRoundTrip(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	prefs, err := store.Prefs()
	if err != nil {
		t.Fatalf("prefs: %v", err)
	}
	if !prefs.GoalCompleted || !prefs.StreakMilestone {
		t.Fatalf("defaults not on: %+v", prefs)
	}

	prefs.Sound = false
	if err := store.SavePrefs(prefs); err != nil {
		t.Fatalf("save prefs: %v", err)
	}

	again, err := store.Prefs()
	if err != nil {
		t.Fatalf("reload prefs: %v", err)
	}
	if again.Sound {
		t.Fatal("sound toggle did not persist")
	}
}
