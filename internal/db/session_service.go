package db

import (
	"fmt"
	"time"

	"github.com/nursultanov/glance/internal/models"
	"github.com/nursultanov/glance/internal/tracker"
)

// SaveSession persists a finalized tracking session.
func (s *Store) SaveSession(session *tracker.Session) (*models.TrackedSession, error) {
	if !session.Finished() {
		return nil, fmt.Errorf("session %s is still active", session.ID)
	}

	row := models.TrackedSession{
		SessionID:       session.ID.String(),
		Category:        session.Category.String(),
		StartedAt:       session.StartedAt,
		FinishedAt:      session.FinishedAt,
		DurationSeconds: session.DurationSeconds,
		Productivity:    string(session.Productivity),
	}

	if err := s.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// SessionsInRange returns finalized sessions that started within the
// given range, oldest first.
func (s *Store) SessionsInRange(from, to time.Time) ([]models.TrackedSession, error) {
	var sessions []models.TrackedSession

	err := s.db.Where("started_at >= ? AND started_at <= ? AND finished_at IS NOT NULL", from, to).
		Order("started_at ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// RecentSessions returns the newest finalized sessions, most recent first.
func (s *Store) RecentSessions(limit int) ([]models.TrackedSession, error) {
	if limit <= 0 {
		limit = 10
	}
	var sessions []models.TrackedSession

	err := s.db.Where("finished_at IS NOT NULL").
		Order("started_at DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
