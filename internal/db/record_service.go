package db

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nursultanov/glance/internal/models"
)

const dateLayout = "2006-01-02"

// UpsertDailyRecord writes the productivity summary for one calendar day,
// replacing an existing row for the same date.
func (s *Store) UpsertDailyRecord(record *models.DailyRecord) error {
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_minutes", "productivity_score", "goals_completed",
			"all_goals_met", "breakdown_json", "updated_at",
		}),
	}).Create(record).Error
}

// DailyRecords returns records between two dates inclusive, oldest first.
// An unparseable bound filters nothing out; it falls back to the open
// side of the range, so a malformed query still returns usable data.
func (s *Store) DailyRecords(from, to string) ([]models.DailyRecord, error) {
	q := s.db.Model(&models.DailyRecord{})
	if _, err := time.Parse(dateLayout, from); err == nil {
		q = q.Where("date >= ?", from)
	}
	if _, err := time.Parse(dateLayout, to); err == nil {
		q = q.Where("date <= ?", to)
	}

	var records []models.DailyRecord
	if err := q.Order("date ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// LastDailyRecords returns the newest n records in chronological order.
func (s *Store) LastDailyRecords(n int) ([]models.DailyRecord, error) {
	if n <= 0 {
		n = 7
	}
	var records []models.DailyRecord
	err := s.db.Order("date DESC").Limit(n).Find(&records).Error
	if err != nil {
		return nil, err
	}
	// reverse into chronological order
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// AchievementDates returns every date on which all goals were met.
func (s *Store) AchievementDates() ([]string, error) {
	var dates []string
	err := s.db.Model(&models.DailyRecord{}).
		Where("all_goals_met = ?", true).
		Order("date ASC").
		Pluck("date", &dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}

// DailyRecordByDate fetches one day's record, or nil when absent.
func (s *Store) DailyRecordByDate(date string) (*models.DailyRecord, error) {
	var record models.DailyRecord
	err := s.db.Where("date = ?", date).First(&record).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
