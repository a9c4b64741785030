package db

import (
	"gorm.io/gorm"

	"github.com/nursultanov/glance/internal/models"
)

// historyLimit bounds the notification history; the oldest entries beyond
// it are evicted.
const historyLimit = 50

// AppendNotification stores a notification and evicts history beyond the
// bound, oldest first.
func (s *Store) AppendNotification(n *models.Notification) error {
	if err := s.db.Create(n).Error; err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.Notification{}).Count(&count).Error; err != nil {
		return err
	}
	if count <= historyLimit {
		return nil
	}

	var victims []models.Notification
	err := s.db.Order("timestamp ASC, id ASC").
		Limit(int(count) - historyLimit).
		Find(&victims).Error
	if err != nil {
		return err
	}
	return s.db.Unscoped().Delete(&victims).Error
}

// Notifications returns the history, newest first.
func (s *Store) Notifications() ([]models.Notification, error) {
	var out []models.Notification
	err := s.db.Order("timestamp DESC, id DESC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Prefs loads the notification preferences, creating defaults on first
// use.
func (s *Store) Prefs() (*models.NotificationPrefs, error) {
	var prefs models.NotificationPrefs
	err := s.db.First(&prefs, 1).Error
	if err == gorm.ErrRecordNotFound {
		prefs = models.NotificationPrefs{
			ID:              1,
			GoalCompleted:   true,
			GoalsReset:      true,
			StreakMilestone: true,
			Sound:           true,
		}
		if err := s.db.Create(&prefs).Error; err != nil {
			return nil, err
		}
		return &prefs, nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

// SavePrefs persists the notification preferences.
func (s *Store) SavePrefs(prefs *models.NotificationPrefs) error {
	prefs.ID = 1
	return s.db.Save(prefs).Error
}
