// Package db is the local sqlite persistence layer.
package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nursultanov/glance/internal/models"
)

// Store wraps the database handle. It is constructed once at startup and
// passed to consumers; there is no package-level connection.
type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database at path, creating parent
// directories and migrating the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

// DefaultPath returns the standard database location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".glance", "glance.db"), nil
}

func (s *Store) migrate() error {
	return s.db.AutoMigrate(
		&models.TrackedSession{},
		&models.DailyRecord{},
		&models.Notification{},
		&models.NotificationPrefs{},
	)
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
