// Package exchange reads and writes bulk data dumps of the local store.
package exchange

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/nursultanov/glance/internal/category"
	"github.com/nursultanov/glance/internal/models"
	"github.com/nursultanov/glance/internal/tracker"
)

// Bundle is the on-disk export format.
type Bundle struct {
	ExportedAt time.Time               `json:"exported_at"`
	Sessions   []models.TrackedSession `json:"sessions"`
	Goals      []tracker.Goal          `json:"goals"`
	Records    []models.DailyRecord    `json:"records"`
}

// Report summarizes an import: what was accepted and what was filtered.
type Report struct {
	Sessions        int
	Records         int
	SkippedSessions int
	SkippedRecords  int
}

// Exchanger moves bundles through a filesystem. Tests run it on a
// MemMapFs.
type Exchanger struct {
	fs afero.Fs
}

// New creates an Exchanger over fs; nil means the OS filesystem.
func New(fs afero.Fs) *Exchanger {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Exchanger{fs: fs}
}

// Export writes the bundle as indented JSON.
func (e *Exchanger) Export(path string, bundle *Bundle) error {
	raw, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bundle: %w", err)
	}
	if err := afero.WriteFile(e.fs, path, raw, 0644); err != nil {
		return fmt.Errorf("write bundle: %w", err)
	}
	return nil
}

// Import reads a bundle and filters out malformed items instead of
// failing the whole import. The report counts both sides.
func (e *Exchanger) Import(path string) (*Bundle, *Report, error) {
	raw, err := afero.ReadFile(e.fs, path)
	if err != nil {
		return nil, nil, fmt.Errorf("read bundle: %w", err)
	}

	var bundle Bundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return nil, nil, fmt.Errorf("parse bundle: %w", err)
	}

	report := &Report{}

	kept := bundle.Sessions[:0]
	for _, s := range bundle.Sessions {
		if !validSession(&s) {
			report.SkippedSessions++
			continue
		}
		kept = append(kept, s)
	}
	bundle.Sessions = kept
	report.Sessions = len(kept)

	keptRecords := bundle.Records[:0]
	for _, r := range bundle.Records {
		if !validRecord(&r) {
			report.SkippedRecords++
			continue
		}
		keptRecords = append(keptRecords, r)
	}
	bundle.Records = keptRecords
	report.Records = len(keptRecords)

	return &bundle, report, nil
}

func validSession(s *models.TrackedSession) bool {
	if s.SessionID == "" || s.FinishedAt == nil || s.DurationSeconds < 0 {
		return false
	}
	if _, err := category.Parse(s.Category); err != nil {
		return false
	}
	return !s.FinishedAt.Before(s.StartedAt)
}

func validRecord(r *models.DailyRecord) bool {
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return false
	}
	return r.ProductivityScore >= 0 && r.ProductivityScore <= 100
}
