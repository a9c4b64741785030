package dashboard

import (
	"context"

	"github.com/nursultanov/glance/internal/api"
)

// Snapshot keys for the monitor-backed sources.
const (
	KeySystemStatus   = "systemStatus"
	KeyCurrentSession = "currentSession"
	KeyTodaySummary   = "todaySummary"
	KeyTimeOfDay      = "timeOfDay"
	KeyRecentSessions = "recentSessions"
	KeyCategories     = "categories"
	KeyCategoryStats  = "categoryStats"
	KeyDatabaseHealth = "databaseHealth"
	KeyDatabaseStats  = "databaseStats"
	KeyTodaySessions  = "todaySessions"
)

// MonitorSources builds the standard source set over the monitor client.
// Fast-moving sources (status, current session) are not cached; the rest
// live behind the TTL cache.
func MonitorSources(client *api.Client, recentLimit int) []Source {
	if recentLimit <= 0 {
		recentLimit = 10
	}
	return []Source{
		{Name: KeySystemStatus, Fetch: func(ctx context.Context) (any, error) {
			return client.SystemStatus(ctx)
		}},
		{Name: KeyCurrentSession, Fetch: func(ctx context.Context) (any, error) {
			return client.CurrentSession(ctx)
		}},
		{Name: KeyTodaySummary, Cacheable: true, Fetch: func(ctx context.Context) (any, error) {
			return client.TodaySummary(ctx)
		}},
		{Name: KeyTimeOfDay, Cacheable: true, Fetch: func(ctx context.Context) (any, error) {
			return client.TimeOfDay(ctx)
		}},
		{Name: KeyRecentSessions, Cacheable: true, Fetch: func(ctx context.Context) (any, error) {
			return client.RecentSessions(ctx, recentLimit)
		}},
		{Name: KeyCategories, Cacheable: true, Fetch: func(ctx context.Context) (any, error) {
			return client.Categories(ctx)
		}},
		{Name: KeyCategoryStats, Cacheable: true, Fetch: func(ctx context.Context) (any, error) {
			return client.CategoryStats(ctx)
		}},
		{Name: KeyDatabaseHealth, Cacheable: true, Fetch: func(ctx context.Context) (any, error) {
			return client.DatabaseHealth(ctx)
		}},
		{Name: KeyDatabaseStats, Cacheable: true, Fetch: func(ctx context.Context) (any, error) {
			return client.DatabaseStats(ctx)
		}},
		{Name: KeyTodaySessions, Cacheable: true, Fetch: func(ctx context.Context) (any, error) {
			return client.TodayMonitorSessions(ctx)
		}},
	}
}

// Service pairs the aggregator with the monitor's write endpoints and
// applies cache invalidation scoped to each operation's blast radius.
type Service struct {
	client *api.Client
	agg    *Aggregator
}

// NewService wires the mutating monitor operations to the aggregator.
func NewService(client *api.Client, agg *Aggregator) *Service {
	return &Service{client: client, agg: agg}
}

// Aggregator exposes the underlying aggregator for refresh loops.
func (s *Service) Aggregator() *Aggregator {
	return s.agg
}

// StartMonitor starts server-side recording. Only the status entry goes
// stale.
func (s *Service) StartMonitor(ctx context.Context) error {
	if err := s.client.StartMonitor(ctx); err != nil {
		return err
	}
	s.agg.Invalidate(KeySystemStatus)
	return nil
}

// StopMonitor stops server-side recording.
func (s *Service) StopMonitor(ctx context.Context) error {
	if err := s.client.StopMonitor(ctx); err != nil {
		return err
	}
	s.agg.Invalidate(KeySystemStatus)
	return nil
}

// UpdateConfig pushes new monitor configuration.
func (s *Service) UpdateConfig(ctx context.Context, cfg api.MonitorConfig) error {
	if err := s.client.UpdateMonitorConfig(ctx, cfg); err != nil {
		return err
	}
	s.agg.Invalidate(KeySystemStatus)
	return nil
}

// SubmitFeedback reports a miscategorized session. Category statistics
// may shift once the correction lands.
func (s *Service) SubmitFeedback(ctx context.Context, fb api.Feedback) error {
	if err := s.client.SubmitFeedback(ctx, fb); err != nil {
		return err
	}
	s.agg.Invalidate(KeyCategoryStats)
	return nil
}

// TriggerRetrain kicks off model retraining, which reshapes the derived
// analysis sources.
func (s *Service) TriggerRetrain(ctx context.Context) error {
	if err := s.client.TriggerRetrain(ctx); err != nil {
		return err
	}
	s.agg.Invalidate(KeyCategoryStats)
	s.agg.Invalidate(KeyTimeOfDay)
	return nil
}

// Export pulls the monitor's bulk data.
func (s *Service) Export(ctx context.Context) (*api.ExportBundle, error) {
	return s.client.Export(ctx)
}

// Import pushes bulk data into the monitor. Everything cached may now be
// stale.
func (s *Service) Import(ctx context.Context, bundle api.ExportBundle) error {
	if err := s.client.Import(ctx, bundle); err != nil {
		return err
	}
	s.agg.InvalidateAll()
	return nil
}
