// Package dashboard merges many independent remote data sources into one
// consistent snapshot. A failing source never breaks the whole view.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Source is one independently fetchable remote query.
type Source struct {
	Name      string
	Fetch     func(ctx context.Context) (any, error)
	Cacheable bool
}

// Result is one settled source entry: either a payload or an isolated
// failure reason, never both.
type Result struct {
	Payload any
	Err     string
}

// Failed reports whether the source settled with an error marker.
func (r Result) Failed() bool {
	return r.Err != ""
}

// Snapshot maps source names to their settled results. It is replaced
// wholesale on each refresh and never partially mutated.
type Snapshot map[string]Result

// Aggregator fans out over its sources and publishes merged snapshots.
type Aggregator struct {
	sources []Source
	cache   *ttlCache
	flight  singleflight.Group

	inFlight atomic.Bool
	last     atomic.Pointer[Snapshot]

	logger *slog.Logger
}

// Option configures an Aggregator.
type Option func(*aggregatorConfig)

type aggregatorConfig struct {
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// WithTTL overrides the cache time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(c *aggregatorConfig) { c.ttl = ttl }
}

// WithClock injects a time source for cache aging, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *aggregatorConfig) { c.now = now }
}

// WithLogger sets the aggregator's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *aggregatorConfig) { c.logger = logger }
}

// New creates an Aggregator over the given sources.
func New(sources []Source, opts ...Option) *Aggregator {
	cfg := aggregatorConfig{ttl: DefaultTTL, now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Aggregator{
		sources: sources,
		cache:   newTTLCache(cfg.ttl, cfg.now),
		logger:  cfg.logger,
	}
}

// Refresh fetches every source concurrently and publishes a complete
// snapshot once all have settled. It never fails: each source error is
// isolated into that source's entry. A Refresh observed while another is
// outstanding is skipped and returns the last published snapshot.
func (a *Aggregator) Refresh(ctx context.Context) Snapshot {
	if !a.inFlight.CompareAndSwap(false, true) {
		return a.Snapshot()
	}
	defer a.inFlight.Store(false)

	snap := make(Snapshot, len(a.sources))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, src := range a.sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			result := a.settle(ctx, src)
			mu.Lock()
			snap[src.Name] = result
			mu.Unlock()
		}(src)
	}
	wg.Wait()

	a.last.Store(&snap)
	return snap
}

// Fetch settles a single source on demand, outside a full refresh. The
// cache is consulted first; concurrent fetches of the same source, one
// from a running Refresh included, share a single underlying call. The
// second return is false when no source carries that name.
func (a *Aggregator) Fetch(ctx context.Context, name string) (Result, bool) {
	for _, src := range a.sources {
		if src.Name == name {
			return a.settle(ctx, src), true
		}
	}
	return Result{}, false
}

// settle resolves one source to a Result, consulting the cache first and
// converting every failure mode, panics included, into an error marker.
func (a *Aggregator) settle(ctx context.Context, src Source) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{Err: fmt.Sprintf("panic: %v", r)}
			a.logger.Warn("dashboard source panicked", "source", src.Name, "error", r)
		}
	}()

	if src.Cacheable {
		if value, ok := a.cache.get(src.Name); ok {
			return Result{Payload: value}
		}
	}

	value, err, _ := a.flight.Do(src.Name, func() (any, error) {
		return src.Fetch(ctx)
	})
	if err != nil {
		a.logger.Warn("dashboard source failed", "source", src.Name, "error", err)
		return Result{Err: err.Error()}
	}

	if src.Cacheable {
		a.cache.set(src.Name, value)
	}
	return Result{Payload: value}
}

// Snapshot returns the last published snapshot, or an empty one before
// the first refresh.
func (a *Aggregator) Snapshot() Snapshot {
	if snap := a.last.Load(); snap != nil {
		return *snap
	}
	return Snapshot{}
}

// Invalidate drops one cached source so the next refresh refetches it.
func (a *Aggregator) Invalidate(key string) {
	a.cache.invalidate(key)
}

// InvalidateAll drops every cached source.
func (a *Aggregator) InvalidateAll() {
	a.cache.invalidateAll()
}
