package sched

import (
	"sort"
	"sync"
	"time"
)

// Manual is a virtual-time Scheduler for tests. Callbacks fire
// synchronously from Advance, in due order, on the calling goroutine.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	entries map[int]*manualEntry
	nextID  int
}

type manualEntry struct {
	interval time.Duration
	next     time.Time
	fn       func()
}

// NewManual creates a virtual scheduler starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start, entries: make(map[int]*manualEntry)}
}

// Now returns the current virtual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Every(interval time.Duration, fn func()) Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.entries[id] = &manualEntry{
		interval: interval,
		next:     m.now.Add(interval),
		fn:       fn,
	}
	return &manualTicket{sched: m, id: id}
}

// Advance moves virtual time forward by d, firing every due callback in
// chronological order. A callback never fires twice for the same instant
// of the same ticket, and each runs to completion before the next fires.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		fn, fireAt, ok := m.popDue(target)
		if !ok {
			break
		}
		m.mu.Lock()
		if fireAt.After(m.now) {
			m.now = fireAt
		}
		m.mu.Unlock()
		fn()
	}

	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

// popDue finds the earliest entry due at or before target, schedules its
// next occurrence, and returns its callback.
func (m *Manual) popDue(target time.Time) (func(), time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]int, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var best *manualEntry
	for _, id := range ids {
		e := m.entries[id]
		if e.next.After(target) {
			continue
		}
		if best == nil || e.next.Before(best.next) {
			best = e
		}
	}
	if best == nil {
		return nil, time.Time{}, false
	}

	fireAt := best.next
	best.next = best.next.Add(best.interval)
	return best.fn, fireAt, true
}

type manualTicket struct {
	sched *Manual
	id    int
	once  sync.Once
}

func (t *manualTicket) Stop() {
	t.once.Do(func() {
		t.sched.mu.Lock()
		defer t.sched.mu.Unlock()
		delete(t.sched.entries, t.id)
	})
}
