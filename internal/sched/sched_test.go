package sched

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestManualAdvanceFiresDueCallbacks(t *testing.T) {
	t.Parallel()
	m := NewManual(time.Date(2024, 8, 12, 9, 0, 0, 0, time.UTC))

	var ticks int
	m.Every(time.Second, func() { ticks++ })

	m.Advance(time.Second)
	if ticks != 1 {
		t.Fatalf("ticks after 1s = %d, want 1", ticks)
	}

	m.Advance(5 * time.Second)
	if ticks != 6 {
		t.Fatalf("ticks after 6s = %d, want 6", ticks)
	}
}

func TestManualConcurrentIntervals(t *testing.T) {
	t.Parallel()
	m := NewManual(time.Date(2024, 8, 12, 9, 0, 0, 0, time.UTC))

	var fast, slow int
	m.Every(time.Second, func() { fast++ })
	m.Every(30*time.Second, func() { slow++ })

	m.Advance(90 * time.Second)
	if fast != 90 {
		t.Fatalf("1s ticket fired %d times, want 90", fast)
	}
	if slow != 3 {
		t.Fatalf("30s ticket fired %d times, want 3", slow)
	}
}

func TestManualStopCancelsOnlyItsTicket(t *testing.T) {
	t.Parallel()
	m := NewManual(time.Date(2024, 8, 12, 9, 0, 0, 0, time.UTC))

	var a, b int
	ticketA := m.Every(time.Second, func() { a++ })
	m.Every(time.Second, func() { b++ })

	m.Advance(2 * time.Second)
	ticketA.Stop()
	ticketA.Stop() // idempotent
	m.Advance(2 * time.Second)

	if a != 2 {
		t.Fatalf("stopped ticket fired %d times, want 2", a)
	}
	if b != 4 {
		t.Fatalf("sibling ticket fired %d times, want 4", b)
	}
}

func TestManualAdvanceSequencesCallbacks(t *testing.T) {
	t.Parallel()
	m := NewManual(time.Date(2024, 8, 12, 9, 0, 0, 0, time.UTC))

	var order []string
	m.Every(2*time.Second, func() { order = append(order, "two") })
	m.Every(3*time.Second, func() { order = append(order, "three") })

	m.Advance(6 * time.Second)
	// due instants: 2,3,4,6,6 - fired in chronological order
	want := []string{"two", "three", "two", "two", "three"}
	if len(order) != len(want) {
		t.Fatalf("fired %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("fired %v, want %v", order, want)
		}
	}
}

func TestWallTicketStops(t *testing.T) {
	t.Parallel()
	w := NewWall()

	var ticks atomic.Int64
	ticket := w.Every(5*time.Millisecond, func() { ticks.Add(1) })

	time.Sleep(30 * time.Millisecond)
	ticket.Stop()
	ticket.Stop() // idempotent
	settled := ticks.Load()
	if settled == 0 {
		t.Fatal("wall ticket never fired")
	}

	time.Sleep(20 * time.Millisecond)
	if ticks.Load() > settled+1 {
		t.Fatalf("ticket kept firing after Stop: %d then %d", settled, ticks.Load())
	}
}
