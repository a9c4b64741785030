// Package sched funnels all periodic behavior through one Scheduler
// abstraction so cancellation and virtual-time testing are uniform.
package sched

import (
	"sync"
	"time"
)

// Scheduler produces periodic callbacks.
type Scheduler interface {
	// Every invokes fn once per interval until the returned Ticket is
	// stopped. Within one ticket, fn runs to completion before the next
	// tick fires.
	Every(interval time.Duration, fn func()) Ticket
}

// Ticket cancels a periodic subscription. Stop is idempotent.
type Ticket interface {
	Stop()
}

// Wall schedules on real wall-clock time.
type Wall struct{}

// NewWall creates a wall-clock scheduler.
func NewWall() *Wall {
	return &Wall{}
}

func (w *Wall) Every(interval time.Duration, fn func()) Ticket {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	t := &wallTicket{done: done}

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	return t
}

type wallTicket struct {
	once sync.Once
	done chan struct{}
}

func (t *wallTicket) Stop() {
	t.once.Do(func() { close(t.done) })
}
