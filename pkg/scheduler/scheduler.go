// Package scheduler provides one-shot deferred task scheduling over an
// injectable clock, so time-dependent behavior is testable with a fake
// clock instead of wall-clock sleeps.
package scheduler

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Handle refers to a scheduled task. Cancellation is exposed for
// testability; a task that has already fired reports Cancel() == false.
type Handle interface {
	// Cancel stops the task from firing. It returns true if the task was
	// still pending, false if it already fired or was already cancelled.
	Cancel() bool
}

// Scheduler schedules tasks to run once after a delay.
type Scheduler interface {
	// ScheduleOnce runs fn once after delay. It never blocks; the task
	// runs on its own goroutine when the delay elapses.
	ScheduleOnce(delay time.Duration, fn func()) Handle
}

// clockScheduler implements Scheduler over a clockwork.Clock.
type clockScheduler struct {
	clock clockwork.Clock
}

// New creates a Scheduler backed by the given clock. A nil clock uses the
// real wall clock.
func New(clock clockwork.Clock) Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &clockScheduler{clock: clock}
}

func (s *clockScheduler) ScheduleOnce(delay time.Duration, fn func()) Handle {
	h := &timerHandle{}
	h.timer = s.clock.AfterFunc(delay, func() {
		h.mu.Lock()
		if h.cancelled {
			h.mu.Unlock()
			return
		}
		h.fired = true
		h.mu.Unlock()
		fn()
	})
	return h
}

type timerHandle struct {
	mu        sync.Mutex
	timer     clockwork.Timer
	fired     bool
	cancelled bool
}

func (h *timerHandle) Cancel() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.fired || h.cancelled {
		return false
	}
	h.cancelled = true
	h.timer.Stop()
	return true
}
