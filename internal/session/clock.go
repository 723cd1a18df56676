package session

import (
	"sync"
	"time"
)

// Clock is the monotonic time source that drives countdown ticks.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock; its readings carry Go's monotonic component.
func SystemClock() Clock {
	return systemClock{}
}

// ManualClock only moves when Advance is called.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Stopwatch turns successive clock readings into tick deltas.
type Stopwatch struct {
	clock Clock
	last  time.Time
}

func NewStopwatch(clock Clock) *Stopwatch {
	return &Stopwatch{clock: clock, last: clock.Now()}
}

// Lap returns the time since the previous Lap (or construction). Never negative.
func (s *Stopwatch) Lap() time.Duration {
	now := s.clock.Now()
	d := now.Sub(s.last)
	s.last = now
	if d < 0 {
		return 0
	}
	return d
}
