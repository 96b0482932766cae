package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

type RealClock struct{}

func NewRealClock() Clock {
	return RealClock{}
}

func (RealClock) Now() time.Time {
	return time.Now()
}

func (RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// StepClock advances by a fixed step on every Now call, so a start/finish
// pair measures exactly one step. Safe for concurrent use.
type StepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{now: start, step: step}
}

func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func (c *StepClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}
