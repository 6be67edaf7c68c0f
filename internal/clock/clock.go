package clock

import (
	"sync"
	"time"
)

// Clock abstracts time so simulation cadences can be tested deterministically
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// Real uses the actual system time
type Real struct{}

// NewReal creates a new Real clock
func NewReal() *Real {
	return &Real{}
}

// Now returns the current system time
func (c *Real) Now() time.Time {
	return time.Now()
}

// Since returns the duration since the given time
func (c *Real) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// Simulated allows tests to manipulate time. Safe for concurrent use because
// scheduler ticks and test advances run on different goroutines.
type Simulated struct {
	mu      sync.Mutex
	current time.Time
}

// NewSimulated creates a Simulated clock starting at the given time
func NewSimulated(start time.Time) *Simulated {
	return &Simulated{current: start}
}

// Now returns the simulated current time
func (c *Simulated) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Since returns the duration since the given time
func (c *Simulated) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// Advance moves the simulated time forward by the given duration
func (c *Simulated) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Set sets the simulated time to a specific value
func (c *Simulated) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}
