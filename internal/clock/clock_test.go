package clock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock(t *testing.T) {
	c := NewReal()

	before := time.Now()
	now := c.Now()
	assert.False(t, now.Before(before))

	assert.GreaterOrEqual(t, c.Since(before), time.Duration(0))
}

func TestSimulatedClock(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewSimulated(start)

	assert.Equal(t, start, c.Now())

	c.Advance(2 * time.Hour)
	assert.Equal(t, start.Add(2*time.Hour), c.Now())
	assert.Equal(t, 2*time.Hour, c.Since(start))

	reset := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.Set(reset)
	assert.Equal(t, reset, c.Now())
}

func TestSimulatedClockConcurrentAdvance(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewSimulated(start)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Advance(time.Minute)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, start.Add(1000*time.Minute), c.Now())
}
