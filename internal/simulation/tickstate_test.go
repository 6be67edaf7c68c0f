package simulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testIntervals = Intervals{
	Recruitment: 2 * time.Minute,
	OrderGen:    15 * time.Second,
	AutoWork:    10 * time.Second,
	Wage:        45 * time.Second,
	Payroll:     6 * time.Minute,
}

func TestTickStateGatesWaitOneInterval(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	ts := NewTickState(testIntervals, now)

	assert.False(t, ts.FireIfReady(GateOrderGen, now))
	assert.False(t, ts.FireIfReady(GateOrderGen, now.Add(10*time.Second)))
	assert.True(t, ts.FireIfReady(GateOrderGen, now.Add(15*time.Second)))

	// Tripped: not ready again until another interval passes.
	assert.False(t, ts.FireIfReady(GateOrderGen, now.Add(20*time.Second)))
	assert.True(t, ts.FireIfReady(GateOrderGen, now.Add(30*time.Second)))
}

func TestTickStatePauseBlocksGates(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	ts := NewTickState(testIntervals, now)

	ts.Pause()
	assert.True(t, ts.Paused())
	assert.False(t, ts.FireIfReady(GateOrderGen, now.Add(time.Hour)))
}

func TestTickStateResumeResetsGates(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	ts := NewTickState(testIntervals, now)

	ts.Pause()

	// A long pause elapses many intervals.
	resumeAt := now.Add(time.Hour)
	ts.Resume(resumeAt)

	assert.False(t, ts.Paused())
	// No catch-up burst: each gate waits a fresh interval from resume.
	assert.False(t, ts.FireIfReady(GateOrderGen, resumeAt))
	assert.False(t, ts.FireIfReady(GatePayroll, resumeAt))
	assert.True(t, ts.FireIfReady(GateOrderGen, resumeAt.Add(15*time.Second)))
	assert.True(t, ts.FireIfReady(GatePayroll, resumeAt.Add(6*time.Minute)))
}

func TestTickStateRearmAllowsImmediateRetry(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	ts := NewTickState(testIntervals, now)

	fired := now.Add(15 * time.Second)
	assert.True(t, ts.FireIfReady(GateOrderGen, fired))
	assert.False(t, ts.FireIfReady(GateOrderGen, fired))

	ts.Rearm(GateOrderGen)
	assert.True(t, ts.FireIfReady(GateOrderGen, fired))
}

func TestTickStateUnknownGate(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	ts := NewTickState(testIntervals, now)

	assert.False(t, ts.FireIfReady("nope", now.Add(time.Hour)))
}
