// Package cooldown provides the cadence gates that pace the simulation's
// sub-processes. Each concern (recruitment, auto-work, wages, order
// generation, payroll) owns one Gate checked against its own last-run mark.
package cooldown

import "time"

// Gate is a minimum-interval gate around a repeated action. Not safe for
// concurrent use; each business's tick state owns its gates and ticks for
// one business never overlap.
type Gate struct {
	interval time.Duration
	lastRun  time.Time
	prevRun  time.Time
}

// NewGate creates a gate that first fires one full interval after mark
func NewGate(interval time.Duration, mark time.Time) *Gate {
	return &Gate{interval: interval, lastRun: mark, prevRun: mark}
}

// Ready reports whether the interval has elapsed since the last run
func (g *Gate) Ready(now time.Time) bool {
	return now.Sub(g.lastRun) >= g.interval
}

// Trip records a run at the given time
func (g *Gate) Trip(now time.Time) {
	g.prevRun = g.lastRun
	g.lastRun = now
}

// Rearm undoes the last Trip so the gate fires again on the next check.
// Used when a gated step fails and must retry next cycle instead of waiting
// out a full interval.
func (g *Gate) Rearm() {
	g.lastRun = g.prevRun
}

// Reset moves the reference point to now without running. Used on resume so
// paused time never produces a catch-up burst.
func (g *Gate) Reset(now time.Time) {
	g.lastRun = now
	g.prevRun = now
}

// Remaining returns how long until the gate is ready, zero if ready now
func (g *Gate) Remaining(now time.Time) time.Duration {
	rem := g.interval - now.Sub(g.lastRun)
	if rem < 0 {
		return 0
	}
	return rem
}

// LastRun returns the last time the gate was tripped or reset
func (g *Gate) LastRun() time.Time {
	return g.lastRun
}
