package simulation

import (
	"sync"
	"time"

	"github.com/hustlehq/tycoonsim/internal/cooldown"
)

// Intervals holds the cadence of every gated tick activity
type Intervals struct {
	Recruitment time.Duration
	OrderGen    time.Duration
	AutoWork    time.Duration
	Wage        time.Duration
	Payroll     time.Duration
}

// TickState is the scheduler's explicit per-business bookkeeping: one
// cooldown gate per activity plus the pause flag. It lives outside
// BusinessState so pausing and gate references never leak into persistence.
type TickState struct {
	mu     sync.Mutex
	paused bool
	gates  map[string]*cooldown.Gate
}

// NewTickState creates tick bookkeeping with all gates anchored at now, so a
// freshly registered business waits one full interval before each activity.
func NewTickState(iv Intervals, now time.Time) *TickState {
	return &TickState{gates: map[string]*cooldown.Gate{
		GateRecruitment: cooldown.NewGate(iv.Recruitment, now),
		GateOrderGen:    cooldown.NewGate(iv.OrderGen, now),
		GateAutoWork:    cooldown.NewGate(iv.AutoWork, now),
		GateWage:        cooldown.NewGate(iv.Wage, now),
		GatePayroll:     cooldown.NewGate(iv.Payroll, now),
	}}
}

// FireIfReady trips the named gate when its interval has elapsed. Returns
// false while paused so no activity runs against a paused business.
func (t *TickState) FireIfReady(gate string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.paused {
		return false
	}
	g, ok := t.gates[gate]
	if !ok || !g.Ready(now) {
		return false
	}
	g.Trip(now)
	return true
}

// Rearm undoes the named gate's last trip so the activity retries on the
// next tick. Called when a gated step fails after the gate already fired.
func (t *TickState) Rearm(gate string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if g, ok := t.gates[gate]; ok {
		g.Rearm()
	}
}

// Pause stops all simulation activity for the business
func (t *TickState) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paused = true
}

// Resume re-enables simulation. Every gate is re-anchored to now so a long
// pause does not produce a catch-up burst of deferred activity.
func (t *TickState) Resume(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.paused = false
	for _, g := range t.gates {
		g.Reset(now)
	}
}

// Paused reports whether the business is paused
func (t *TickState) Paused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paused
}
