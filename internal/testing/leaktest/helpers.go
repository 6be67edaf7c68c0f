// Package leaktest provides goroutine and heap checkers for tests that spin
// up long-lived components (the SSE hub, the tick scheduler, the database
// pool) and must tear them down cleanly.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleDelay  = 10 * time.Millisecond
	pollInterval = 20 * time.Millisecond
	waitDeadline = 2 * time.Second
)

// GoroutineChecker snapshots the goroutine count so a test can assert the
// component under test shut down everything it started.
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count. Call it before
// starting the component under test.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(settleDelay)

	return &GoroutineChecker{before: runtime.NumGoroutine(), t: t}
}

// Check fails the test when more than tolerance goroutines outlive the
// snapshot. It polls until a deadline instead of sleeping a fixed amount so
// slow teardown (worker pool drain, hub client unregister) gets time to
// finish without padding fast tests.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	deadline := time.Now().Add(waitDeadline)
	leaked := runtime.NumGoroutine() - g.before
	for leaked > tolerance && time.Now().Before(deadline) {
		runtime.Gosched()
		time.Sleep(pollInterval)
		leaked = runtime.NumGoroutine() - g.before
	}

	if leaked > tolerance {
		g.t.Errorf("goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, g.before+leaked, leaked, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails the test when any goroutine it
// started is still alive afterwards.
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// MemoryChecker snapshots live heap usage for tests that churn business
// snapshots or event payloads in bulk.
type MemoryChecker struct {
	before uint64
	t      testing.TB
}

// NewMemoryChecker forces a collection and records the live heap size.
func NewMemoryChecker(t testing.TB) *MemoryChecker {
	t.Helper()

	runtime.GC()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &MemoryChecker{before: m.Alloc, t: t}
}

// Check fails the test when the live heap grew by more than maxGrowthMB
// since the snapshot.
func (m *MemoryChecker) Check(maxGrowthMB float64) {
	m.t.Helper()

	runtime.GC()
	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	var growthMB float64
	if after.Alloc > m.before {
		growthMB = float64(after.Alloc-m.before) / (1 << 20)
	}

	if growthMB > maxGrowthMB {
		m.t.Errorf("heap grew %.2fMB since snapshot (max %.2fMB)", growthMB, maxGrowthMB)
	}
}
