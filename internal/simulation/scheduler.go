// Package simulation drives the tick loop: a single ticker fans out one job
// per tracked business to a worker pool, and each job runs the gated
// activities (recruitment, order generation, auto-accept/auto-work, wages,
// payroll) against fresh state. Every financial effect flows through the
// ledger; the scheduler never writes business fields directly.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/hustlehq/tycoonsim/internal/catalog"
	"github.com/hustlehq/tycoonsim/internal/clock"
	"github.com/hustlehq/tycoonsim/internal/domain"
	"github.com/hustlehq/tycoonsim/internal/event"
	"github.com/hustlehq/tycoonsim/internal/ledger"
	"github.com/hustlehq/tycoonsim/internal/logger"
	"github.com/hustlehq/tycoonsim/internal/metrics"
	"github.com/hustlehq/tycoonsim/internal/naming"
	"github.com/hustlehq/tycoonsim/internal/order"
	"github.com/hustlehq/tycoonsim/internal/repository"
	"github.com/hustlehq/tycoonsim/internal/staffing"
	"github.com/hustlehq/tycoonsim/internal/worker"
)

// Config holds scheduler cadence and pool sizing
type Config struct {
	TickInterval time.Duration
	Intervals    Intervals
	Workers      int
	QueueSize    int
}

// Deps are the collaborating services the tick loop drives
type Deps struct {
	Clock      clock.Clock
	Ledger     ledger.Service
	Staffing   staffing.Service
	Catalog    catalog.Service
	Businesses repository.Business
	Orders     repository.Order
	Bus        event.Bus
	Names      *naming.Resolver
	Rand       *rand.Rand
}

// Scheduler owns the tick loop and the per-business tick state
type Scheduler struct {
	cfg  Config
	deps Deps
	gen  *generator
	pool *worker.Pool

	mu     sync.RWMutex
	states map[string]*TickState

	quit chan struct{}
	wg   sync.WaitGroup
}

// NewScheduler creates a scheduler; call Start to begin ticking
func NewScheduler(cfg Config, deps Deps) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		deps:   deps,
		gen:    newGenerator(deps.Rand, deps.Names),
		pool:   worker.NewPool(cfg.Workers, cfg.QueueSize),
		states: make(map[string]*TickState),
		quit:   make(chan struct{}),
	}
}

// Start registers every persisted business and launches the tick loop
func (s *Scheduler) Start(ctx context.Context) error {
	ids, err := s.deps.Businesses.ListBusinessIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		s.Register(ctx, id)
	}

	s.pool.Start()

	s.wg.Add(1)
	go s.loop()

	logger.FromContext(ctx).Info(LogMsgSchedulerStarted,
		slog.Int("businesses", len(ids)),
		slog.Duration("tick_interval", s.cfg.TickInterval))
	return nil
}

// Stop halts the tick loop and drains the worker pool
func (s *Scheduler) Stop(ctx context.Context) {
	close(s.quit)
	s.wg.Wait()
	s.pool.Stop()
	logger.FromContext(ctx).Info(LogMsgSchedulerStopped)
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.enqueueTicks()
		case <-s.quit:
			return
		}
	}
}

func (s *Scheduler) enqueueTicks() {
	s.mu.RLock()
	ids := make([]string, 0, len(s.states))
	for id := range s.states {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	for _, id := range ids {
		if !s.pool.TryEnqueue(&businessTickJob{scheduler: s, businessID: id}) {
			logger.FromContext(context.Background()).Warn(LogMsgTickQueueFull,
				slog.String("business_id", id))
		}
	}
}

// Register starts tracking a business. Idempotent.
func (s *Scheduler) Register(ctx context.Context, businessID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.states[businessID]; ok {
		return
	}
	s.states[businessID] = NewTickState(s.cfg.Intervals, s.deps.Clock.Now())
	metrics.BusinessesTracked.Set(float64(len(s.states)))

	logger.FromContext(ctx).Info(LogMsgBusinessRegistered,
		slog.String("business_id", businessID))
}

// Unregister stops tracking a business
func (s *Scheduler) Unregister(businessID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, businessID)
	metrics.BusinessesTracked.Set(float64(len(s.states)))
}

// Pause suspends simulation for one business
func (s *Scheduler) Pause(ctx context.Context, businessID string) error {
	ts := s.state(businessID)
	if ts == nil {
		return fmt.Errorf("%w: %s", domain.ErrBusinessNotFound, ErrMsgNotTracked)
	}
	ts.Pause()
	logger.FromContext(ctx).Info(LogMsgBusinessPaused, slog.String("business_id", businessID))
	return nil
}

// Resume re-enables simulation for one business; gate references reset to
// now so the pause produces no catch-up burst
func (s *Scheduler) Resume(ctx context.Context, businessID string) error {
	ts := s.state(businessID)
	if ts == nil {
		return fmt.Errorf("%w: %s", domain.ErrBusinessNotFound, ErrMsgNotTracked)
	}
	ts.Resume(s.deps.Clock.Now())
	logger.FromContext(ctx).Info(LogMsgBusinessResumed, slog.String("business_id", businessID))
	return nil
}

// IsPaused reports the pause flag for a tracked business
func (s *Scheduler) IsPaused(businessID string) (bool, error) {
	ts := s.state(businessID)
	if ts == nil {
		return false, fmt.Errorf("%w: %s", domain.ErrBusinessNotFound, ErrMsgNotTracked)
	}
	return ts.Paused(), nil
}

func (s *Scheduler) state(businessID string) *TickState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[businessID]
}

// businessTickJob runs one business's tick on a pool worker
type businessTickJob struct {
	scheduler  *Scheduler
	businessID string
}

func (j *businessTickJob) Process(ctx context.Context) error {
	return j.scheduler.RunTick(ctx, j.businessID)
}

// RunTick executes one tick for one business. A failed step logs, re-arms
// its gate so the next tick retries against fresh state, and never aborts
// the remaining steps or re-applies a stale delta.
func (s *Scheduler) RunTick(ctx context.Context, businessID string) error {
	ts := s.state(businessID)
	if ts == nil || ts.Paused() {
		return nil
	}

	ctx = logger.WithBusinessID(ctx, businessID)
	log := logger.FromContext(ctx)
	now := s.deps.Clock.Now()

	start := time.Now()
	metrics.TicksTotal.Inc()
	defer func() { metrics.TickDuration.Observe(time.Since(start).Seconds()) }()

	state, err := s.deps.Businesses.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, domain.ErrBusinessNotFound) {
			s.Unregister(businessID)
			log.Info(LogMsgBusinessGone)
			return nil
		}
		metrics.TickErrors.Inc()
		return fmt.Errorf(ErrMsgGetBusinessFailed, err)
	}

	bt, ok := s.deps.Catalog.GetBusinessType(state.TypeID)
	if !ok {
		log.Warn(LogMsgCatalogMiss, slog.String("type_id", state.TypeID))
		return nil
	}

	if ts.FireIfReady(GateRecruitment, now) {
		if state, ok = s.stepRecruitment(ctx, state, now); !ok {
			ts.Rearm(GateRecruitment)
		}
	}
	if ts.FireIfReady(GateOrderGen, now) {
		if state, ok = s.stepOrderGeneration(ctx, state, bt, now); !ok {
			ts.Rearm(GateOrderGen)
		}
	}

	state = s.stepAutoAccept(ctx, state, now)

	if state.HasManager() && ts.FireIfReady(GateAutoWork, now) {
		if state, ok = s.stepAutoWork(ctx, state, bt, now); !ok {
			ts.Rearm(GateAutoWork)
		}
	}
	if ts.FireIfReady(GateWage, now) {
		if state, ok = s.stepWageAccrual(ctx, state); !ok {
			ts.Rearm(GateWage)
		}
	}
	if ts.FireIfReady(GatePayroll, now) {
		if !s.stepPayroll(ctx, state, now) {
			ts.Rearm(GatePayroll)
		}
	}

	return nil
}

// stepRecruitment refreshes the candidate pool
func (s *Scheduler) stepRecruitment(ctx context.Context, state *domain.BusinessState, now time.Time) (*domain.BusinessState, bool) {
	log := logger.FromContext(ctx)

	refresh, ok := s.deps.Staffing.RefreshPool(state, now)
	if !ok {
		return state, true
	}

	applied, err := s.deps.Ledger.ApplyDelta(ctx, state.ID, refresh.Delta)
	if err != nil {
		log.Error(LogMsgStepFailed, slog.String("step", GateRecruitment), slog.String("error", err.Error()))
		metrics.TickErrors.Inc()
		return state, false
	}

	s.publish(ctx, event.NewRecruitsArrivedEvent(state.ID, refresh.NewCount, refresh.PoolSize))
	log.Debug(LogMsgPoolRefreshed,
		slog.Int("new_candidates", refresh.NewCount),
		slog.Int("pool_size", refresh.PoolSize))
	return applied, true
}

// stepOrderGeneration advances the simulated hour and persists rolled orders
func (s *Scheduler) stepOrderGeneration(ctx context.Context, state *domain.BusinessState, bt *domain.BusinessType, now time.Time) (*domain.BusinessState, bool) {
	log := logger.FromContext(ctx)

	result := s.gen.generate(state, bt, now)

	if len(result.orders) > 0 {
		if err := s.deps.Orders.CreateOrders(ctx, result.orders); err != nil {
			// Orders and the hour advance retry together next tick.
			log.Error(LogMsgCreateOrdersFailed, slog.String("error", err.Error()))
			metrics.TickErrors.Inc()
			return state, false
		}
		metrics.OrdersGenerated.WithLabelValues(bt.Category).Add(float64(len(result.orders)))
	}

	applied, err := s.deps.Ledger.ApplyDelta(ctx, state.ID, domain.FinancialDelta{SimHour: &result.simHour})
	if err != nil {
		log.Error(LogMsgStepFailed, slog.String("step", GateOrderGen), slog.String("error", err.Error()))
		metrics.TickErrors.Inc()
		return state, false
	}

	if len(result.orders) > 0 {
		s.publish(ctx, event.NewOrdersGeneratedEvent(state.ID, len(result.orders), result.simHour))
		log.Debug(LogMsgOrdersGenerated,
			slog.Int("count", len(result.orders)),
			slog.Int("sim_hour", result.simHour))
	}
	return applied, true
}

// stepAutoAccept lets a managed roster claim pending orders up to free capacity
func (s *Scheduler) stepAutoAccept(ctx context.Context, state *domain.BusinessState, now time.Time) *domain.BusinessState {
	log := logger.FromContext(ctx)

	pending, err := s.deps.Orders.ListOrdersByStatus(ctx, state.ID, domain.OrderPending)
	if err != nil {
		log.Error(LogMsgStepFailed, slog.String("step", "auto_accept"), slog.String("error", err.Error()))
		metrics.TickErrors.Inc()
		return state
	}
	active, err := s.deps.Orders.ListOrdersByStatus(ctx, state.ID, domain.OrderAccepted, domain.OrderInProgress)
	if err != nil {
		log.Error(LogMsgStepFailed, slog.String("step", "auto_accept"), slog.String("error", err.Error()))
		metrics.TickErrors.Inc()
		return state
	}

	for _, o := range s.deps.Staffing.PlanAutoAccept(state, pending, active) {
		accepted, err := order.Accept(o, now)
		if err != nil {
			continue
		}
		if err := s.deps.Orders.UpdateOrderGuarded(ctx, accepted, domain.OrderPending); err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) {
				log.Debug(LogMsgLostRace, slog.String("order_id", o.ID))
				continue
			}
			log.Error(LogMsgStepFailed, slog.String("step", "auto_accept"), slog.String("error", err.Error()))
			metrics.TickErrors.Inc()
			continue
		}
		s.publish(ctx, event.NewOrderEvent(event.OrderAccepted, accepted, true))
		log.Debug(LogMsgAutoAccepted, slog.String("order_id", o.ID))
	}
	return state
}

// stepAutoWork completes or fails the oldest accepted orders and applies the
// pass as a single batched ledger delta
func (s *Scheduler) stepAutoWork(ctx context.Context, state *domain.BusinessState, bt *domain.BusinessType, now time.Time) (*domain.BusinessState, bool) {
	log := logger.FromContext(ctx)

	accepted, err := s.deps.Orders.ListOrdersByStatus(ctx, state.ID, domain.OrderAccepted, domain.OrderInProgress)
	if err != nil {
		log.Error(LogMsgStepFailed, slog.String("step", GateAutoWork), slog.String("error", err.Error()))
		metrics.TickErrors.Inc()
		return state, false
	}

	report, err := s.deps.Staffing.RunAutoWork(state, accepted, bt, now)
	if err != nil {
		log.Error(LogMsgStepFailed, slog.String("step", GateAutoWork), slog.String("error", err.Error()))
		metrics.TickErrors.Inc()
		return state, false
	}

	// Persist terminal records first; only orders whose guarded write wins
	// contribute to the batched delta, so a lost race never double-counts.
	var delta domain.FinancialDelta

	for _, result := range report.Completed {
		if !s.persistTerminal(ctx, result.Order) {
			continue
		}
		delta.Merge(staffing.CompletionDelta(result, now))
		s.publish(ctx, event.NewOrderCompletedEvent(result.Order, result.TipCents, result.Rating, true))
	}
	for i, result := range report.Failed {
		if !s.persistTerminal(ctx, result.Order) {
			continue
		}
		delta.Merge(staffing.FailureDelta(result))
		s.publish(ctx, event.NewOrderEvent(event.OrderFailed, result.Order, true))
		if i < len(report.Stockouts) {
			so := report.Stockouts[i]
			s.publish(ctx, event.NewStockoutEvent(state.ID, so.OrderID, so.Item, so.Required, so.Available))
		}
	}

	if delta.IsZero() {
		return state, true
	}

	applied, err := s.deps.Ledger.ApplyDelta(ctx, state.ID, delta)
	if err != nil {
		log.Error(LogMsgStepFailed, slog.String("step", GateAutoWork), slog.String("error", err.Error()))
		metrics.TickErrors.Inc()
		return state, false
	}

	log.Debug(LogMsgAutoWorkDone,
		slog.Int("completed", len(report.Completed)),
		slog.Int("failed", len(report.Failed)))
	return applied, true
}

// persistTerminal writes a terminal order record guarded on its pre-pass
// status. Returns false when the scheduler lost the race to a manual command.
func (s *Scheduler) persistTerminal(ctx context.Context, o domain.Order) bool {
	log := logger.FromContext(ctx)

	// Auto-work pulls from accepted/in_progress; the record carried the
	// original status forward until the transition, so the guard re-checks
	// against accepted first, then in_progress.
	err := s.deps.Orders.UpdateOrderGuarded(ctx, o, domain.OrderAccepted)
	if errors.Is(err, domain.ErrInvalidTransition) {
		err = s.deps.Orders.UpdateOrderGuarded(ctx, o, domain.OrderInProgress)
	}
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			log.Debug(LogMsgLostRace, slog.String("order_id", o.ID))
			return false
		}
		log.Error(LogMsgStepFailed, slog.String("step", GateAutoWork), slog.String("error", err.Error()))
		metrics.TickErrors.Inc()
		return false
	}
	return true
}

// stepWageAccrual adds one accrual slice and updates morale
func (s *Scheduler) stepWageAccrual(ctx context.Context, state *domain.BusinessState) (*domain.BusinessState, bool) {
	log := logger.FromContext(ctx)

	delta, ok := s.deps.Staffing.AccrueWages(state)
	if !ok {
		return state, true
	}

	applied, err := s.deps.Ledger.ApplyDelta(ctx, state.ID, delta)
	if err != nil {
		log.Error(LogMsgStepFailed, slog.String("step", GateWage), slog.String("error", err.Error()))
		metrics.TickErrors.Inc()
		return state, false
	}

	log.Debug(LogMsgWagesAccrued, slog.Int("employees", len(state.Employees)))
	return applied, true
}

// stepPayroll settles accrued wages; an overdraft warns but still deducts
func (s *Scheduler) stepPayroll(ctx context.Context, state *domain.BusinessState, now time.Time) bool {
	log := logger.FromContext(ctx)

	settlement, ok := s.deps.Staffing.SettleWages(state, now)
	if !ok {
		return true
	}

	applied, err := s.deps.Ledger.ApplyDelta(ctx, state.ID, settlement.Delta)
	if err != nil {
		log.Error(LogMsgStepFailed, slog.String("step", GatePayroll), slog.String("error", err.Error()))
		metrics.TickErrors.Inc()
		return false
	}

	overdrawn := applied.CashCents < 0
	s.publish(ctx, event.NewPayrollEvent(state.ID, settlement.AmountCents, settlement.EmployeeCount, overdrawn))
	log.Info(LogMsgPayrollSettled,
		slog.Int64("amount_cents", int64(settlement.AmountCents)),
		slog.Int("employees", settlement.EmployeeCount))

	if overdrawn {
		s.publish(ctx, event.NewOverdraftEvent(state.ID, applied.CashCents))
		log.Warn(LogMsgOverdraft, slog.Int64("cash_cents", int64(applied.CashCents)))
	}
	return true
}

func (s *Scheduler) publish(ctx context.Context, e event.Event) {
	if err := s.deps.Bus.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed,
			slog.String("type", string(e.Type)),
			slog.String("error", err.Error()))
	}
}
