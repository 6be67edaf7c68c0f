// Package ledger owns all mutation of business financial, reputation, and
// inventory state. Every change arrives as a FinancialDelta and is applied
// atomically inside a repository transaction.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hustlehq/tycoonsim/internal/clock"
	"github.com/hustlehq/tycoonsim/internal/domain"
	"github.com/hustlehq/tycoonsim/internal/event"
	"github.com/hustlehq/tycoonsim/internal/logger"
	"github.com/hustlehq/tycoonsim/internal/metrics"
	"github.com/hustlehq/tycoonsim/internal/repository"
)

// Service applies atomic state deltas to businesses
type Service interface {
	// ApplyDelta loads the business under lock, applies every field of the
	// delta as one unit, and commits. A zero delta is a no-op and performs
	// no write. Clamps and caps are enforced here, not by callers.
	ApplyDelta(ctx context.Context, businessID string, delta domain.FinancialDelta) (*domain.BusinessState, error)
}

type service struct {
	repo  repository.Business
	bus   event.Bus
	clock clock.Clock
}

// NewService creates a new ledger service
func NewService(repo repository.Business, bus event.Bus, clk clock.Clock) Service {
	return &service{
		repo:  repo,
		bus:   bus,
		clock: clk,
	}
}

func (s *service) ApplyDelta(ctx context.Context, businessID string, delta domain.FinancialDelta) (*domain.BusinessState, error) {
	log := logger.FromContext(ctx)

	if delta.IsZero() {
		return nil, nil
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	state, err := tx.GetBusinessForUpdate(ctx, businessID)
	if err != nil {
		return nil, err
	}

	apply(state, delta, s.clock)

	if err := tx.UpdateBusiness(ctx, *state); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitFailed, err)
	}

	if delta.RevenueCents > 0 {
		metrics.RevenueCentsTotal.Add(float64(delta.RevenueCents))
	}
	if delta.ExpensesCents > 0 {
		metrics.ExpensesCentsTotal.Add(float64(delta.ExpensesCents))
	}

	log.Debug(LogMsgDeltaApplied,
		slog.String("business_id", businessID),
		slog.Int64("cash_delta_cents", int64(delta.CashCents)),
		slog.Int64("cash_cents", int64(state.CashCents)),
		slog.Int("reputation", state.Reputation))

	if err := s.bus.Publish(ctx, event.NewLedgerAppliedEvent(businessID)); err != nil {
		log.Warn(LogMsgPublishFailed, slog.String("error", err.Error()))
	}

	return state, nil
}

// apply mutates state in place with every field of the delta
func apply(state *domain.BusinessState, delta domain.FinancialDelta, clk clock.Clock) {
	state.CashCents += delta.CashCents
	state.TotalRevenueCents += delta.RevenueCents
	state.TotalExpensesCents += delta.ExpensesCents

	state.Reputation = domain.ClampPercent(state.Reputation + delta.ReputationDelta)
	state.Satisfaction = domain.ClampPercent(state.Satisfaction + delta.SatisfactionDelta)

	state.OrdersCompleted += delta.OrdersCompletedDelta
	state.OrdersFailed += delta.OrdersFailedDelta

	if len(delta.Inventory) > 0 {
		if state.Inventory == nil {
			state.Inventory = make(map[string]int, len(delta.Inventory))
		}
		for item, qty := range delta.Inventory {
			next := state.Inventory[item] + qty
			if next < 0 {
				next = 0
			}
			state.Inventory[item] = next
		}
	}

	if len(delta.Reviews) > 0 {
		state.Reviews = append(append([]domain.Review(nil), delta.Reviews...), state.Reviews...)
		if len(state.Reviews) > domain.MaxReviews {
			state.Reviews = state.Reviews[:domain.MaxReviews]
		}
		state.ReviewCount += len(delta.Reviews)
	}

	if delta.Employees != nil {
		state.Employees = *delta.Employees
	}
	if delta.RecruitmentPool != nil {
		pool := *delta.RecruitmentPool
		if len(pool) > domain.MaxRecruitmentPool {
			pool = pool[len(pool)-domain.MaxRecruitmentPool:]
		}
		state.RecruitmentPool = pool
	}
	if delta.SimHour != nil {
		state.SimHour = *delta.SimHour
	}
	if delta.LastRecruitmentAt != nil {
		state.LastRecruitmentAt = *delta.LastRecruitmentAt
	}
	if delta.LastPayrollAt != nil {
		state.LastPayrollAt = *delta.LastPayrollAt
	}

	state.LastActiveAt = clk.Now()
}
