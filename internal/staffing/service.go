// Package staffing covers the simulated workforce: recruitment pool
// generation, hiring, wage accrual and settlement, and the automated
// accept/complete behavior staff perform on the business's behalf.
//
// Functions here are pure computations over a loaded BusinessState; they
// return deltas and terminal order records for the caller to persist. All
// randomness flows through the injected *rand.Rand.
package staffing

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/hustlehq/tycoonsim/internal/domain"
	"github.com/hustlehq/tycoonsim/internal/naming"
	"github.com/hustlehq/tycoonsim/internal/order"
)

// PoolRefresh is the outcome of a recruitment pool refresh
type PoolRefresh struct {
	Delta    domain.FinancialDelta
	NewCount int
	PoolSize int
}

// Stockout describes one failed stock check during an auto-work pass
type Stockout struct {
	OrderID   string
	Item      string
	Required  int
	Available int
}

// WorkReport is the outcome of one auto-work pass: a single merged delta
// plus the terminal order records to persist
type WorkReport struct {
	Delta     domain.FinancialDelta
	Completed []order.CompleteResult
	Failed    []order.FailResult
	Stockouts []Stockout
}

// Settlement is the outcome of a payroll settlement
type Settlement struct {
	Delta         domain.FinancialDelta
	AmountCents   domain.Money
	EmployeeCount int
}

// Service drives workforce behavior
type Service interface {
	RefreshPool(state *domain.BusinessState, now time.Time) (PoolRefresh, bool)
	PlanAutoAccept(state *domain.BusinessState, pending, active []domain.Order) []domain.Order
	RunAutoWork(state *domain.BusinessState, accepted []domain.Order, bt *domain.BusinessType, now time.Time) (WorkReport, error)
	AccrueWages(state *domain.BusinessState) (domain.FinancialDelta, bool)
	SettleWages(state *domain.BusinessState, now time.Time) (Settlement, bool)
	Hire(state *domain.BusinessState, candidateID string, now time.Time) (domain.FinancialDelta, error)
}

type service struct {
	rnd   *rand.Rand
	names *naming.Resolver
}

// NewService creates a staffing service with a seeded RNG for reproducibility
func NewService(rnd *rand.Rand, names *naming.Resolver) Service {
	return &service{rnd: rnd, names: names}
}

// TotalCapacity sums per-role order-handling capacity across the roster.
// An unstaffed business falls back to the default concurrency limit.
func TotalCapacity(employees []domain.Employee) int {
	if len(employees) == 0 {
		return domain.DefaultMaxConcurrentOrders
	}
	total := 0
	for _, e := range employees {
		total += e.Role.Capacity()
	}
	return total
}

// AutoWorkCount is the throughput rule: work power scales sub-linearly with
// headcount, N = max(1, floor(employees/1.5))
func AutoWorkCount(employees int) int {
	n := employees * 2 / WorkPowerDivisorX2
	if n < 1 {
		n = 1
	}
	return n
}

// RefreshPool generates 2-3 candidates and appends them to the pool, trimming
// the oldest overflow at the cap. Returns false when the pool is already full.
func (s *service) RefreshPool(state *domain.BusinessState, now time.Time) (PoolRefresh, bool) {
	if len(state.RecruitmentPool) >= domain.MaxRecruitmentPool {
		return PoolRefresh{}, false
	}

	count := MinCandidatesPerRefresh + s.rnd.Intn(MaxCandidatesPerRefresh-MinCandidatesPerRefresh+1)

	pool := append([]domain.Candidate(nil), state.RecruitmentPool...)
	for i := 0; i < count; i++ {
		pool = append(pool, s.generateCandidate(now))
	}
	if len(pool) > domain.MaxRecruitmentPool {
		pool = pool[len(pool)-domain.MaxRecruitmentPool:]
	}

	return PoolRefresh{
		Delta: domain.FinancialDelta{
			RecruitmentPool:   &pool,
			LastRecruitmentAt: &now,
		},
		NewCount: count,
		PoolSize: len(pool),
	}, true
}

func (s *service) generateCandidate(now time.Time) domain.Candidate {
	role := domain.AllRoles[s.rnd.Intn(len(domain.AllRoles))]
	base := MinBaseStat + s.rnd.Intn(MaxBaseStat-MinBaseStat+1)

	speed, quality := base, base
	switch role {
	case domain.RoleSpeedster:
		speed = domain.ClampPercent(speed + RoleStatBias)
	case domain.RoleSpecialist:
		quality = domain.ClampPercent(quality + RoleStatBias)
	}

	return domain.Candidate{
		ID:                uuid.NewString(),
		Name:              s.names.FullName(s.rnd),
		Role:              role,
		SalaryPerDayCents: domain.Money(base) * SalaryCentsPerStatPoint,
		Speed:             speed,
		Quality:           quality,
		GeneratedAt:       now,
	}
}

// PlanAutoAccept picks the pending orders staff will accept on their own:
// requires a manager on the roster, fills free capacity slots, highest value
// first with order id as the stable tie-break.
func (s *service) PlanAutoAccept(state *domain.BusinessState, pending, active []domain.Order) []domain.Order {
	if !state.HasManager() {
		return nil
	}

	free := TotalCapacity(state.Employees) - len(active)
	if free <= 0 || len(pending) == 0 {
		return nil
	}

	sorted := append([]domain.Order(nil), pending...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TotalCents == sorted[j].TotalCents {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].TotalCents > sorted[j].TotalCents
	})

	if free < len(sorted) {
		sorted = sorted[:free]
	}
	return sorted
}

// RunAutoWork pulls the oldest N accepted orders and either completes them or
// fails them on stockout. Every financial effect accumulates into one merged
// delta; the caller applies it as a single ledger call.
func (s *service) RunAutoWork(state *domain.BusinessState, accepted []domain.Order, bt *domain.BusinessType, now time.Time) (WorkReport, error) {
	report := WorkReport{}
	if len(state.Employees) == 0 || len(accepted) == 0 {
		return report, nil
	}

	n := AutoWorkCount(len(state.Employees))
	if n > len(accepted) {
		n = len(accepted)
	}

	// Available stock for this pass, net of deductions already accumulated.
	available := make(map[string]int, len(state.Inventory))
	for item, qty := range state.Inventory {
		available[item] = qty
	}

	avgQuality := averageQuality(state.Employees)

	for _, o := range accepted[:n] {
		needed, err := requiredInventory(o, bt)
		if err != nil {
			return report, err
		}

		if short, shortage := findShortage(needed, available); shortage {
			result, err := order.Fail(o, domain.FailReasonStockout, now)
			if err != nil {
				return report, err
			}
			report.Failed = append(report.Failed, result)
			report.Stockouts = append(report.Stockouts, Stockout{
				OrderID:   o.ID,
				Item:      short,
				Required:  needed[short],
				Available: available[short],
			})
			report.Delta.Merge(FailureDelta(result))
			continue
		}

		noise := s.rnd.Intn(2*QualityNoiseRange+1) - QualityNoiseRange
		quality := domain.ClampPercent(avgQuality + noise)

		result, err := order.Complete(o, quality, bt, now)
		if err != nil {
			return report, err
		}
		report.Completed = append(report.Completed, result)

		for item, qty := range result.InventoryDeductions {
			available[item] -= qty
		}
		report.Delta.Merge(CompletionDelta(result, now))
	}

	return report, nil
}

// CompletionDelta builds the ledger delta for one completed order: payment
// plus tip into cash and revenue, satisfaction centered on the rating, a
// review, and the inventory consumption. Exported so the scheduler can
// rebuild a pass delta from only the orders whose persist won the race.
func CompletionDelta(result order.CompleteResult, now time.Time) domain.FinancialDelta {
	deductions := make(map[string]int, len(result.InventoryDeductions))
	for item, qty := range result.InventoryDeductions {
		deductions[item] = -qty
	}

	delta := domain.FinancialDelta{
		CashCents:            result.PaymentCents + result.TipCents,
		RevenueCents:         result.PaymentCents + result.TipCents,
		SatisfactionDelta:    result.Rating - RatingSatisfactionPivot,
		OrdersCompletedDelta: 1,
		Inventory:            deductions,
		Reviews: []domain.Review{{
			OrderID:      result.Order.ID,
			CustomerName: result.Order.CustomerName,
			Rating:       result.Rating,
			CreatedAt:    now,
		}},
	}
	if result.Rating >= GoodRatingThreshold {
		delta.ReputationDelta = 1
	}
	return delta
}

// FailureDelta builds the ledger delta for one failed order
func FailureDelta(result order.FailResult) domain.FinancialDelta {
	return domain.FinancialDelta{
		ReputationDelta:   -result.ReputationPenalty,
		SatisfactionDelta: -StockoutSatisfactionPenalty,
		OrdersFailedDelta: 1,
	}
}

// AccrueWages adds one accrual slice of salary to each employee's unpaid
// bucket and decays morale while arrears exist. Returns false for an empty
// roster.
func (s *service) AccrueWages(state *domain.BusinessState) (domain.FinancialDelta, bool) {
	if len(state.Employees) == 0 {
		return domain.FinancialDelta{}, false
	}

	roster := append([]domain.Employee(nil), state.Employees...)
	for i := range roster {
		e := &roster[i]
		e.UnpaidWagesCents += e.SalaryPerDayCents / domain.WageAccrualsPerDay

		if e.UnpaidWagesCents > 0 {
			decay := MoraleDecay(e.UnpaidWagesCents, e.SalaryPerDayCents)
			e.Morale -= decay
			if e.Morale < 0 {
				e.Morale = 0
			}
		}
	}

	return domain.FinancialDelta{Employees: &roster}, true
}

// MoraleDecay returns the per-accrual morale loss for the given arrears
func MoraleDecay(unpaid, salaryPerDay domain.Money) int {
	decay := domain.MoraleDecayUnpaid
	if unpaid > salaryPerDay*domain.DeepArrearsMultiple {
		decay += domain.MoraleDecayDeepArrears
	}
	return decay
}

// SettleWages pays off every employee's accrued unpaid wages from cash and
// stamps the payroll time. Cash may overdraft; the deduction still applies.
// Returns false when nothing is owed.
func (s *service) SettleWages(state *domain.BusinessState, now time.Time) (Settlement, bool) {
	var total domain.Money
	for _, e := range state.Employees {
		total += e.UnpaidWagesCents
	}
	if total == 0 {
		return Settlement{}, false
	}

	roster := append([]domain.Employee(nil), state.Employees...)
	for i := range roster {
		roster[i].UnpaidWagesCents = 0
	}

	return Settlement{
		Delta: domain.FinancialDelta{
			CashCents:     -total,
			ExpensesCents: total,
			Employees:     &roster,
			LastPayrollAt: &now,
		},
		AmountCents:   total,
		EmployeeCount: len(roster),
	}, true
}

// Hire promotes a pool candidate onto the roster
func (s *service) Hire(state *domain.BusinessState, candidateID string, now time.Time) (domain.FinancialDelta, error) {
	idx := -1
	for i, c := range state.RecruitmentPool {
		if c.ID == candidateID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.FinancialDelta{}, fmt.Errorf("%w: '%s'", domain.ErrCandidateNotFound, candidateID)
	}

	candidate := state.RecruitmentPool[idx]
	pool := append([]domain.Candidate(nil), state.RecruitmentPool[:idx]...)
	pool = append(pool, state.RecruitmentPool[idx+1:]...)

	roster := append([]domain.Employee(nil), state.Employees...)
	roster = append(roster, candidate.Hire(now))

	return domain.FinancialDelta{
		Employees:       &roster,
		RecruitmentPool: &pool,
	}, nil
}

func averageQuality(employees []domain.Employee) int {
	total := 0
	for _, e := range employees {
		total += e.Quality
	}
	return total / len(employees)
}

// requiredInventory sums per-item consumption across an order's line items
func requiredInventory(o domain.Order, bt *domain.BusinessType) (map[string]int, error) {
	needed := make(map[string]int)
	for _, item := range o.Items {
		p := bt.ProductByID(item.ProductID)
		if p == nil {
			return nil, fmt.Errorf("%w: '%s'", domain.ErrUnknownProduct, item.ProductID)
		}
		if p.ConsumesInventory {
			needed[p.InventoryItem] += item.Quantity * p.UnitsPerSale
		}
	}
	return needed, nil
}

// findShortage returns the first item whose requirement exceeds availability.
// Iteration order is made deterministic by sorting the item names.
func findShortage(needed, available map[string]int) (string, bool) {
	items := make([]string, 0, len(needed))
	for item := range needed {
		items = append(items, item)
	}
	sort.Strings(items)

	for _, item := range items {
		if needed[item] > available[item] {
			return item, true
		}
	}
	return "", false
}
