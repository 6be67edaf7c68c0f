package staffing

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hustlehq/tycoonsim/internal/domain"
	"github.com/hustlehq/tycoonsim/internal/naming"
)

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func newTestService(seed int64) Service {
	return NewService(rand.New(rand.NewSource(seed)), naming.NewDefaultResolver())
}

func threeEmployeeRoster() []domain.Employee {
	return []domain.Employee{
		{ID: "emp-1", Name: "Ava Chen", Role: domain.RoleTrainee, SalaryPerDayCents: 100, Quality: 60, Morale: 100},
		{ID: "emp-2", Name: "Ben Kim", Role: domain.RoleSpeedster, SalaryPerDayCents: 100, Quality: 70, Morale: 100},
		{ID: "emp-3", Name: "Carla Novak", Role: domain.RoleManager, SalaryPerDayCents: 100, Quality: 80, Morale: 100},
	}
}

func bakeryType() *domain.BusinessType {
	return &domain.BusinessType{
		ID: "bakery",
		Products: []domain.Product{
			{ID: "loaf", Name: "Sourdough Loaf", PriceCents: 650, ConsumesInventory: true, InventoryItem: "flour", UnitsPerSale: 2},
			{ID: "coffee", Name: "Drip Coffee", PriceCents: 250},
		},
	}
}

func acceptedOrder(id string, total domain.Money, createdAt time.Time, items ...domain.OrderItem) domain.Order {
	if len(items) == 0 {
		items = []domain.OrderItem{{ProductID: "coffee", Quantity: 1}}
	}
	at := createdAt.Add(time.Second)
	return domain.Order{
		ID:         id,
		BusinessID: "biz-1",
		Items:      items,
		TotalCents: total,
		Status:     domain.OrderAccepted,
		CreatedAt:  createdAt,
		AcceptedAt: &at,
	}
}

func TestTotalCapacity(t *testing.T) {
	assert.Equal(t, 8, TotalCapacity(threeEmployeeRoster()))
	assert.Equal(t, domain.DefaultMaxConcurrentOrders, TotalCapacity(nil))
}

func TestAutoWorkCount(t *testing.T) {
	tests := []struct {
		employees int
		n         int
	}{
		{employees: 1, n: 1},
		{employees: 2, n: 1},
		{employees: 3, n: 2},
		{employees: 5, n: 3},
		{employees: 6, n: 4},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.n, AutoWorkCount(tc.employees), "%d employees", tc.employees)
	}
}

func TestRefreshPoolGeneratesCandidates(t *testing.T) {
	svc := newTestService(42)
	state := &domain.BusinessState{ID: "biz-1"}

	refresh, ok := svc.RefreshPool(state, testNow)

	require.True(t, ok)
	assert.GreaterOrEqual(t, refresh.NewCount, MinCandidatesPerRefresh)
	assert.LessOrEqual(t, refresh.NewCount, MaxCandidatesPerRefresh)
	require.NotNil(t, refresh.Delta.RecruitmentPool)
	require.NotNil(t, refresh.Delta.LastRecruitmentAt)
	assert.Equal(t, testNow, *refresh.Delta.LastRecruitmentAt)

	for _, c := range *refresh.Delta.RecruitmentPool {
		assert.True(t, c.Role.Valid())
		assert.NotEmpty(t, c.Name)
		assert.GreaterOrEqual(t, c.Speed, MinBaseStat)
		assert.LessOrEqual(t, c.Speed, MaxBaseStat+RoleStatBias)
		assert.GreaterOrEqual(t, c.Quality, MinBaseStat)
		assert.LessOrEqual(t, c.Quality, MaxBaseStat+RoleStatBias)
		assert.GreaterOrEqual(t, c.SalaryPerDayCents, domain.Money(MinBaseStat*SalaryCentsPerStatPoint))
	}
}

func TestRefreshPoolAppliesRoleBias(t *testing.T) {
	svc := newTestService(7)
	state := &domain.BusinessState{ID: "biz-1"}

	// Generate a lot of candidates across refreshes to hit biased roles.
	sawBias := false
	for i := 0; i < 20 && !sawBias; i++ {
		state.RecruitmentPool = nil
		refresh, ok := svc.RefreshPool(state, testNow)
		require.True(t, ok)
		for _, c := range *refresh.Delta.RecruitmentPool {
			switch c.Role {
			case domain.RoleSpeedster:
				assert.Equal(t, c.Quality+RoleStatBias, c.Speed)
				sawBias = true
			case domain.RoleSpecialist:
				assert.Equal(t, c.Speed+RoleStatBias, c.Quality)
				sawBias = true
			}
		}
	}
	assert.True(t, sawBias, "expected at least one biased role in 20 refreshes")
}

func TestRefreshPoolRespectsCap(t *testing.T) {
	svc := newTestService(42)

	full := make([]domain.Candidate, domain.MaxRecruitmentPool)
	for i := range full {
		full[i] = domain.Candidate{ID: string(rune('a' + i))}
	}
	state := &domain.BusinessState{ID: "biz-1", RecruitmentPool: full}

	_, ok := svc.RefreshPool(state, testNow)
	assert.False(t, ok)
}

func TestRefreshPoolTrimsOldestOverflow(t *testing.T) {
	svc := newTestService(42)

	nine := make([]domain.Candidate, 9)
	for i := range nine {
		nine[i] = domain.Candidate{ID: string(rune('a' + i)), GeneratedAt: testNow.Add(-time.Hour)}
	}
	state := &domain.BusinessState{ID: "biz-1", RecruitmentPool: nine}

	refresh, ok := svc.RefreshPool(state, testNow)

	require.True(t, ok)
	pool := *refresh.Delta.RecruitmentPool
	assert.Len(t, pool, domain.MaxRecruitmentPool)
	// Oldest entries dropped first; the newest candidates survive.
	assert.Equal(t, testNow, pool[len(pool)-1].GeneratedAt)
	assert.NotEqual(t, "a", pool[0].ID)
}

func TestPlanAutoAcceptRequiresManager(t *testing.T) {
	svc := newTestService(42)

	state := &domain.BusinessState{
		ID: "biz-1",
		Employees: []domain.Employee{
			{ID: "emp-1", Role: domain.RoleTrainee},
		},
	}
	pending := []domain.Order{acceptedOrder("ord-1", 1000, testNow)}

	picked := svc.PlanAutoAccept(state, pending, nil)
	assert.Empty(t, picked)
}

func TestPlanAutoAcceptPicksHighestValueUpToFreeSlots(t *testing.T) {
	svc := newTestService(42)
	state := &domain.BusinessState{ID: "biz-1", Employees: threeEmployeeRoster()}

	pending := []domain.Order{
		{ID: "ord-1", TotalCents: 500, Status: domain.OrderPending},
		{ID: "ord-2", TotalCents: 2500, Status: domain.OrderPending},
		{ID: "ord-3", TotalCents: 1500, Status: domain.OrderPending},
		{ID: "ord-4", TotalCents: 3500, Status: domain.OrderPending},
		{ID: "ord-5", TotalCents: 1000, Status: domain.OrderPending},
	}
	active := make([]domain.Order, 6) // 8 capacity - 6 active = 2 free

	picked := svc.PlanAutoAccept(state, pending, active)

	require.Len(t, picked, 2)
	assert.Equal(t, "ord-4", picked[0].ID)
	assert.Equal(t, "ord-2", picked[1].ID)
}

func TestPlanAutoAcceptAllWhenCapacityAllows(t *testing.T) {
	svc := newTestService(42)
	state := &domain.BusinessState{ID: "biz-1", Employees: threeEmployeeRoster()}

	pending := []domain.Order{
		{ID: "ord-1", TotalCents: 500, Status: domain.OrderPending},
		{ID: "ord-2", TotalCents: 2500, Status: domain.OrderPending},
		{ID: "ord-3", TotalCents: 1500, Status: domain.OrderPending},
		{ID: "ord-4", TotalCents: 3500, Status: domain.OrderPending},
		{ID: "ord-5", TotalCents: 1000, Status: domain.OrderPending},
	}

	picked := svc.PlanAutoAccept(state, pending, nil)
	assert.Len(t, picked, 5)
}

func TestRunAutoWorkCompletesOldestOrders(t *testing.T) {
	svc := newTestService(42)

	state := &domain.BusinessState{
		ID:        "biz-1",
		Employees: threeEmployeeRoster(),
		Inventory: map[string]int{"flour": 20},
	}

	accepted := []domain.Order{
		acceptedOrder("ord-1", 650, testNow.Add(-3*time.Minute), domain.OrderItem{ProductID: "loaf", Quantity: 1}),
		acceptedOrder("ord-2", 650, testNow.Add(-2*time.Minute), domain.OrderItem{ProductID: "loaf", Quantity: 1}),
		acceptedOrder("ord-3", 650, testNow.Add(-time.Minute), domain.OrderItem{ProductID: "loaf", Quantity: 1}),
	}

	report, err := svc.RunAutoWork(state, accepted, bakeryType(), testNow)

	require.NoError(t, err)
	// floor(3/1.5) = 2 orders per pass
	require.Len(t, report.Completed, 2)
	assert.Empty(t, report.Failed)
	assert.Equal(t, "ord-1", report.Completed[0].Order.ID)
	assert.Equal(t, "ord-2", report.Completed[1].Order.ID)

	assert.Equal(t, 2, report.Delta.OrdersCompletedDelta)
	assert.Equal(t, -4, report.Delta.Inventory["flour"])
	assert.GreaterOrEqual(t, report.Delta.CashCents, domain.Money(1300))
	assert.Len(t, report.Delta.Reviews, 2)

	for _, c := range report.Completed {
		assert.GreaterOrEqual(t, c.Quality, 0)
		assert.LessOrEqual(t, c.Quality, 100)
		assert.GreaterOrEqual(t, c.Rating, 1)
		assert.LessOrEqual(t, c.Rating, 5)
	}
}

func TestRunAutoWorkStockout(t *testing.T) {
	svc := newTestService(42)

	state := &domain.BusinessState{
		ID:        "biz-1",
		Employees: threeEmployeeRoster(),
		Inventory: map[string]int{"flour": 1},
	}

	accepted := []domain.Order{
		acceptedOrder("ord-1", 650, testNow.Add(-time.Minute), domain.OrderItem{ProductID: "loaf", Quantity: 1}),
	}

	report, err := svc.RunAutoWork(state, accepted, bakeryType(), testNow)

	require.NoError(t, err)
	assert.Empty(t, report.Completed)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, domain.FailReasonStockout, report.Failed[0].Order.FailReason)

	require.Len(t, report.Stockouts, 1)
	assert.Equal(t, "flour", report.Stockouts[0].Item)
	assert.Equal(t, 2, report.Stockouts[0].Required)
	assert.Equal(t, 1, report.Stockouts[0].Available)

	// Inventory untouched: no negative deduction for a failed order.
	assert.Empty(t, report.Delta.Inventory)
	assert.Less(t, report.Delta.ReputationDelta, 0)
	assert.Equal(t, 1, report.Delta.OrdersFailedDelta)
}

func TestRunAutoWorkTracksStockWithinPass(t *testing.T) {
	svc := newTestService(42)

	state := &domain.BusinessState{
		ID:        "biz-1",
		Employees: threeEmployeeRoster(),
		Inventory: map[string]int{"flour": 2},
	}

	accepted := []domain.Order{
		acceptedOrder("ord-1", 650, testNow.Add(-2*time.Minute), domain.OrderItem{ProductID: "loaf", Quantity: 1}),
		acceptedOrder("ord-2", 650, testNow.Add(-time.Minute), domain.OrderItem{ProductID: "loaf", Quantity: 1}),
	}

	report, err := svc.RunAutoWork(state, accepted, bakeryType(), testNow)

	require.NoError(t, err)
	// First order consumes both flour units; the second hits a stockout even
	// though stored inventory was sufficient for either alone.
	require.Len(t, report.Completed, 1)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "ord-2", report.Failed[0].Order.ID)
}

func TestRunAutoWorkNoEmployees(t *testing.T) {
	svc := newTestService(42)
	state := &domain.BusinessState{ID: "biz-1"}

	report, err := svc.RunAutoWork(state, []domain.Order{acceptedOrder("ord-1", 650, testNow)}, bakeryType(), testNow)

	require.NoError(t, err)
	assert.Empty(t, report.Completed)
	assert.Empty(t, report.Failed)
	assert.True(t, report.Delta.IsZero())
}

func TestAccrueWagesAddsSliceAndDecaysMorale(t *testing.T) {
	svc := newTestService(42)

	state := &domain.BusinessState{
		ID: "biz-1",
		Employees: []domain.Employee{
			{ID: "emp-1", SalaryPerDayCents: 800, Morale: 50},
		},
	}

	delta, ok := svc.AccrueWages(state)

	require.True(t, ok)
	require.NotNil(t, delta.Employees)
	roster := *delta.Employees
	assert.Equal(t, domain.Money(100), roster[0].UnpaidWagesCents)
	assert.Equal(t, 49, roster[0].Morale)

	// Original state untouched; the ledger applies the delta.
	assert.Equal(t, domain.Money(0), state.Employees[0].UnpaidWagesCents)
}

func TestAccrueWagesDeepArrearsPenalty(t *testing.T) {
	svc := newTestService(42)

	state := &domain.BusinessState{
		ID: "biz-1",
		Employees: []domain.Employee{
			// Already beyond 2x daily salary in arrears.
			{ID: "emp-1", SalaryPerDayCents: 800, UnpaidWagesCents: 1700, Morale: 50},
		},
	}

	delta, ok := svc.AccrueWages(state)

	require.True(t, ok)
	roster := *delta.Employees
	assert.Equal(t, domain.Money(1800), roster[0].UnpaidWagesCents)
	assert.Equal(t, 47, roster[0].Morale)
}

func TestAccrueWagesMoraleFloor(t *testing.T) {
	svc := newTestService(42)

	state := &domain.BusinessState{
		ID: "biz-1",
		Employees: []domain.Employee{
			{ID: "emp-1", SalaryPerDayCents: 800, UnpaidWagesCents: 5000, Morale: 1},
		},
	}

	delta, ok := svc.AccrueWages(state)

	require.True(t, ok)
	assert.Equal(t, 0, (*delta.Employees)[0].Morale)
}

func TestSettleWagesPaysArrears(t *testing.T) {
	svc := newTestService(42)

	// 2 employees x 100/day accrued over 2 full days = 400 total.
	state := &domain.BusinessState{
		ID: "biz-1",
		Employees: []domain.Employee{
			{ID: "emp-1", SalaryPerDayCents: 100, UnpaidWagesCents: 200},
			{ID: "emp-2", SalaryPerDayCents: 100, UnpaidWagesCents: 200},
		},
	}

	settlement, ok := svc.SettleWages(state, testNow)

	require.True(t, ok)
	assert.Equal(t, domain.Money(400), settlement.AmountCents)
	assert.Equal(t, domain.Money(-400), settlement.Delta.CashCents)
	assert.Equal(t, domain.Money(400), settlement.Delta.ExpensesCents)
	require.NotNil(t, settlement.Delta.LastPayrollAt)
	assert.Equal(t, testNow, *settlement.Delta.LastPayrollAt)

	for _, e := range *settlement.Delta.Employees {
		assert.Equal(t, domain.Money(0), e.UnpaidWagesCents)
	}
}

func TestSettleWagesNothingOwed(t *testing.T) {
	svc := newTestService(42)

	state := &domain.BusinessState{
		ID:        "biz-1",
		Employees: []domain.Employee{{ID: "emp-1", SalaryPerDayCents: 100}},
	}

	_, ok := svc.SettleWages(state, testNow)
	assert.False(t, ok)
}

func TestHirePromotesCandidate(t *testing.T) {
	svc := newTestService(42)

	state := &domain.BusinessState{
		ID: "biz-1",
		RecruitmentPool: []domain.Candidate{
			{ID: "cand-1", Name: "Nia Patel", Role: domain.RoleSpecialist, SalaryPerDayCents: 9000, Quality: 85},
			{ID: "cand-2", Name: "Omar Weber", Role: domain.RoleTrainee},
		},
	}

	delta, err := svc.Hire(state, "cand-1", testNow)

	require.NoError(t, err)
	require.NotNil(t, delta.Employees)
	require.NotNil(t, delta.RecruitmentPool)

	roster := *delta.Employees
	require.Len(t, roster, 1)
	assert.Equal(t, "Nia Patel", roster[0].Name)
	assert.Equal(t, domain.MaxPercentScale, roster[0].Morale)
	assert.Equal(t, testNow, roster[0].HiredAt)

	pool := *delta.RecruitmentPool
	require.Len(t, pool, 1)
	assert.Equal(t, "cand-2", pool[0].ID)
}

func TestHireUnknownCandidate(t *testing.T) {
	svc := newTestService(42)
	state := &domain.BusinessState{ID: "biz-1"}

	_, err := svc.Hire(state, "ghost", testNow)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCandidateNotFound)
}
