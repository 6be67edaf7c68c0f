package command

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hustlehq/tycoonsim/internal/catalog"
	"github.com/hustlehq/tycoonsim/internal/clock"
	"github.com/hustlehq/tycoonsim/internal/database/memory"
	"github.com/hustlehq/tycoonsim/internal/domain"
	"github.com/hustlehq/tycoonsim/internal/event"
	"github.com/hustlehq/tycoonsim/internal/ledger"
	"github.com/hustlehq/tycoonsim/internal/naming"
	"github.com/hustlehq/tycoonsim/internal/staffing"
)

var cmdStart = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// fakeRegistrar records scheduler interactions
type fakeRegistrar struct {
	mu         sync.Mutex
	registered map[string]bool
	paused     map[string]bool
}

func newFakeRegistrar() *fakeRegistrar {
	return &fakeRegistrar{registered: map[string]bool{}, paused: map[string]bool{}}
}

func (f *fakeRegistrar) Register(_ context.Context, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered[id] = true
}

func (f *fakeRegistrar) Unregister(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.registered, id)
}

func (f *fakeRegistrar) Pause(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.registered[id] {
		return domain.ErrBusinessNotFound
	}
	f.paused[id] = true
	return nil
}

func (f *fakeRegistrar) Resume(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.registered[id] {
		return domain.ErrBusinessNotFound
	}
	f.paused[id] = false
	return nil
}

func (f *fakeRegistrar) IsPaused(id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.registered[id] {
		return false, domain.ErrBusinessNotFound
	}
	return f.paused[id], nil
}

type cmdFixture struct {
	svc       Service
	store     *memory.Store
	registrar *fakeRegistrar
	bus       *event.MemoryBus
	clock     *clock.Simulated
}

func newCmdFixture(t *testing.T) *cmdFixture {
	t.Helper()

	store := memory.NewStore()
	bus := event.NewMemoryBus()
	clk := clock.NewSimulated(cmdStart)
	registrar := newFakeRegistrar()

	catalogSvc := catalog.NewService(context.Background(), &catalog.Config{
		BusinessTypes: []domain.BusinessType{{
			ID:                   "bakery",
			Category:             "food",
			DisplayName:          "Corner Bakery",
			StartingCapitalCents: 50000,
			OpenHour:             6,
			CloseHour:            18,
			Guide:                domain.Guide{Name: "Chef Marco", Tone: "warm"},
			Products: []domain.Product{
				{ID: "loaf", Name: "Sourdough Loaf", PriceCents: 650, ConsumesInventory: true, InventoryItem: "flour", UnitsPerSale: 2},
			},
			StartingInventory: map[string]int{"flour": 40},
		}},
	})

	svc := NewService(
		store,
		store,
		ledger.NewService(store, bus, clk),
		staffing.NewService(rand.New(rand.NewSource(42)), naming.NewDefaultResolver()),
		catalogSvc,
		registrar,
		bus,
		clk,
	)

	return &cmdFixture{svc: svc, store: store, registrar: registrar, bus: bus, clock: clk}
}

func (f *cmdFixture) seedOrder(t *testing.T, o domain.Order) {
	t.Helper()
	require.NoError(t, f.store.CreateOrders(context.Background(), []domain.Order{o}))
}

func seedPending(businessID string) domain.Order {
	return domain.Order{
		ID:           "ord-1",
		BusinessID:   businessID,
		CustomerName: "Dana Lopez",
		Items:        []domain.OrderItem{{ProductID: "loaf", Quantity: 2}},
		TotalCents:   1300,
		Status:       domain.OrderPending,
		CreatedAt:    cmdStart,
	}
}

func TestCreateBusinessFromArchetype(t *testing.T) {
	f := newCmdFixture(t)

	state, err := f.svc.CreateBusiness(context.Background(), "user-1", "My Bakery", "bakery")

	require.NoError(t, err)
	assert.Equal(t, domain.Money(50000), state.CashCents)
	assert.Equal(t, StartingReputation, state.Reputation)
	assert.Equal(t, 40, state.Inventory["flour"])
	assert.Equal(t, 6, state.OpenHour)
	assert.True(t, f.registrar.registered[state.ID])

	stored, err := f.store.GetBusiness(context.Background(), state.ID)
	require.NoError(t, err)
	assert.Equal(t, "My Bakery", stored.Name)
}

func TestCreateBusinessUnknownType(t *testing.T) {
	f := newCmdFixture(t)

	_, err := f.svc.CreateBusiness(context.Background(), "user-1", "Arcade", "arcade")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBusinessTypeNotFound)
}

func TestAcceptOrderManually(t *testing.T) {
	f := newCmdFixture(t)
	state, err := f.svc.CreateBusiness(context.Background(), "user-1", "My Bakery", "bakery")
	require.NoError(t, err)
	f.seedOrder(t, seedPending(state.ID))

	accepted, err := f.svc.AcceptOrder(context.Background(), state.ID, "ord-1")

	require.NoError(t, err)
	assert.Equal(t, domain.OrderAccepted, accepted.Status)
	require.NotNil(t, accepted.AcceptedAt)

	stored, err := f.store.GetOrder(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderAccepted, stored.Status)
}

func TestAcceptOrderLostRace(t *testing.T) {
	f := newCmdFixture(t)
	state, err := f.svc.CreateBusiness(context.Background(), "user-1", "My Bakery", "bakery")
	require.NoError(t, err)

	o := seedPending(state.ID)
	o.Status = domain.OrderAccepted
	f.seedOrder(t, o)

	_, err = f.svc.AcceptOrder(context.Background(), state.ID, "ord-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAcceptOrderWrongBusiness(t *testing.T) {
	f := newCmdFixture(t)
	state, err := f.svc.CreateBusiness(context.Background(), "user-1", "My Bakery", "bakery")
	require.NoError(t, err)
	f.seedOrder(t, seedPending("other-biz"))

	_, err = f.svc.AcceptOrder(context.Background(), state.ID, "ord-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestRejectOrderAppliesPenalty(t *testing.T) {
	f := newCmdFixture(t)
	state, err := f.svc.CreateBusiness(context.Background(), "user-1", "My Bakery", "bakery")
	require.NoError(t, err)
	f.seedOrder(t, seedPending(state.ID))

	rejected, err := f.svc.RejectOrder(context.Background(), state.ID, "ord-1")

	require.NoError(t, err)
	assert.Equal(t, domain.OrderRejected, rejected.Status)

	after, err := f.store.GetBusiness(context.Background(), state.ID)
	require.NoError(t, err)
	assert.Less(t, after.Reputation, StartingReputation)
}

func TestCompleteOrderManually(t *testing.T) {
	f := newCmdFixture(t)
	state, err := f.svc.CreateBusiness(context.Background(), "user-1", "My Bakery", "bakery")
	require.NoError(t, err)

	o := seedPending(state.ID)
	o.Status = domain.OrderAccepted
	f.seedOrder(t, o)

	quality := 96
	completed, err := f.svc.CompleteOrder(context.Background(), state.ID, "ord-1", &quality)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderCompleted, completed.Status)

	after, err := f.store.GetBusiness(context.Background(), state.ID)
	require.NoError(t, err)
	// Payment 1300 plus the quality-96 tip of 225.
	assert.Equal(t, domain.Money(51525), after.CashCents)
	assert.Equal(t, domain.Money(1525), after.TotalRevenueCents)
	assert.Equal(t, 1, after.OrdersCompleted)
	// 2 loaves x 2 flour each deducted from the starting 40.
	assert.Equal(t, 36, after.Inventory["flour"])
	require.Len(t, after.Reviews, 1)
	assert.Equal(t, 5, after.Reviews[0].Rating)
}

func TestCompleteOrderInsufficientStock(t *testing.T) {
	f := newCmdFixture(t)
	state, err := f.svc.CreateBusiness(context.Background(), "user-1", "My Bakery", "bakery")
	require.NoError(t, err)

	o := seedPending(state.ID)
	o.Status = domain.OrderAccepted
	o.Items = []domain.OrderItem{{ProductID: "loaf", Quantity: 25}} // needs 50 flour, have 40
	f.seedOrder(t, o)

	_, err = f.svc.CompleteOrder(context.Background(), state.ID, "ord-1", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Order unchanged, inventory unchanged.
	stored, err := f.store.GetOrder(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderAccepted, stored.Status)

	after, err := f.store.GetBusiness(context.Background(), state.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, after.Inventory["flour"])
}

func TestCompleteOrderRequiresWorkableStatus(t *testing.T) {
	f := newCmdFixture(t)
	state, err := f.svc.CreateBusiness(context.Background(), "user-1", "My Bakery", "bakery")
	require.NoError(t, err)
	f.seedOrder(t, seedPending(state.ID))

	_, err = f.svc.CompleteOrder(context.Background(), state.ID, "ord-1", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestHireCandidate(t *testing.T) {
	f := newCmdFixture(t)
	state, err := f.svc.CreateBusiness(context.Background(), "user-1", "My Bakery", "bakery")
	require.NoError(t, err)

	// Put a candidate into the stored pool.
	stored, err := f.store.GetBusiness(context.Background(), state.ID)
	require.NoError(t, err)
	stored.RecruitmentPool = []domain.Candidate{{
		ID: "cand-1", Name: "Nia Patel", Role: domain.RoleManager, SalaryPerDayCents: 9000, Quality: 75,
	}}
	require.NoError(t, f.store.UpdateBusiness(context.Background(), *stored))

	after, err := f.svc.HireCandidate(context.Background(), state.ID, "cand-1")

	require.NoError(t, err)
	require.Len(t, after.Employees, 1)
	assert.Equal(t, "Nia Patel", after.Employees[0].Name)
	assert.Empty(t, after.RecruitmentPool)
}

func TestPauseAndResume(t *testing.T) {
	f := newCmdFixture(t)
	state, err := f.svc.CreateBusiness(context.Background(), "user-1", "My Bakery", "bakery")
	require.NoError(t, err)

	require.NoError(t, f.svc.PauseSimulation(context.Background(), state.ID))
	paused, err := f.svc.IsPaused(state.ID)
	require.NoError(t, err)
	assert.True(t, paused)

	require.NoError(t, f.svc.ResumeSimulation(context.Background(), state.ID))
	paused, err = f.svc.IsPaused(state.ID)
	require.NoError(t, err)
	assert.False(t, paused)

	err = f.svc.PauseSimulation(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrBusinessNotFound)
}
