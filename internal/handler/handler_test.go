package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/hustlehq/tycoonsim/internal/catalog"
	"github.com/hustlehq/tycoonsim/internal/clock"
	"github.com/hustlehq/tycoonsim/internal/command"
	"github.com/hustlehq/tycoonsim/internal/database/memory"
	"github.com/hustlehq/tycoonsim/internal/domain"
	"github.com/hustlehq/tycoonsim/internal/event"
	"github.com/hustlehq/tycoonsim/internal/ledger"
	"github.com/hustlehq/tycoonsim/internal/naming"
	"github.com/hustlehq/tycoonsim/internal/staffing"
)

var handlerStart = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// stubRegistrar records pause state per registered business
type stubRegistrar struct {
	mu         sync.Mutex
	registered map[string]bool
	paused     map[string]bool
}

func newStubRegistrar() *stubRegistrar {
	return &stubRegistrar{registered: map[string]bool{}, paused: map[string]bool{}}
}

func (f *stubRegistrar) Register(_ context.Context, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered[id] = true
}

func (f *stubRegistrar) Unregister(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.registered, id)
}

func (f *stubRegistrar) Pause(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.registered[id] {
		return domain.ErrBusinessNotFound
	}
	f.paused[id] = true
	return nil
}

func (f *stubRegistrar) Resume(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.registered[id] {
		return domain.ErrBusinessNotFound
	}
	f.paused[id] = false
	return nil
}

func (f *stubRegistrar) IsPaused(id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.registered[id] {
		return false, domain.ErrBusinessNotFound
	}
	return f.paused[id], nil
}

type httpFixture struct {
	router *chi.Mux
	svc    command.Service
	store  *memory.Store
	bus    *event.MemoryBus
	cache  *SnapshotCache
}

func newHTTPFixture(t *testing.T) *httpFixture {
	t.Helper()

	store := memory.NewStore()
	bus := event.NewMemoryBus()
	clk := clock.NewSimulated(handlerStart)

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

	svc := command.NewService(
		store,
		store,
		ledger.NewService(store, bus, clk),
		staffing.NewService(rand.New(rand.NewSource(42)), naming.NewDefaultResolver()),
		catalogSvc,
		newStubRegistrar(),
		bus,
		clk,
	)

	cache := NewSnapshotCache(DefaultSnapshotCacheSize, DefaultSnapshotCacheTTL)
	cache.SubscribeInvalidation(bus)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/business-types", HandleListBusinessTypes(catalogSvc))
		r.Route("/businesses", func(r chi.Router) {
			r.Post("/", HandleCreateBusiness(svc))
			r.Route("/{businessID}", func(r chi.Router) {
				r.Get("/", HandleGetBusiness(svc, cache))
				r.Get("/orders", HandleListOrders(svc))
				r.Post("/orders/{orderID}/accept", HandleAcceptOrder(svc))
				r.Post("/orders/{orderID}/reject", HandleRejectOrder(svc))
				r.Post("/orders/{orderID}/complete", HandleCompleteOrder(svc))
				r.Post("/hire", HandleHireCandidate(svc))
				r.Post("/pause", HandlePauseSimulation(svc))
				r.Post("/resume", HandleResumeSimulation(svc))
				r.Get("/simulation", HandleSimulationStatus(svc))
			})
		})
	})

	return &httpFixture{router: r, svc: svc, store: store, bus: bus, cache: cache}
}

func (f *httpFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *httpFixture) createBusiness(t *testing.T) string {
	t.Helper()

	w := f.do(t, http.MethodPost, "/api/v1/businesses", CreateBusinessRequest{
		OwnerID: "user-1",
		Name:    "My Bakery",
		TypeID:  "bakery",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data domain.BusinessState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.ID)
	return resp.Data.ID
}

func (f *httpFixture) seedOrder(t *testing.T, businessID string) string {
	t.Helper()

	o := domain.Order{
		ID:           "ord-1",
		BusinessID:   businessID,
		CustomerName: "Dana Lopez",
		Items:        []domain.OrderItem{{ProductID: "loaf", Quantity: 2}},
		TotalCents:   1300,
		Status:       domain.OrderPending,
		CreatedAt:    handlerStart,
	}
	require.NoError(t, f.store.CreateOrders(context.Background(), []domain.Order{o}))
	return o.ID
}

func candidateFixture() domain.Candidate {
	return domain.Candidate{
		ID:                "cand-1",
		Name:              "Riley Park",
		Role:              domain.RoleSpecialist,
		SalaryPerDayCents: 9000,
		Speed:             70,
		Quality:           65,
		GeneratedAt:       handlerStart,
	}
}
