package simulation

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hustlehq/tycoonsim/internal/domain"
	"github.com/hustlehq/tycoonsim/internal/naming"
)

func testBusinessType() *domain.BusinessType {
	return &domain.BusinessType{
		ID:       "bakery",
		Category: "food",
		OpenHour: 6, CloseHour: 18,
		Products: []domain.Product{
			{ID: "loaf", Name: "Sourdough Loaf", PriceCents: 650, ConsumesInventory: true, InventoryItem: "flour", UnitsPerSale: 2},
			{ID: "coffee", Name: "Drip Coffee", PriceCents: 250},
		},
		DemandCurve: map[int]float64{8: 2.0},
	}
}

func TestNextSimHour(t *testing.T) {
	assert.Equal(t, 7, nextSimHour(6))
	assert.Equal(t, domain.SimDayEndHour, nextSimHour(domain.SimDayEndHour-1))
	// Wrap from end of sim day back to its start.
	assert.Equal(t, domain.SimDayStartHour, nextSimHour(domain.SimDayEndHour))
	// New businesses start below the sim day window.
	assert.Equal(t, domain.SimDayStartHour, nextSimHour(0))
}

func TestGenerateClosedHoursProduceNothing(t *testing.T) {
	g := newGenerator(rand.New(rand.NewSource(42)), naming.NewDefaultResolver())

	// Next hour is 22; the bakery closes at 18.
	state := &domain.BusinessState{ID: "biz-1", OpenHour: 6, CloseHour: 18, SimHour: 21}

	result := g.generate(state, testBusinessType(), time.Now())

	assert.Empty(t, result.orders)
	assert.Equal(t, 22, result.simHour)
}

func TestGenerateOrdersAreWellFormed(t *testing.T) {
	g := newGenerator(rand.New(rand.NewSource(42)), naming.NewDefaultResolver())
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	state := &domain.BusinessState{ID: "biz-1", OpenHour: 6, CloseHour: 18, SimHour: 7}
	bt := testBusinessType()

	var produced []domain.Order
	for i := 0; i < 50; i++ {
		state.SimHour = 7
		result := g.generate(state, bt, now)
		assert.LessOrEqual(t, len(result.orders), MaxOrdersPerGeneration)
		produced = append(produced, result.orders...)
	}
	require.NotEmpty(t, produced)

	seen := map[string]bool{}
	for _, o := range produced {
		assert.False(t, seen[o.ID], "duplicate order id")
		seen[o.ID] = true

		assert.Equal(t, "biz-1", o.BusinessID)
		assert.Equal(t, domain.OrderPending, o.Status)
		assert.NotEmpty(t, o.CustomerName)
		assert.NotEmpty(t, o.Items)

		var total domain.Money
		for _, item := range o.Items {
			p := bt.ProductByID(item.ProductID)
			require.NotNil(t, p)
			assert.GreaterOrEqual(t, item.Quantity, 1)
			assert.LessOrEqual(t, item.Quantity, MaxQuantityPerItem)
			total += p.PriceCents * domain.Money(item.Quantity)
		}
		assert.Equal(t, total, o.TotalCents)
	}
}

func TestGenerateDemandCurveBiasesVolume(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	bt := testBusinessType()

	countAt := func(simHourBefore int) int {
		g := newGenerator(rand.New(rand.NewSource(7)), naming.NewDefaultResolver())
		state := &domain.BusinessState{ID: "biz-1", OpenHour: 6, CloseHour: 18}
		total := 0
		for i := 0; i < 200; i++ {
			state.SimHour = simHourBefore
			total += len(g.generate(state, bt, now).orders)
		}
		return total
	}

	// Hour 8 carries demand weight 2.0 vs baseline 1.0 at hour 10.
	peak := countAt(7)
	baseline := countAt(9)
	assert.Greater(t, peak, baseline)
}
