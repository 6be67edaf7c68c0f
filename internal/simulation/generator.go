package simulation

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/hustlehq/tycoonsim/internal/domain"
	"github.com/hustlehq/tycoonsim/internal/naming"
)

// generator creates simulated customer orders, biased by the business type's
// per-hour demand curve
type generator struct {
	rnd   *rand.Rand
	names *naming.Resolver
}

func newGenerator(rnd *rand.Rand, names *naming.Resolver) *generator {
	return &generator{rnd: rnd, names: names}
}

// generationResult carries the new orders plus the advanced simulated hour
type generationResult struct {
	orders  []domain.Order
	simHour int
}

// generate advances the simulated hour and rolls new orders for it. Closed
// hours advance the clock but produce nothing.
func (g *generator) generate(state *domain.BusinessState, bt *domain.BusinessType, now time.Time) generationResult {
	hour := nextSimHour(state.SimHour)
	result := generationResult{simHour: hour}

	if !state.IsOpenAt(hour) {
		return result
	}

	weight := 1.0
	if w, ok := bt.DemandCurve[hour]; ok && w > 0 {
		weight = w
	}

	// Binomial roll over the per-pass slots; the mean tracks the demand
	// weight while the count stays within [0, MaxOrdersPerGeneration].
	expected := BaseOrdersPerGeneration * weight
	count := 0
	for i := 0; i < MaxOrdersPerGeneration; i++ {
		if g.rnd.Float64() < expected/MaxOrdersPerGeneration {
			count++
		}
	}

	for i := 0; i < count; i++ {
		result.orders = append(result.orders, g.rollOrder(state.ID, bt, now))
	}
	return result
}

func (g *generator) rollOrder(businessID string, bt *domain.BusinessType, now time.Time) domain.Order {
	itemCount := 1 + g.rnd.Intn(MaxItemsPerOrder)

	var items []domain.OrderItem
	var total domain.Money
	for i := 0; i < itemCount; i++ {
		p := bt.Products[g.rnd.Intn(len(bt.Products))]
		qty := 1 + g.rnd.Intn(MaxQuantityPerItem)
		items = append(items, domain.OrderItem{ProductID: p.ID, Quantity: qty})
		total += p.PriceCents * domain.Money(qty)
	}

	return domain.Order{
		ID:           uuid.NewString(),
		BusinessID:   businessID,
		CustomerName: g.names.FullName(g.rnd),
		Items:        items,
		TotalCents:   total,
		Status:       domain.OrderPending,
		CreatedAt:    now,
	}
}

// nextSimHour advances the simulated hour, wrapping from the end of the sim
// day back to its start
func nextSimHour(current int) int {
	next := current + 1
	if next < domain.SimDayStartHour || next > domain.SimDayEndHour {
		return domain.SimDayStartHour
	}
	return next
}
