package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hustlehq/tycoonsim/internal/domain"
)

func sampleOrder() domain.Order {
	return domain.Order{
		ID:           "order-1",
		BusinessID:   "biz-1",
		CustomerName: "Ada",
		TotalCents:   1500,
		Status:       domain.OrderCompleted,
	}
}

func TestMemoryBusPublishNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	err := bus.Publish(context.Background(), Event{Type: OrderAccepted})
	assert.NoError(t, err)
}

func TestMemoryBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	var mu sync.Mutex
	got := 0
	handler := func(ctx context.Context, evt Event) error {
		mu.Lock()
		defer mu.Unlock()
		got++
		return nil
	}

	bus.Subscribe(OrderCompleted, handler)
	bus.Subscribe(OrderCompleted, handler)
	bus.Subscribe(OrderFailed, handler)

	err := bus.Publish(context.Background(), Event{Type: OrderCompleted})
	require.NoError(t, err)
	assert.Equal(t, 2, got, "only order.completed subscribers should fire")
}

func TestMemoryBusAggregatesHandlerErrors(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(StockoutWarning, func(ctx context.Context, evt Event) error {
		return errors.New("narrator offline")
	})
	bus.Subscribe(StockoutWarning, func(ctx context.Context, evt Event) error {
		return nil
	})

	err := bus.Publish(context.Background(), Event{Type: StockoutWarning})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 errors")
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(base, 2))
	assert.Equal(t, 16*time.Second, CalculateRetryDelay(base, 4))
}

// flakyBus fails the first n publishes, then succeeds
type flakyBus struct {
	mu       sync.Mutex
	failures int
	calls    int
}

func (b *flakyBus) Publish(ctx context.Context, evt Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if b.calls <= b.failures {
		return errors.New("bus unavailable")
	}
	return nil
}

func (b *flakyBus) Subscribe(eventType Type, handler Handler) {}

func TestResilientPublisherRetriesUntilSuccess(t *testing.T) {
	inner := &flakyBus{failures: 2}
	pub := NewResilientPublisher(inner, ResilientConfig{
		MaxRetries:     3,
		RetryDelay:     time.Millisecond,
		DeadLetterPath: t.TempDir() + "/dead.jsonl",
	})

	err := pub.Publish(context.Background(), NewLedgerAppliedEvent("biz-1"))
	require.NoError(t, err, "caller must never see a retryable failure")

	pub.Wait()

	inner.mu.Lock()
	defer inner.mu.Unlock()
	assert.Equal(t, 3, inner.calls, "initial attempt plus two retries")
}

func TestNewOrderCompletedEventPayload(t *testing.T) {
	evt := NewOrderCompletedEvent(sampleOrder(), 250, 5, true)

	payload, ok := evt.Payload.(OrderPayloadV1)
	require.True(t, ok)
	assert.Equal(t, OrderCompleted, evt.Type)
	assert.Equal(t, EventSchemaVersion, evt.Version)
	assert.EqualValues(t, 250, payload.TipCents)
	assert.Equal(t, 5, payload.Rating)
	assert.True(t, payload.Automated)
}
