package metrics

import (
	"context"

	"github.com/hustlehq/tycoonsim/internal/event"
)

// EventMetricsCollector subscribes to simulation events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all event types the collector counts
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range []event.Type{
		event.OrderAccepted,
		event.OrderRejected,
		event.OrderCompleted,
		event.OrderFailed,
		event.StockoutWarning,
		event.PayrollProcessed,
		event.OverdraftWarning,
		event.RecruitsArrived,
	} {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics. Counting never fails.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.OrderAccepted:
		OrdersAccepted.WithLabelValues(sourceLabel(evt)).Inc()
	case event.OrderRejected:
		OrdersRejected.WithLabelValues(sourceLabel(evt)).Inc()
	case event.OrderCompleted:
		OrdersCompleted.WithLabelValues(sourceLabel(evt)).Inc()
	case event.OrderFailed:
		OrdersFailed.WithLabelValues(sourceLabel(evt)).Inc()
	case event.StockoutWarning:
		Stockouts.Inc()
	case event.PayrollProcessed:
		PayrollRuns.Inc()
	case event.OverdraftWarning:
		Overdrafts.Inc()
	case event.RecruitsArrived:
		if p, ok := evt.Payload.(event.RecruitsArrivedPayloadV1); ok {
			RecruitsGenerated.Add(float64(p.Count))
		}
	}

	return nil
}

func sourceLabel(evt event.Event) string {
	if p, ok := evt.Payload.(event.OrderPayloadV1); ok && p.Automated {
		return SourceAuto
	}
	return SourceManual
}
