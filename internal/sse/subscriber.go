package sse

import (
	"context"
	"log/slog"

	"github.com/hustlehq/tycoonsim/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub. Payloads go out
// as-is; they are already versioned wire types.
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers a forwarding handler for every simulation event type
func (s *Subscriber) Subscribe() {
	types := []event.Type{
		event.OrdersGenerated,
		event.OrderAccepted,
		event.OrderRejected,
		event.OrderCompleted,
		event.OrderFailed,
		event.RecruitsArrived,
		event.PayrollProcessed,
		event.OverdraftWarning,
		event.StockoutWarning,
		event.LedgerApplied,
	}

	names := make([]string, 0, len(types))
	for _, t := range types {
		s.bus.Subscribe(t, s.forward)
		names = append(names, string(t))
	}

	slog.Info(LogMsgSubscribed, "types", names)
}

// forward broadcasts a bus event to connected SSE clients
func (s *Subscriber) forward(_ context.Context, evt event.Event) error {
	businessID := businessIDOf(evt)

	s.hub.Broadcast(string(evt.Type), businessID, evt.Payload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", evt.Type,
		"business_id", businessID,
		"clients", s.hub.ClientCount())
	return nil
}

// businessIDOf extracts the business ID from any of the typed payloads so
// the hub can apply per-business filters
func businessIDOf(evt event.Event) string {
	switch p := evt.Payload.(type) {
	case event.OrderPayloadV1:
		return p.BusinessID
	case event.OrdersGeneratedPayloadV1:
		return p.BusinessID
	case event.RecruitsArrivedPayloadV1:
		return p.BusinessID
	case event.PayrollPayloadV1:
		return p.BusinessID
	case event.OverdraftPayloadV1:
		return p.BusinessID
	case event.StockoutPayloadV1:
		return p.BusinessID
	case event.LedgerAppliedPayloadV1:
		return p.BusinessID
	default:
		slog.Debug(LogMsgBadPayloadType, "event_type", evt.Type)
		return ""
	}
}
