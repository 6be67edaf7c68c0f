package bootstrap

import (
	"log/slog"

	"github.com/hustlehq/tycoonsim/internal/event"
	"github.com/hustlehq/tycoonsim/internal/metrics"
)

// InitializeEventSystem creates the in-process event bus, wraps it in the
// resilient publisher the simulation publishes through, and registers the
// event metrics collector.
func InitializeEventSystem() (*event.MemoryBus, *event.ResilientPublisher) {
	bus := event.NewMemoryBus()
	publisher := event.NewResilientPublisher(bus, event.DefaultResilientConfig())

	collector := metrics.NewEventMetricsCollector()
	collector.Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	slog.Info(LogMsgEventSystemInitialized)
	return bus, publisher
}
