package bootstrap

import (
	"context"
	"log/slog"

	"github.com/hustlehq/tycoonsim/internal/database"
	"github.com/hustlehq/tycoonsim/internal/event"
	"github.com/hustlehq/tycoonsim/internal/narrator"
	"github.com/hustlehq/tycoonsim/internal/server"
	"github.com/hustlehq/tycoonsim/internal/simulation"
	"github.com/hustlehq/tycoonsim/internal/sse"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Optional components (narrator, pool) may be nil.
type ShutdownComponents struct {
	Server    *server.Server
	Scheduler *simulation.Scheduler
	Hub       *sse.Hub
	Narrator  *narrator.Client
	Publisher *event.ResilientPublisher
	Pool      database.Pool
}

// GracefulShutdown stops the application components in dependency order:
// the HTTP server first (stop accepting requests), then the scheduler (no
// new ticks), then the streaming surfaces, and the event publisher last so
// pending retries flush before the process exits.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	slog.Info(LogMsgShuttingDownScheduler)
	components.Scheduler.Stop(ctx)

	components.Hub.Stop()

	if components.Narrator != nil {
		components.Narrator.Stop()
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	components.Publisher.Wait()

	if components.Pool != nil {
		components.Pool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
