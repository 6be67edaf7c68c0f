package bootstrap

import (
	"log/slog"

	"github.com/hustlehq/tycoonsim/internal/config"
	"github.com/hustlehq/tycoonsim/internal/logger"
)

// SetupLogger initializes the application logger from the loaded
// configuration and logs the startup banner.
func SetupLogger(cfg *config.Config) {
	// Source locations only in dev; they are noise in production logs
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	))

	slog.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "format", cfg.LogFormat)
	slog.Info(LogMsgStartingService,
		"environment", cfg.Environment,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"memory_store", cfg.UseMemoryStore,
		"tick_interval", cfg.TickInterval,
		"catalog_path", cfg.CatalogPath)
}
