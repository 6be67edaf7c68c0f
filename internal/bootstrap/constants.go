package bootstrap

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting tycoonsim"
	LogMsgConfigurationLoaded = "Configuration loaded"
)

// Log messages for store initialization
const (
	LogMsgUsingMemoryStore = "Using in-memory store"
	LogMsgUsingPostgres    = "Using postgres store"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownScheduler      = "Shutting down scheduler..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
)

// Database pool sizing
const (
	DefaultMaxConnections = 10
)
