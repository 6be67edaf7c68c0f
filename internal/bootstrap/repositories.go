package bootstrap

import (
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hustlehq/tycoonsim/internal/config"
	"github.com/hustlehq/tycoonsim/internal/database"
	"github.com/hustlehq/tycoonsim/internal/database/memory"
	"github.com/hustlehq/tycoonsim/internal/database/postgres"
	"github.com/hustlehq/tycoonsim/internal/repository"
)

// Stores bundles the persistence layer handed to the services. Pool is nil
// when the in-memory store is active.
type Stores struct {
	Businesses repository.Business
	Orders     repository.Order
	Pool       database.Pool
}

// InitializeStores selects the persistence backend from configuration.
// The in-memory store backs local play and tests; postgres is the default.
func InitializeStores(cfg *config.Config) (*Stores, error) {
	if cfg.UseMemoryStore {
		slog.Info(LogMsgUsingMemoryStore)
		store := memory.NewStore()
		return &Stores{Businesses: store, Orders: store}, nil
	}

	pool, err := newPgxPool(cfg)
	if err != nil {
		return nil, err
	}

	slog.Info(LogMsgUsingPostgres, "host", cfg.DBHost, "database", cfg.DBName)
	return &Stores{
		Businesses: postgres.NewBusinessRepository(pool),
		Orders:     postgres.NewOrderRepository(pool),
		Pool:       pool,
	}, nil
}

func newPgxPool(cfg *config.Config) (*pgxpool.Pool, error) {
	return database.NewPool(
		cfg.GetDBConnString(),
		DefaultMaxConnections,
		30*time.Minute,
		time.Hour,
	)
}
