package catalog

import (
	"context"
	"log/slog"

	"github.com/hustlehq/tycoonsim/internal/domain"
	"github.com/hustlehq/tycoonsim/internal/logger"
)

// Service provides read access to the loaded business-type catalog
type Service interface {
	// GetBusinessType returns the definition for the given id. The boolean
	// reports whether the id exists; callers must treat a miss as
	// "simulation disabled", never as an error.
	GetBusinessType(id string) (*domain.BusinessType, bool)
	// ListBusinessTypes returns all definitions in load order.
	ListBusinessTypes() []domain.BusinessType
}

type service struct {
	types   map[string]*domain.BusinessType
	ordered []domain.BusinessType
}

// NewService builds a catalog service from a validated config
func NewService(ctx context.Context, config *Config) Service {
	types := make(map[string]*domain.BusinessType, len(config.BusinessTypes))
	for i := range config.BusinessTypes {
		types[config.BusinessTypes[i].ID] = &config.BusinessTypes[i]
	}

	logger.FromContext(ctx).Info(LogMsgCatalogLoaded,
		slog.Int("business_types", len(types)),
		slog.String("version", config.Version))

	return &service{
		types:   types,
		ordered: config.BusinessTypes,
	}
}

func (s *service) GetBusinessType(id string) (*domain.BusinessType, bool) {
	bt, ok := s.types[id]
	return bt, ok
}

func (s *service) ListBusinessTypes() []domain.BusinessType {
	out := make([]domain.BusinessType, len(s.ordered))
	copy(out, s.ordered)
	return out
}
