package repository

import (
	"context"

	"github.com/hustlehq/tycoonsim/internal/domain"
)

// Business defines the interface for business state persistence
type Business interface {
	CreateBusiness(ctx context.Context, state *domain.BusinessState) error
	GetBusiness(ctx context.Context, businessID string) (*domain.BusinessState, error)
	ListBusinessIDs(ctx context.Context) ([]string, error)
	UpdateBusiness(ctx context.Context, state domain.BusinessState) error
	DeleteBusiness(ctx context.Context, businessID string) error

	BeginTx(ctx context.Context) (BusinessTx, error)
}

// BusinessTx defines the interface for business transactions. The row is
// locked for the life of the transaction so delta application is atomic.
type BusinessTx interface {
	Tx
	GetBusinessForUpdate(ctx context.Context, businessID string) (*domain.BusinessState, error)
	UpdateBusiness(ctx context.Context, state domain.BusinessState) error
}
