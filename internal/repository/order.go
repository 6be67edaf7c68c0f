package repository

import (
	"context"

	"github.com/hustlehq/tycoonsim/internal/domain"
)

// Order defines the interface for order persistence
type Order interface {
	CreateOrders(ctx context.Context, orders []domain.Order) error
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrdersByStatus returns a business's orders in the given statuses,
	// oldest first. An empty status list returns every order.
	ListOrdersByStatus(ctx context.Context, businessID string, statuses ...domain.OrderStatus) ([]domain.Order, error)

	// UpdateOrderGuarded persists the order only if its stored status still
	// equals expected. Returns domain.ErrInvalidTransition on a lost race,
	// which keeps terminal transitions single-owner between the scheduler
	// and manual commands.
	UpdateOrderGuarded(ctx context.Context, order domain.Order, expected domain.OrderStatus) error
}
