// Package memory provides an in-memory implementation of the persistence
// interfaces. It backs tests and the UseMemoryStore mode; semantics mirror
// the postgres implementation, including the transaction row lock.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hustlehq/tycoonsim/internal/domain"
	"github.com/hustlehq/tycoonsim/internal/repository"
)

// Store implements repository.Business and repository.Order in memory
type Store struct {
	mu         sync.Mutex
	businesses map[string]*domain.BusinessState
	orders     map[string]domain.Order
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		businesses: make(map[string]*domain.BusinessState),
		orders:     make(map[string]domain.Order),
	}
}

// CreateBusiness stores a new business state
func (s *Store) CreateBusiness(_ context.Context, state *domain.BusinessState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.businesses[state.ID]; exists {
		return fmt.Errorf("%w: '%s'", domain.ErrBusinessExists, state.ID)
	}
	s.businesses[state.ID] = state.Clone()
	return nil
}

// GetBusiness returns a copy of the business state
func (s *Store) GetBusiness(_ context.Context, businessID string) (*domain.BusinessState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.businesses[businessID]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", domain.ErrBusinessNotFound, businessID)
	}
	return state.Clone(), nil
}

// ListBusinessIDs returns every known business id, sorted for determinism
func (s *Store) ListBusinessIDs(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.businesses))
	for id := range s.businesses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// UpdateBusiness overwrites the stored business state
func (s *Store) UpdateBusiness(_ context.Context, state domain.BusinessState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateBusinessLocked(state)
}

// DeleteBusiness removes the business and its orders
func (s *Store) DeleteBusiness(_ context.Context, businessID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.businesses[businessID]; !ok {
		return fmt.Errorf("%w: '%s'", domain.ErrBusinessNotFound, businessID)
	}
	delete(s.businesses, businessID)
	for id, o := range s.orders {
		if o.BusinessID == businessID {
			delete(s.orders, id)
		}
	}
	return nil
}

// BeginTx starts a transaction. The store lock is held until Commit or
// Rollback, matching the exclusive row lock of the postgres implementation.
func (s *Store) BeginTx(_ context.Context) (repository.BusinessTx, error) {
	s.mu.Lock()
	return &businessTx{store: s}, nil
}

type businessTx struct {
	store *Store
	done  bool
}

func (t *businessTx) GetBusinessForUpdate(_ context.Context, businessID string) (*domain.BusinessState, error) {
	state, ok := t.store.businesses[businessID]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", domain.ErrBusinessNotFound, businessID)
	}
	return state.Clone(), nil
}

func (t *businessTx) UpdateBusiness(_ context.Context, state domain.BusinessState) error {
	return t.store.updateBusinessLocked(state)
}

func (t *businessTx) Commit(_ context.Context) error {
	return t.finish()
}

func (t *businessTx) Rollback(_ context.Context) error {
	// The memory tx applies writes in place, so rollback only releases the
	// lock. Callers write last, after all validation, to keep this safe.
	return t.finish()
}

func (t *businessTx) finish() error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

func (s *Store) updateBusinessLocked(state domain.BusinessState) error {
	if _, ok := s.businesses[state.ID]; !ok {
		return fmt.Errorf("%w: '%s'", domain.ErrBusinessNotFound, state.ID)
	}
	s.businesses[state.ID] = state.Clone()
	return nil
}

// CreateOrders stores a batch of new orders
func (s *Store) CreateOrders(_ context.Context, orders []domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range orders {
		s.orders[o.ID] = o
	}
	return nil
}

// GetOrder returns a copy of the order
func (s *Store) GetOrder(_ context.Context, orderID string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", domain.ErrOrderNotFound, orderID)
	}
	return &o, nil
}

// ListOrdersByStatus returns a business's orders in the given statuses,
// oldest first
func (s *Store) ListOrdersByStatus(_ context.Context, businessID string, statuses ...domain.OrderStatus) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[domain.OrderStatus]bool, len(statuses))
	for _, st := range statuses {
		wanted[st] = true
	}

	var out []domain.Order
	for _, o := range s.orders {
		if o.BusinessID != businessID {
			continue
		}
		if len(wanted) > 0 && !wanted[o.Status] {
			continue
		}
		out = append(out, o)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateOrderGuarded persists the order only if the stored status still
// matches expected
func (s *Store) UpdateOrderGuarded(_ context.Context, order domain.Order, expected domain.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.orders[order.ID]
	if !ok {
		return fmt.Errorf("%w: '%s'", domain.ErrOrderNotFound, order.ID)
	}
	if current.Status != expected {
		return fmt.Errorf("%w: order %s is %s, expected %s",
			domain.ErrInvalidTransition, order.ID, current.Status, expected)
	}
	s.orders[order.ID] = order
	return nil
}
