// Package command implements the operations a human operator performs
// against a business: creating it, hiring, and manually accepting, rejecting,
// or completing orders. Manual actions interleave with the scheduler's
// automation; every transition re-reads current status through the guarded
// repository update, so a lost race surfaces as ErrInvalidTransition instead
// of a double transition.
package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hustlehq/tycoonsim/internal/catalog"
	"github.com/hustlehq/tycoonsim/internal/clock"
	"github.com/hustlehq/tycoonsim/internal/domain"
	"github.com/hustlehq/tycoonsim/internal/event"
	"github.com/hustlehq/tycoonsim/internal/ledger"
	"github.com/hustlehq/tycoonsim/internal/logger"
	"github.com/hustlehq/tycoonsim/internal/order"
	"github.com/hustlehq/tycoonsim/internal/repository"
	"github.com/hustlehq/tycoonsim/internal/staffing"
)

// Registrar is the scheduler surface the command service drives
type Registrar interface {
	Register(ctx context.Context, businessID string)
	Unregister(businessID string)
	Pause(ctx context.Context, businessID string) error
	Resume(ctx context.Context, businessID string) error
	IsPaused(businessID string) (bool, error)
}

// Service is the operator command surface
type Service interface {
	CreateBusiness(ctx context.Context, ownerID, name, typeID string) (*domain.BusinessState, error)
	GetBusiness(ctx context.Context, businessID string) (*domain.BusinessState, error)
	ListOrders(ctx context.Context, businessID string, statuses ...domain.OrderStatus) ([]domain.Order, error)

	AcceptOrder(ctx context.Context, businessID, orderID string) (*domain.Order, error)
	RejectOrder(ctx context.Context, businessID, orderID string) (*domain.Order, error)
	CompleteOrder(ctx context.Context, businessID, orderID string, qualityOverride *int) (*domain.Order, error)

	HireCandidate(ctx context.Context, businessID, candidateID string) (*domain.BusinessState, error)

	PauseSimulation(ctx context.Context, businessID string) error
	ResumeSimulation(ctx context.Context, businessID string) error
	IsPaused(businessID string) (bool, error)
}

type service struct {
	businesses repository.Business
	orders     repository.Order
	ledger     ledger.Service
	staffing   staffing.Service
	catalog    catalog.Service
	registrar  Registrar
	bus        event.Bus
	clock      clock.Clock
}

// NewService creates the command service
func NewService(
	businesses repository.Business,
	orders repository.Order,
	ledgerSvc ledger.Service,
	staffingSvc staffing.Service,
	catalogSvc catalog.Service,
	registrar Registrar,
	bus event.Bus,
	clk clock.Clock,
) Service {
	return &service{
		businesses: businesses,
		orders:     orders,
		ledger:     ledgerSvc,
		staffing:   staffingSvc,
		catalog:    catalogSvc,
		registrar:  registrar,
		bus:        bus,
		clock:      clk,
	}
}

// CreateBusiness instantiates a business from a catalog archetype and
// registers it with the scheduler
func (s *service) CreateBusiness(ctx context.Context, ownerID, name, typeID string) (*domain.BusinessState, error) {
	bt, ok := s.catalog.GetBusinessType(typeID)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", domain.ErrBusinessTypeNotFound, typeID)
	}

	now := s.clock.Now()
	inventory := make(map[string]int, len(bt.StartingInventory))
	for item, qty := range bt.StartingInventory {
		inventory[item] = qty
	}

	state := &domain.BusinessState{
		ID:                  uuid.NewString(),
		OwnerID:             ownerID,
		Name:                name,
		TypeID:              bt.ID,
		CashCents:           bt.StartingCapitalCents,
		Reputation:          StartingReputation,
		Satisfaction:        StartingSatisfaction,
		OpenHour:            bt.OpenHour,
		CloseHour:           bt.CloseHour,
		SimHour:             domain.SimDayStartHour,
		MaxConcurrentOrders: domain.DefaultMaxConcurrentOrders,
		Inventory:           inventory,
		CreatedAt:           now,
		LastActiveAt:        now,
	}

	if err := s.businesses.CreateBusiness(ctx, state); err != nil {
		return nil, err
	}
	s.registrar.Register(ctx, state.ID)

	logger.FromContext(ctx).Info(LogMsgBusinessCreated,
		slog.String("business_id", state.ID),
		slog.String("type_id", typeID))
	return state, nil
}

func (s *service) GetBusiness(ctx context.Context, businessID string) (*domain.BusinessState, error) {
	return s.businesses.GetBusiness(ctx, businessID)
}

func (s *service) ListOrders(ctx context.Context, businessID string, statuses ...domain.OrderStatus) ([]domain.Order, error) {
	if _, err := s.businesses.GetBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	return s.orders.ListOrdersByStatus(ctx, businessID, statuses...)
}

// AcceptOrder manually accepts a pending order
func (s *service) AcceptOrder(ctx context.Context, businessID, orderID string) (*domain.Order, error) {
	o, err := s.ownedOrder(ctx, businessID, orderID)
	if err != nil {
		return nil, err
	}

	accepted, err := order.Accept(*o, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.orders.UpdateOrderGuarded(ctx, accepted, domain.OrderPending); err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewOrderEvent(event.OrderAccepted, accepted, false))
	return &accepted, nil
}

// RejectOrder manually rejects a pending order and applies the reputation
// penalty
func (s *service) RejectOrder(ctx context.Context, businessID, orderID string) (*domain.Order, error) {
	o, err := s.ownedOrder(ctx, businessID, orderID)
	if err != nil {
		return nil, err
	}

	result, err := order.Reject(*o, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.orders.UpdateOrderGuarded(ctx, result.Order, domain.OrderPending); err != nil {
		return nil, err
	}

	if _, err := s.ledger.ApplyDelta(ctx, businessID, domain.FinancialDelta{
		ReputationDelta: -result.ReputationPenalty,
	}); err != nil {
		logger.FromContext(ctx).Error(LogMsgPenaltyFailed,
			slog.String("order_id", orderID),
			slog.String("error", err.Error()))
	}

	s.publish(ctx, event.NewOrderEvent(event.OrderRejected, result.Order, false))
	return &result.Order, nil
}

// CompleteOrder manually completes a workable order. Unlike auto-work, a
// stock shortage rejects the command instead of failing the order; the
// operator can restock and retry.
func (s *service) CompleteOrder(ctx context.Context, businessID, orderID string, qualityOverride *int) (*domain.Order, error) {
	o, err := s.ownedOrder(ctx, businessID, orderID)
	if err != nil {
		return nil, err
	}

	state, err := s.businesses.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	bt, ok := s.catalog.GetBusinessType(state.TypeID)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", domain.ErrBusinessTypeNotFound, state.TypeID)
	}

	quality := rosterQuality(state.Employees)
	if qualityOverride != nil {
		quality = domain.ClampPercent(*qualityOverride)
	}

	expected := o.Status
	now := s.clock.Now()
	result, err := order.Complete(*o, quality, bt, now)
	if err != nil {
		return nil, err
	}

	for item, needed := range result.InventoryDeductions {
		if state.Inventory[item] < needed {
			return nil, fmt.Errorf(ErrFmtShortStock,
				domain.ErrInsufficientStock, needed, item, state.Inventory[item])
		}
	}

	if err := s.orders.UpdateOrderGuarded(ctx, result.Order, expected); err != nil {
		return nil, err
	}
	if _, err := s.ledger.ApplyDelta(ctx, businessID, staffing.CompletionDelta(result, now)); err != nil {
		logger.FromContext(ctx).Error(LogMsgDeltaFailed,
			slog.String("order_id", orderID),
			slog.String("error", err.Error()))
	}

	s.publish(ctx, event.NewOrderCompletedEvent(result.Order, result.TipCents, result.Rating, false))
	return &result.Order, nil
}

// HireCandidate promotes a recruitment pool candidate onto the roster
func (s *service) HireCandidate(ctx context.Context, businessID, candidateID string) (*domain.BusinessState, error) {
	state, err := s.businesses.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	delta, err := s.staffing.Hire(state, candidateID, s.clock.Now())
	if err != nil {
		return nil, err
	}

	applied, err := s.ledger.ApplyDelta(ctx, businessID, delta)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgCandidateHired,
		slog.String("business_id", businessID),
		slog.String("candidate_id", candidateID))
	return applied, nil
}

func (s *service) PauseSimulation(ctx context.Context, businessID string) error {
	return s.registrar.Pause(ctx, businessID)
}

func (s *service) ResumeSimulation(ctx context.Context, businessID string) error {
	return s.registrar.Resume(ctx, businessID)
}

func (s *service) IsPaused(businessID string) (bool, error) {
	return s.registrar.IsPaused(businessID)
}

// ownedOrder fetches an order and checks it belongs to the business
func (s *service) ownedOrder(ctx context.Context, businessID, orderID string) (*domain.Order, error) {
	o, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.BusinessID != businessID {
		return nil, fmt.Errorf("%w: '%s'", domain.ErrOrderNotFound, orderID)
	}
	return o, nil
}

func (s *service) publish(ctx context.Context, e event.Event) {
	if err := s.bus.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed,
			slog.String("type", string(e.Type)),
			slog.String("error", err.Error()))
	}
}

// rosterQuality is the deterministic manual-completion quality: the average
// employee quality stat, or the neutral default for an unstaffed business
func rosterQuality(employees []domain.Employee) int {
	if len(employees) == 0 {
		return DefaultManualQuality
	}
	total := 0
	for _, e := range employees {
		total += e.Quality
	}
	return total / len(employees)
}
