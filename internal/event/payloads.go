package event

import (
	"time"

	"github.com/hustlehq/tycoonsim/internal/domain"
)

// Common event types
const (
	OrderAccepted    = Type(domain.EventTypeOrderAccepted)
	OrderRejected    = Type(domain.EventTypeOrderRejected)
	OrderCompleted   = Type(domain.EventTypeOrderCompleted)
	OrderFailed      = Type(domain.EventTypeOrderFailed)
	OrdersGenerated  = Type(domain.EventTypeOrdersGenerated)
	RecruitsArrived  = Type(domain.EventTypeRecruitsArrived)
	PayrollProcessed = Type(domain.EventTypePayrollProcessed)
	OverdraftWarning = Type(domain.EventTypeOverdraftWarning)
	StockoutWarning  = Type(domain.EventTypeStockoutWarning)
	LedgerApplied    = Type(domain.EventTypeLedgerApplied)
)

// Typed event payloads for type safety

// OrderPayloadV1 is the typed payload for order lifecycle events
type OrderPayloadV1 struct {
	BusinessID   string       `json:"business_id"`
	OrderID      string       `json:"order_id"`
	CustomerName string       `json:"customer_name"`
	TotalCents   domain.Money `json:"total_cents"`
	TipCents     domain.Money `json:"tip_cents,omitempty"`
	Rating       int          `json:"rating,omitempty"`
	FailReason   string       `json:"fail_reason,omitempty"`
	Automated    bool         `json:"automated"`
	Timestamp    int64        `json:"timestamp"`
}

// OrdersGeneratedPayloadV1 is the typed payload for order generation events
type OrdersGeneratedPayloadV1 struct {
	BusinessID string `json:"business_id"`
	Count      int    `json:"count"`
	SimHour    int    `json:"sim_hour"`
	Timestamp  int64  `json:"timestamp"`
}

// RecruitsArrivedPayloadV1 is the typed payload for recruitment pool refreshes
type RecruitsArrivedPayloadV1 struct {
	BusinessID string `json:"business_id"`
	Count      int    `json:"count"`
	PoolSize   int    `json:"pool_size"`
	Timestamp  int64  `json:"timestamp"`
}

// PayrollPayloadV1 is the typed payload for payroll settlement events
type PayrollPayloadV1 struct {
	BusinessID    string       `json:"business_id"`
	AmountCents   domain.Money `json:"amount_cents"`
	EmployeeCount int          `json:"employee_count"`
	Overdrawn     bool         `json:"overdrawn"`
	Timestamp     int64        `json:"timestamp"`
}

// OverdraftPayloadV1 is the typed payload for overdraft warnings
type OverdraftPayloadV1 struct {
	BusinessID string       `json:"business_id"`
	CashCents  domain.Money `json:"cash_cents"`
	Timestamp  int64        `json:"timestamp"`
}

// StockoutPayloadV1 is the typed payload for stockout warnings
type StockoutPayloadV1 struct {
	BusinessID string `json:"business_id"`
	OrderID    string `json:"order_id"`
	Item       string `json:"item"`
	Required   int    `json:"required"`
	Available  int    `json:"available"`
	Timestamp  int64  `json:"timestamp"`
}

// LedgerAppliedPayloadV1 notifies snapshot consumers that a business's state
// changed. Consumers re-read the current state rather than trusting the
// payload, so this carries only the business ID.
type LedgerAppliedPayloadV1 struct {
	BusinessID string `json:"business_id"`
	Timestamp  int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewOrderEvent creates an order lifecycle event of the given type
func NewOrderEvent(t Type, o domain.Order, automated bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: OrderPayloadV1{
			BusinessID:   o.BusinessID,
			OrderID:      o.ID,
			CustomerName: o.CustomerName,
			TotalCents:   o.TotalCents,
			FailReason:   o.FailReason,
			Automated:    automated,
			Timestamp:    time.Now().Unix(),
		},
	}
}

// NewOrderCompletedEvent creates a completion event carrying tip and rating
func NewOrderCompletedEvent(o domain.Order, tip domain.Money, rating int, automated bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    OrderCompleted,
		Payload: OrderPayloadV1{
			BusinessID:   o.BusinessID,
			OrderID:      o.ID,
			CustomerName: o.CustomerName,
			TotalCents:   o.TotalCents,
			TipCents:     tip,
			Rating:       rating,
			Automated:    automated,
			Timestamp:    time.Now().Unix(),
		},
	}
}

// NewOrdersGeneratedEvent creates an order generation event
func NewOrdersGeneratedEvent(businessID string, count, simHour int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    OrdersGenerated,
		Payload: OrdersGeneratedPayloadV1{
			BusinessID: businessID,
			Count:      count,
			SimHour:    simHour,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewRecruitsArrivedEvent creates a recruitment refresh event
func NewRecruitsArrivedEvent(businessID string, count, poolSize int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RecruitsArrived,
		Payload: RecruitsArrivedPayloadV1{
			BusinessID: businessID,
			Count:      count,
			PoolSize:   poolSize,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewPayrollEvent creates a payroll settlement event
func NewPayrollEvent(businessID string, amount domain.Money, employees int, overdrawn bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PayrollProcessed,
		Payload: PayrollPayloadV1{
			BusinessID:    businessID,
			AmountCents:   amount,
			EmployeeCount: employees,
			Overdrawn:     overdrawn,
			Timestamp:     time.Now().Unix(),
		},
	}
}

// NewOverdraftEvent creates an overdraft warning event
func NewOverdraftEvent(businessID string, cash domain.Money) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    OverdraftWarning,
		Payload: OverdraftPayloadV1{
			BusinessID: businessID,
			CashCents:  cash,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewStockoutEvent creates a stockout warning event
func NewStockoutEvent(businessID, orderID, item string, required, available int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    StockoutWarning,
		Payload: StockoutPayloadV1{
			BusinessID: businessID,
			OrderID:    orderID,
			Item:       item,
			Required:   required,
			Available:  available,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewLedgerAppliedEvent creates a state-changed notification
func NewLedgerAppliedEvent(businessID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LedgerApplied,
		Payload: LedgerAppliedPayloadV1{
			BusinessID: businessID,
			Timestamp:  time.Now().Unix(),
		},
	}
}
