package domain

import "time"

// OrderStatus is the order lifecycle state
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderAccepted   OrderStatus = "accepted"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderFailed     OrderStatus = "failed"
	OrderRejected   OrderStatus = "rejected"
)

// Fail reasons recorded on terminal failed orders
const (
	FailReasonStockout = "stockout"
	FailReasonManual   = "manual"
)

// IsTerminal reports whether no further transition is permitted
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderCompleted, OrderFailed, OrderRejected:
		return true
	}
	return false
}

// IsWorkable reports whether the order can be completed or failed
func (s OrderStatus) IsWorkable() bool {
	return s == OrderAccepted || s == OrderInProgress
}

// OrderItem is a single line item on an order
type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Order is a customer order. Once it reaches a terminal status it is an
// immutable record; the repository's guarded update enforces that.
type Order struct {
	ID           string      `json:"id"`
	BusinessID   string      `json:"business_id"`
	CustomerName string      `json:"customer_name"`
	Items        []OrderItem `json:"items"`
	TotalCents   Money       `json:"total_cents"`
	Status       OrderStatus `json:"status"`
	FailReason   string      `json:"fail_reason,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	AcceptedAt   *time.Time  `json:"accepted_at,omitempty"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
}
