package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hustlehq/tycoonsim/internal/domain"
)

const orderColumns = `order_id, business_id, customer_name, items, total_cents,
	status, fail_reason, created_at, accepted_at, completed_at`

const (
	queryGetOrder = `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1`

	queryListOrders = `SELECT ` + orderColumns + ` FROM orders
		WHERE business_id = $1 ORDER BY created_at, order_id`

	queryListOrdersByStatus = `SELECT ` + orderColumns + ` FROM orders
		WHERE business_id = $1 AND status = ANY($2) ORDER BY created_at, order_id`

	queryInsertOrder = `INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	// The status predicate makes the update a compare-and-set: zero rows
	// affected means someone else transitioned the order first.
	queryUpdateOrderGuarded = `UPDATE orders SET
		status = $2, fail_reason = $3, accepted_at = $4, completed_at = $5
		WHERE order_id = $1 AND status = $6`
)

// OrderRepository implements repository.Order for PostgreSQL
type OrderRepository struct {
	db *pgxpool.Pool
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrders inserts a batch of generated orders in one transaction
func (r *OrderRepository) CreateOrders(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, o := range orders {
		orderID, err := uuid.Parse(o.ID)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgInvalidOrderID, err)
		}
		businessID, err := parseBusinessUUID(o.BusinessID)
		if err != nil {
			return err
		}
		items, err := json.Marshal(emptySlice(o.Items))
		if err != nil {
			return fmt.Errorf("failed to marshal order items: %w", err)
		}

		batch.Queue(queryInsertOrder,
			orderID, businessID, o.CustomerName, items, int64(o.TotalCents),
			string(o.Status), nullableString(o.FailReason),
			o.CreatedAt, o.AcceptedAt, o.CompletedAt)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range orders {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToInsertOrders, err)
		}
	}
	return nil
}

// GetOrder retrieves an order by ID
func (r *OrderRepository) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidOrderID, err)
	}
	return scanOrder(r.db.QueryRow(ctx, queryGetOrder, id))
}

// ListOrdersByStatus returns a business's orders in the given statuses,
// oldest first. An empty status list returns every order.
func (r *OrderRepository) ListOrdersByStatus(ctx context.Context, businessID string, statuses ...domain.OrderStatus) ([]domain.Order, error) {
	id, err := parseBusinessUUID(businessID)
	if err != nil {
		return nil, err
	}

	var rows pgx.Rows
	if len(statuses) == 0 {
		rows, err = r.db.Query(ctx, queryListOrders, id)
	} else {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		rows, err = r.db.Query(ctx, queryListOrdersByStatus, id, values)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// UpdateOrderGuarded persists the order only if its stored status still
// equals expected. Returns domain.ErrInvalidTransition on a lost race.
func (r *OrderRepository) UpdateOrderGuarded(ctx context.Context, order domain.Order, expected domain.OrderStatus) error {
	id, err := uuid.Parse(order.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidOrderID, err)
	}

	tag, err := r.db.Exec(ctx, queryUpdateOrderGuarded,
		id, string(order.Status), nullableString(order.FailReason),
		order.AcceptedAt, order.CompletedAt, string(expected))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateOrder, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the order is gone or its status moved under us.
		if _, err := r.GetOrder(ctx, order.ID); err != nil {
			return err
		}
		return fmt.Errorf("%w: order '%s' no longer '%s'",
			domain.ErrInvalidTransition, order.ID, expected)
	}
	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o          domain.Order
		orderID    uuid.UUID
		businessID uuid.UUID
		items      []byte
		total      int64
		status     string
		failReason *string
		acceptedAt *time.Time
		completed  *time.Time
	)

	err := row.Scan(&orderID, &businessID, &o.CustomerName, &items, &total,
		&status, &failReason, &o.CreatedAt, &acceptedAt, &completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanOrder, err)
	}

	o.ID = orderID.String()
	o.BusinessID = businessID.String()
	o.TotalCents = domain.Money(total)
	o.Status = domain.OrderStatus(status)
	o.AcceptedAt = acceptedAt
	o.CompletedAt = completed
	if failReason != nil {
		o.FailReason = *failReason
	}

	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	return &o, nil
}

// nullableString maps the empty string to NULL
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
