package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hustlehq/tycoonsim/internal/domain"
	"github.com/hustlehq/tycoonsim/internal/repository"
)

const businessColumns = `business_id, owner_id, name, type_id,
	cash_cents, total_revenue_cents, total_expenses_cents,
	reputation, satisfaction, review_count,
	open_hour, close_hour, sim_hour, max_concurrent_orders,
	inventory, employees, recruitment_pool, reviews,
	orders_completed, orders_failed,
	last_recruitment_at, last_payroll_at, created_at, last_active_at`

const (
	queryGetBusiness = `SELECT ` + businessColumns + ` FROM businesses WHERE business_id = $1`

	queryGetBusinessForUpdate = queryGetBusiness + ` FOR UPDATE`

	queryListBusinessIDs = `SELECT business_id FROM businesses ORDER BY created_at`

	queryInsertBusiness = `INSERT INTO businesses (` + businessColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`

	queryUpdateBusiness = `UPDATE businesses SET
		owner_id = $2, name = $3, type_id = $4,
		cash_cents = $5, total_revenue_cents = $6, total_expenses_cents = $7,
		reputation = $8, satisfaction = $9, review_count = $10,
		open_hour = $11, close_hour = $12, sim_hour = $13, max_concurrent_orders = $14,
		inventory = $15, employees = $16, recruitment_pool = $17, reviews = $18,
		orders_completed = $19, orders_failed = $20,
		last_recruitment_at = $21, last_payroll_at = $22, created_at = $23, last_active_at = $24
		WHERE business_id = $1`

	queryDeleteBusiness = `DELETE FROM businesses WHERE business_id = $1`
)

// BusinessRepository implements repository.Business for PostgreSQL
type BusinessRepository struct {
	db *pgxpool.Pool
}

// NewBusinessRepository creates a new BusinessRepository
func NewBusinessRepository(db *pgxpool.Pool) *BusinessRepository {
	return &BusinessRepository{db: db}
}

// businessTx implements repository.BusinessTx over a pgx transaction. The
// FOR UPDATE read keeps the row locked until Commit/Rollback, so delta
// application is atomic across concurrent tick and command paths.
type businessTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *BusinessRepository) BeginTx(ctx context.Context) (repository.BusinessTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTx, err)
	}
	return &businessTx{tx: tx}, nil
}

func (t *businessTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *businessTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

func (t *businessTx) GetBusinessForUpdate(ctx context.Context, businessID string) (*domain.BusinessState, error) {
	id, err := parseBusinessUUID(businessID)
	if err != nil {
		return nil, err
	}
	return scanBusiness(t.tx.QueryRow(ctx, queryGetBusinessForUpdate, id))
}

func (t *businessTx) UpdateBusiness(ctx context.Context, state domain.BusinessState) error {
	return execUpdateBusiness(ctx, t.tx, state)
}

// CreateBusiness inserts a new business row
func (r *BusinessRepository) CreateBusiness(ctx context.Context, state *domain.BusinessState) error {
	id, err := parseBusinessUUID(state.ID)
	if err != nil {
		return err
	}

	args, err := businessArgs(id, *state)
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, queryInsertBusiness, args...); err != nil {
		return fmt.Errorf("failed to insert business: %w", err)
	}
	return nil
}

// GetBusiness retrieves a business by ID
func (r *BusinessRepository) GetBusiness(ctx context.Context, businessID string) (*domain.BusinessState, error) {
	id, err := parseBusinessUUID(businessID)
	if err != nil {
		return nil, err
	}
	return scanBusiness(r.db.QueryRow(ctx, queryGetBusiness, id))
}

// ListBusinessIDs returns every business ID, oldest first
func (r *BusinessRepository) ListBusinessIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, queryListBusinessIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan business id: %w", err)
		}
		ids = append(ids, id.String())
	}
	return ids, rows.Err()
}

// UpdateBusiness persists the full business state outside a transaction
func (r *BusinessRepository) UpdateBusiness(ctx context.Context, state domain.BusinessState) error {
	return execUpdateBusiness(ctx, r.db, state)
}

// DeleteBusiness removes a business; its orders cascade
func (r *BusinessRepository) DeleteBusiness(ctx context.Context, businessID string) error {
	id, err := parseBusinessUUID(businessID)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, queryDeleteBusiness, id)
	if err != nil {
		return fmt.Errorf("failed to delete business: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: '%s'", domain.ErrBusinessNotFound, businessID)
	}
	return nil
}

// execer covers both *pgxpool.Pool and pgx.Tx
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func execUpdateBusiness(ctx context.Context, db execer, state domain.BusinessState) error {
	id, err := parseBusinessUUID(state.ID)
	if err != nil {
		return err
	}

	args, err := businessArgs(id, state)
	if err != nil {
		return err
	}

	tag, err := db.Exec(ctx, queryUpdateBusiness, args...)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: '%s'", domain.ErrBusinessNotFound, state.ID)
	}
	return nil
}

// businessArgs builds the positional argument list shared by insert and update
func businessArgs(id uuid.UUID, state domain.BusinessState) ([]any, error) {
	inventory, err := json.Marshal(state.Inventory)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToMarshalState, err)
	}
	employees, err := json.Marshal(emptySlice(state.Employees))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToMarshalState, err)
	}
	pool, err := json.Marshal(emptySlice(state.RecruitmentPool))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToMarshalState, err)
	}
	reviews, err := json.Marshal(emptySlice(state.Reviews))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToMarshalState, err)
	}

	return []any{
		id, state.OwnerID, state.Name, state.TypeID,
		int64(state.CashCents), int64(state.TotalRevenueCents), int64(state.TotalExpensesCents),
		state.Reputation, state.Satisfaction, state.ReviewCount,
		state.OpenHour, state.CloseHour, state.SimHour, state.MaxConcurrentOrders,
		inventory, employees, pool, reviews,
		state.OrdersCompleted, state.OrdersFailed,
		nullableTime(state.LastRecruitmentAt), nullableTime(state.LastPayrollAt),
		state.CreatedAt, state.LastActiveAt,
	}, nil
}

func scanBusiness(row pgx.Row) (*domain.BusinessState, error) {
	var (
		state                domain.BusinessState
		id                   uuid.UUID
		cash, revenue, exp   int64
		inventory            []byte
		employees            []byte
		pool                 []byte
		reviews              []byte
		lastRecruit, lastPay *time.Time
	)

	err := row.Scan(
		&id, &state.OwnerID, &state.Name, &state.TypeID,
		&cash, &revenue, &exp,
		&state.Reputation, &state.Satisfaction, &state.ReviewCount,
		&state.OpenHour, &state.CloseHour, &state.SimHour, &state.MaxConcurrentOrders,
		&inventory, &employees, &pool, &reviews,
		&state.OrdersCompleted, &state.OrdersFailed,
		&lastRecruit, &lastPay, &state.CreatedAt, &state.LastActiveAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanBusiness, err)
	}

	state.ID = id.String()
	state.CashCents = domain.Money(cash)
	state.TotalRevenueCents = domain.Money(revenue)
	state.TotalExpensesCents = domain.Money(exp)
	if lastRecruit != nil {
		state.LastRecruitmentAt = *lastRecruit
	}
	if lastPay != nil {
		state.LastPayrollAt = *lastPay
	}

	if err := json.Unmarshal(inventory, &state.Inventory); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inventory: %w", err)
	}
	if err := json.Unmarshal(employees, &state.Employees); err != nil {
		return nil, fmt.Errorf("failed to unmarshal employees: %w", err)
	}
	if err := json.Unmarshal(pool, &state.RecruitmentPool); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recruitment pool: %w", err)
	}
	if err := json.Unmarshal(reviews, &state.Reviews); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reviews: %w", err)
	}
	if state.Inventory == nil {
		state.Inventory = map[string]int{}
	}

	return &state, nil
}

// parseBusinessUUID parses a business ID string with a consistent error
func parseBusinessUUID(businessID string) (uuid.UUID, error) {
	u, err := uuid.Parse(businessID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", ErrMsgInvalidBusinessID, err)
	}
	return u, nil
}

// nullableTime maps the zero time to NULL
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// emptySlice keeps nil slices marshaling as [] rather than null
func emptySlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
