package schema

// SchemaSQL contains the full database schema initialization script. It
// mirrors the goose migrations under migrations/ for one-shot setup against
// a fresh database.
const SchemaSQL = `
-- Businesses: one row per player-owned business. Scalar ledger fields are
-- columns; roster, recruitment pool, inventory, and reviews are JSONB blobs
-- mutated as a whole under the row lock.
CREATE TABLE IF NOT EXISTS businesses (
    business_id UUID PRIMARY KEY,
    owner_id VARCHAR(64) NOT NULL,
    name VARCHAR(100) NOT NULL,
    type_id VARCHAR(50) NOT NULL,
    cash_cents BIGINT NOT NULL DEFAULT 0,
    total_revenue_cents BIGINT NOT NULL DEFAULT 0,
    total_expenses_cents BIGINT NOT NULL DEFAULT 0,
    reputation INTEGER NOT NULL DEFAULT 50,
    satisfaction INTEGER NOT NULL DEFAULT 50,
    review_count INTEGER NOT NULL DEFAULT 0,
    open_hour INTEGER NOT NULL DEFAULT 0,
    close_hour INTEGER NOT NULL DEFAULT 0,
    sim_hour INTEGER NOT NULL DEFAULT 6,
    max_concurrent_orders INTEGER NOT NULL DEFAULT 3,
    inventory JSONB NOT NULL DEFAULT '{}',
    employees JSONB NOT NULL DEFAULT '[]',
    recruitment_pool JSONB NOT NULL DEFAULT '[]',
    reviews JSONB NOT NULL DEFAULT '[]',
    orders_completed INTEGER NOT NULL DEFAULT 0,
    orders_failed INTEGER NOT NULL DEFAULT 0,
    last_recruitment_at TIMESTAMPTZ,
    last_payroll_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    last_active_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_businesses_owner ON businesses (owner_id);

-- Orders: immutable once terminal; the guarded status update enforces that
-- at the SQL level.
CREATE TABLE IF NOT EXISTS orders (
    order_id UUID PRIMARY KEY,
    business_id UUID NOT NULL REFERENCES businesses(business_id) ON DELETE CASCADE,
    customer_name VARCHAR(100) NOT NULL,
    items JSONB NOT NULL DEFAULT '[]',
    total_cents BIGINT NOT NULL,
    status VARCHAR(20) NOT NULL,
    fail_reason VARCHAR(50),
    created_at TIMESTAMPTZ NOT NULL,
    accepted_at TIMESTAMPTZ,
    completed_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_orders_business_status ON orders (business_id, status, created_at);
`
