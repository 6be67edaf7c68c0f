package domain

import "time"

// Money is an amount in cents. Cash balances may go negative (overdraft);
// inventory quantities never do.
type Money int64

// Review is a customer review left after a completed order
type Review struct {
	OrderID      string    `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"` // 1-5 stars
	CreatedAt    time.Time `json:"created_at"`
}

// BusinessState is the full simulation state for one player-owned business.
// All mutation goes through the ledger's delta API, never direct field writes.
type BusinessState struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
	TypeID  string `json:"type_id"`

	CashCents          Money `json:"cash_cents"`
	TotalRevenueCents  Money `json:"total_revenue_cents"`
	TotalExpensesCents Money `json:"total_expenses_cents"`

	Reputation   int `json:"reputation"`   // 0-100
	Satisfaction int `json:"satisfaction"` // 0-100
	ReviewCount  int `json:"review_count"`

	OpenHour  int `json:"open_hour"`  // 0-23
	CloseHour int `json:"close_hour"` // 0-23
	SimHour   int `json:"sim_hour"`   // simulated hour of day

	MaxConcurrentOrders int `json:"max_concurrent_orders"`

	Inventory       map[string]int `json:"inventory"`
	Employees       []Employee     `json:"employees"`
	RecruitmentPool []Candidate    `json:"recruitment_pool"`
	Reviews         []Review       `json:"reviews"` // newest first

	OrdersCompleted int `json:"orders_completed"`
	OrdersFailed    int `json:"orders_failed"`

	LastRecruitmentAt time.Time `json:"last_recruitment_at"`
	LastPayrollAt     time.Time `json:"last_payroll_at"`
	CreatedAt         time.Time `json:"created_at"`
	LastActiveAt      time.Time `json:"last_active_at"`
}

// ClampPercent clamps a 0-100 scale value after a delta is applied
func ClampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxPercentScale {
		return MaxPercentScale
	}
	return v
}

// ActiveEmployeeCount returns the number of employees on the roster
func (b *BusinessState) ActiveEmployeeCount() int {
	return len(b.Employees)
}

// HasManager reports whether any employee holds the manager role.
// Auto-acceptance and auto-work only run for managed businesses.
func (b *BusinessState) HasManager() bool {
	for _, e := range b.Employees {
		if e.Role == RoleManager {
			return true
		}
	}
	return false
}

// IsOpenAt reports whether the business operates during the given simulated hour
func (b *BusinessState) IsOpenAt(hour int) bool {
	if b.OpenHour == b.CloseHour {
		return false
	}
	if b.OpenHour < b.CloseHour {
		return hour >= b.OpenHour && hour < b.CloseHour
	}
	// Overnight hours, e.g. 18-02
	return hour >= b.OpenHour || hour < b.CloseHour
}

// Clone returns a deep copy so repository callers never share mutable maps/slices
func (b *BusinessState) Clone() *BusinessState {
	cp := *b
	cp.Inventory = make(map[string]int, len(b.Inventory))
	for k, v := range b.Inventory {
		cp.Inventory[k] = v
	}
	cp.Employees = append([]Employee(nil), b.Employees...)
	cp.RecruitmentPool = append([]Candidate(nil), b.RecruitmentPool...)
	cp.Reviews = append([]Review(nil), b.Reviews...)
	return &cp
}
