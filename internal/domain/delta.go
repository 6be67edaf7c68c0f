package domain

import "time"

// FinancialDelta is one atomic unit of state change applied by the ledger.
// Every field is optional; zero values are no-ops. Reputation and
// satisfaction are always deltas, never absolute values.
type FinancialDelta struct {
	CashCents     Money `json:"cash_cents,omitempty"`
	RevenueCents  Money `json:"revenue_cents,omitempty"`
	ExpensesCents Money `json:"expenses_cents,omitempty"`

	ReputationDelta   int `json:"reputation_delta,omitempty"`
	SatisfactionDelta int `json:"satisfaction_delta,omitempty"`

	OrdersCompletedDelta int `json:"orders_completed_delta,omitempty"`
	OrdersFailedDelta    int `json:"orders_failed_delta,omitempty"`

	// Inventory values are additive and may be negative. The ledger floors
	// resulting quantities at zero as a safety net; stock checks happen
	// before fulfillment, not here.
	Inventory map[string]int `json:"inventory,omitempty"`

	// Reviews are prepended newest-first, capped by MaxReviews.
	Reviews []Review `json:"reviews,omitempty"`

	// Replacement fields: nil leaves the stored value untouched. Staffing
	// passes updated rosters, the order generator advances the simulated
	// hour, payroll stamps the settlement time.
	Employees         *[]Employee  `json:"employees,omitempty"`
	RecruitmentPool   *[]Candidate `json:"recruitment_pool,omitempty"`
	SimHour           *int         `json:"sim_hour,omitempty"`
	LastRecruitmentAt *time.Time   `json:"last_recruitment_at,omitempty"`
	LastPayrollAt     *time.Time   `json:"last_payroll_at,omitempty"`
}

// IsZero reports whether applying the delta would change nothing
func (d FinancialDelta) IsZero() bool {
	if d.CashCents != 0 || d.RevenueCents != 0 || d.ExpensesCents != 0 {
		return false
	}
	if d.ReputationDelta != 0 || d.SatisfactionDelta != 0 {
		return false
	}
	if d.OrdersCompletedDelta != 0 || d.OrdersFailedDelta != 0 {
		return false
	}
	for _, v := range d.Inventory {
		if v != 0 {
			return false
		}
	}
	if d.Employees != nil || d.RecruitmentPool != nil || d.SimHour != nil {
		return false
	}
	return len(d.Reviews) == 0 && d.LastRecruitmentAt == nil && d.LastPayrollAt == nil
}

// Merge accumulates another delta into this one. Used by the auto-work pass
// to batch every per-order effect into a single ledger call.
func (d *FinancialDelta) Merge(other FinancialDelta) {
	d.CashCents += other.CashCents
	d.RevenueCents += other.RevenueCents
	d.ExpensesCents += other.ExpensesCents
	d.ReputationDelta += other.ReputationDelta
	d.SatisfactionDelta += other.SatisfactionDelta
	d.OrdersCompletedDelta += other.OrdersCompletedDelta
	d.OrdersFailedDelta += other.OrdersFailedDelta
	if len(other.Inventory) > 0 {
		if d.Inventory == nil {
			d.Inventory = make(map[string]int, len(other.Inventory))
		}
		for k, v := range other.Inventory {
			d.Inventory[k] += v
		}
	}
	// Later merges are newer; keep newest-first ordering on apply.
	d.Reviews = append(other.Reviews, d.Reviews...)
	if other.Employees != nil {
		d.Employees = other.Employees
	}
	if other.RecruitmentPool != nil {
		d.RecruitmentPool = other.RecruitmentPool
	}
	if other.SimHour != nil {
		d.SimHour = other.SimHour
	}
	if other.LastRecruitmentAt != nil {
		d.LastRecruitmentAt = other.LastRecruitmentAt
	}
	if other.LastPayrollAt != nil {
		d.LastPayrollAt = other.LastPayrollAt
	}
}
