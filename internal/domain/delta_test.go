package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinancialDeltaIsZero(t *testing.T) {
	assert.True(t, FinancialDelta{}.IsZero())

	// An inventory map of explicit zero entries is still a no-op
	assert.True(t, FinancialDelta{Inventory: map[string]int{"flour": 0}}.IsZero())

	assert.False(t, FinancialDelta{CashCents: -1}.IsZero())
	assert.False(t, FinancialDelta{SatisfactionDelta: 2}.IsZero())
	assert.False(t, FinancialDelta{Inventory: map[string]int{"flour": -3}}.IsZero())
	assert.False(t, FinancialDelta{Reviews: []Review{{OrderID: "ord-1"}}}.IsZero())

	hour := 9
	assert.False(t, FinancialDelta{SimHour: &hour}.IsZero())

	// Replacing a roster with an empty slice is a real change, not a no-op
	empty := []Employee{}
	assert.False(t, FinancialDelta{Employees: &empty}.IsZero())

	now := time.Now()
	assert.False(t, FinancialDelta{LastPayrollAt: &now}.IsZero())
}

func TestFinancialDeltaMerge(t *testing.T) {
	d := FinancialDelta{
		CashCents:            1000,
		RevenueCents:         1000,
		ReputationDelta:      1,
		OrdersCompletedDelta: 1,
		Inventory:            map[string]int{"flour": -2},
		Reviews:              []Review{{OrderID: "ord-1"}},
	}

	d.Merge(FinancialDelta{
		CashCents:            -300,
		ExpensesCents:        300,
		ReputationDelta:      -2,
		OrdersCompletedDelta: 1,
		Inventory:            map[string]int{"flour": -1, "yeast": -4},
		Reviews:              []Review{{OrderID: "ord-2"}},
	})

	assert.Equal(t, Money(700), d.CashCents)
	assert.Equal(t, Money(1000), d.RevenueCents)
	assert.Equal(t, Money(300), d.ExpensesCents)
	assert.Equal(t, -1, d.ReputationDelta)
	assert.Equal(t, 2, d.OrdersCompletedDelta)
	assert.Equal(t, map[string]int{"flour": -3, "yeast": -4}, d.Inventory)

	// Newer reviews come first so the ledger keeps newest-first on apply
	require.Len(t, d.Reviews, 2)
	assert.Equal(t, "ord-2", d.Reviews[0].OrderID)
	assert.Equal(t, "ord-1", d.Reviews[1].OrderID)
}

func TestFinancialDeltaMergeReplacementFields(t *testing.T) {
	firstHour := 8
	secondHour := 9
	roster := []Employee{{ID: "e1"}}
	payroll := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	d := FinancialDelta{SimHour: &firstHour}
	d.Merge(FinancialDelta{SimHour: &secondHour, Employees: &roster, LastPayrollAt: &payroll})

	require.NotNil(t, d.SimHour)
	assert.Equal(t, 9, *d.SimHour)
	require.NotNil(t, d.Employees)
	assert.Len(t, *d.Employees, 1)
	require.NotNil(t, d.LastPayrollAt)
	assert.Equal(t, payroll, *d.LastPayrollAt)

	// A merge without replacements keeps the prior ones
	d.Merge(FinancialDelta{CashCents: 50})
	require.NotNil(t, d.SimHour)
	assert.Equal(t, 9, *d.SimHour)
	require.NotNil(t, d.Employees)
}

func TestFinancialDeltaMergeIntoEmpty(t *testing.T) {
	var d FinancialDelta
	d.Merge(FinancialDelta{Inventory: map[string]int{"flour": 5}})

	assert.Equal(t, map[string]int{"flour": 5}, d.Inventory)
}
