package overview

import (
	"strings"
	"testing"
	"time"

	"github.com/carlmjohnson/be"

	"github.com/Rshep3087/finpal/ledger"
)

func TestGoalTree_GroupsByCategory(t *testing.T) {
	m := New()
	m.SetGoals([]ledger.Goal{
		{Name: "Emergency Fund", Category: "Savings", TargetAmount: 1000, CurrentAmount: 500},
		{Name: "Vacation", Category: "travel", TargetAmount: 3000, CurrentAmount: 1250},
		{Name: "Hidden", Category: "Savings", TargetAmount: 10, CurrentAmount: 1},
	})

	treeString := m.goalTree.String()
	be.In(t, "Emergency Fund", treeString)
	be.In(t, "$500.00 / $1,000.00 (50%)", treeString)
	be.In(t, "Travel", treeString)
	be.In(t, "42%", treeString)
	be.NotIn(t, "Hidden", treeString)
}

func TestGoalTree_Empty(t *testing.T) {
	m := New()
	m.SetGoals(nil)

	treeString := m.goalTree.String()
	be.In(t, "Goals", treeString)
	be.In(t, "No goals yet", treeString)
}

func TestSpendingBreakdown(t *testing.T) {
	m := New()
	monthly := []ledger.Transaction{
		{Category: "Dining", Amount: 25, Type: ledger.Expense},
		{Category: "Groceries", Amount: 75, Type: ledger.Expense},
		{Category: "Salary", Amount: 3000, Type: ledger.Income},
	}
	m.SetTransactions(monthly, monthly)

	rows := m.SpendingBreakdown()
	be.Equal(t, 2, len(rows))
	be.Equal(t, "Groceries", rows[0][0])
	be.Equal(t, "$75.00", rows[0][1])
	be.Equal(t, "75.00%", rows[0][2])
	be.Equal(t, "25.00%", rows[1][2])
}

func TestBar(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{0, "░░░░░░░░░░"},
		{50, "█████░░░░░"},
		{100, "██████████"},
		{150, "██████████"},
		{-5, "░░░░░░░░░░"},
	}

	for _, tt := range tests {
		be.Equal(t, tt.want, Bar(tt.pct, 10))
	}
}

func TestViewShowsSummary(t *testing.T) {
	m := New(WithSummary(ledger.Summary{TotalSpent: 120, TotalIncome: 500, NetAmount: 380, BudgetUsedPercentage: 40}))
	m.SetSize(200, 60)
	m.SetTransactions([]ledger.Transaction{
		{Date: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), Description: "Lunch", Category: "Dining", Amount: 12, Type: ledger.Expense},
	}, nil)

	view := m.View()
	be.True(t, strings.Contains(view, "$380.00"))
	be.True(t, strings.Contains(view, "40%"))
	be.True(t, strings.Contains(view, "Lunch"))
}
