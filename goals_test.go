package main

import (
	"strings"
	"testing"
	"time"

	"github.com/carlmjohnson/be"

	"github.com/Rshep3087/finpal/ledger"
)

func TestGoalItemDescription(t *testing.T) {
	deadline := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

	item := goalItem{g: ledger.Goal{Name: "Vacation", TargetAmount: 1000, CurrentAmount: 400, Deadline: &deadline}}
	desc := item.Description()
	be.True(t, strings.HasPrefix(desc, "$400.00 / $1,000.00 "))
	be.In(t, "40%", desc)
	be.True(t, strings.HasSuffix(desc, "| due Sep 1"))
	be.Equal(t, "Vacation", item.Title())
	be.Equal(t, "Vacation", item.FilterValue())

	// an overshoot keeps the amount but caps the bar
	item = goalItem{g: ledger.Goal{TargetAmount: 100, CurrentAmount: 150}}
	desc = item.Description()
	be.In(t, "$150.00 / $100.00", desc)
	be.In(t, "100%", desc)
	be.NotIn(t, "due", desc)
}

func TestGoalFormValues(t *testing.T) {
	tests := []struct {
		name         string
		values       goalFormValues
		ok           bool
		target       float64
		wantDeadline bool
	}{
		{
			name:         "complete",
			values:       goalFormValues{name: " Car ", target: "$5,000", deadline: "2026-01-31", color: "#4CAF50"},
			ok:           true,
			target:       5000,
			wantDeadline: true,
		},
		{
			name:   "bad deadline is ignored",
			values: goalFormValues{name: "Car", target: "5000", deadline: "soon"},
			ok:     true,
			target: 5000,
		},
		{name: "missing name", values: goalFormValues{name: "  ", target: "10"}},
		{name: "bad target", values: goalFormValues{name: "Car", target: "lots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ok := tt.values.goal(time.UTC)
			be.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			be.Equal(t, "Car", g.Name)
			be.Equal(t, tt.target, g.TargetAmount)
			be.Equal(t, 0.0, g.CurrentAmount)
			be.Equal(t, ledger.SavingsCategory, g.Category)
			be.Equal(t, tt.wantDeadline, g.Deadline != nil)
		})
	}
}

func TestBudgetItemDescription(t *testing.T) {
	tests := []struct {
		name     string
		budget   ledger.Budget
		expected string
	}{
		{
			name:     "partly spent",
			budget:   ledger.Budget{Category: "Food", Amount: 500, Spent: 120, Period: ledger.Monthly},
			expected: "Budget: $500.00 monthly | Spent: $120.00 | Used: 24%",
		},
		{
			name:     "zero budget",
			budget:   ledger.Budget{Category: "Misc", Amount: 0, Spent: 20, Period: ledger.Monthly},
			expected: "Budget: $0.00 monthly | Spent: $20.00 | Used: 0%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := budgetItem{b: tt.budget}
			be.Equal(t, tt.expected, item.Description())
			be.Equal(t, tt.budget.Category, item.Title())
		})
	}
}
