package ledger

import (
	"math"
	"time"
)

// Summarize computes the summary for the calendar month containing now,
// comparing dates in now's location.
//
// BudgetUsedPercentage is spending over the sum of every budget cap, not
// only the categories with spending this month.
func Summarize(transactions []Transaction, budgets []Budget, now time.Time) Summary {
	var s Summary

	for _, t := range MonthTransactions(transactions, now.Year(), now.Month(), now.Location()) {
		s.TransactionCount++

		switch t.Type {
		case Expense:
			s.TotalSpent += t.Amount
		case Income:
			s.TotalIncome += t.Amount
		}
	}

	s.NetAmount = s.TotalIncome - s.TotalSpent

	var totalBudget float64
	for _, b := range budgets {
		totalBudget += b.Amount
	}

	if totalBudget > 0 {
		s.BudgetUsedPercentage = clampPercentage(s.TotalSpent / totalBudget * 100)
	}

	return s
}

// MonthTransactions returns the transactions dated within year/month in loc.
func MonthTransactions(transactions []Transaction, year int, month time.Month, loc *time.Location) []Transaction {
	var out []Transaction
	for _, t := range transactions {
		d := t.Date.In(loc)
		if d.Year() == year && d.Month() == month {
			out = append(out, t)
		}
	}
	return out
}

func clampPercentage(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	return math.Min(p, 100)
}
