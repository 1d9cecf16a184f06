package ledger

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// CategoryTotal is the expense total for one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// CategoryTotals sums expenses by category. Transactions without a category
// are counted as UncategorizedCategory.
func CategoryTotals(transactions []Transaction) map[string]float64 {
	totals := make(map[string]float64)
	for _, t := range transactions {
		if t.Type != Expense {
			continue
		}
		category := t.Category
		if category == "" {
			category = UncategorizedCategory
		}
		totals[category] += t.Amount
	}
	return totals
}

// SortedCategoryTotals returns the expense totals, largest first. Ties are
// broken by category name.
func SortedCategoryTotals(transactions []Transaction) []CategoryTotal {
	totals := CategoryTotals(transactions)
	out := make([]CategoryTotal, 0, len(totals))
	for category, amount := range totals {
		out = append(out, CategoryTotal{Category: category, Amount: amount})
	}
	slices.SortFunc(out, func(a, b CategoryTotal) int {
		if c := cmp.Compare(b.Amount, a.Amount); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return out
}

// BudgetUsage is a budget paired with spending derived from transactions.
type BudgetUsage struct {
	Budget     Budget  `json:"budget"`
	Spent      float64 `json:"spent"`
	Percentage float64 `json:"percentage"`
}

// LiveBudgetUsage derives each budget's spending from category totals,
// leaving the recorded Budget.Spent untouched.
func LiveBudgetUsage(budgets []Budget, totals map[string]float64) []BudgetUsage {
	out := make([]BudgetUsage, 0, len(budgets))
	for _, b := range budgets {
		spent := totals[b.Category]
		var pct float64
		if b.Amount > 0 {
			pct = clampPercentage(spent / b.Amount * 100)
		}
		out = append(out, BudgetUsage{Budget: b, Spent: spent, Percentage: pct})
	}
	return out
}

// MonthTotal holds the income and expense sums for one month.
type MonthTotal struct {
	Month   time.Month `json:"month"`
	Income  float64    `json:"income"`
	Expense float64    `json:"expense"`
}

// MonthlySeries returns a MonthTotal for every month of now's year from
// January up to and including now's month.
func MonthlySeries(transactions []Transaction, now time.Time) []MonthTotal {
	series := make([]MonthTotal, now.Month())
	for i := range series {
		series[i].Month = time.Month(i + 1)
	}

	for _, t := range transactions {
		d := t.Date.In(now.Location())
		if d.Year() != now.Year() || d.Month() > now.Month() {
			continue
		}
		switch t.Type {
		case Income:
			series[d.Month()-1].Income += t.Amount
		case Expense:
			series[d.Month()-1].Expense += t.Amount
		}
	}

	return series
}

// TimeRange limits transactions by age.
type TimeRange string

const (
	AllTime     TimeRange = "all"
	PastWeek    TimeRange = "week"
	PastMonth   TimeRange = "month"
	PastQuarter TimeRange = "quarter"
)

// Days returns the maximum age in days for the range, or -1 for no limit.
func (r TimeRange) Days() int {
	switch r {
	case PastWeek:
		return 7
	case PastMonth:
		return 30
	case PastQuarter:
		return 90
	}
	return -1
}

// AllCategories matches every category in a Filter.
const AllCategories = "all"

// Filter selects transactions for the transactions list.
type Filter struct {
	Search   string
	Category string
	Range    TimeRange
}

// FilterTransactions returns the transactions matching f. Search is a
// case-insensitive substring match against description, category and
// location.
func FilterTransactions(transactions []Transaction, f Filter, now time.Time) []Transaction {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	maxDays := f.Range.Days()

	var out []Transaction
	for _, t := range transactions {
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Description), search) &&
			!strings.Contains(strings.ToLower(t.Category), search) &&
			!strings.Contains(strings.ToLower(t.Location), search) {
			continue
		}

		if f.Category != "" && f.Category != AllCategories && t.Category != f.Category {
			continue
		}

		if maxDays >= 0 && int(now.Sub(t.Date).Hours()/24) > maxDays {
			continue
		}

		out = append(out, t)
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func Categories(transactions []Transaction) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range transactions {
		if t.Category == "" || seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		out = append(out, t.Category)
	}
	return out
}
