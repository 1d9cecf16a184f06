package ledger

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"time"
)

// Categories used for sample data and keyword classification. The last two
// are income categories.
var DefaultCategories = []string{
	"Groceries",
	"Dining",
	"Entertainment",
	"Transportation",
	"Utilities",
	"Shopping",
	"Healthcare",
	"Housing",
	"Salary",
	"Investments",
}

// Palette holds the colors assigned to generated budgets and goals.
var Palette = []string{
	"#4CAF50",
	"#2196F3",
	"#9C27B0",
	"#FF9800",
	"#F44336",
	"#3F51B5",
	"#009688",
	"#FFC107",
}

var (
	// sampleDescriptions pairs with DefaultCategories by index.
	sampleDescriptions = []string{
		"Weekly grocery shopping",
		"Dinner with friends",
		"Movie tickets",
		"Uber ride",
		"Electricity bill",
		"New shoes",
		"Doctor's appointment",
		"Rent payment",
		"Monthly salary",
		"Dividend payment",
	}

	samplePaymentMethods = []string{"Credit Card", "Debit Card", "Cash", "Bank Transfer", "Mobile Payment"}

	sampleLocations = []string{"Walmart", "Amazon", "Target", "Whole Foods", "Trader Joe's", "Starbucks", "Office", "Home"}

	sampleGoalNames = []string{"Emergency Fund", "Vacation", "New Car", "Down Payment", "Education"}
)

const (
	sampleTransactionCount = 30
	sampleBudgetCount      = 8
	incomeCategoryStart    = 8
)

// GenerateTransactions returns 30 sample transactions dated within the 60
// days before now, newest first.
func GenerateTransactions(r *rand.Rand, now time.Time) []Transaction {
	transactions := make([]Transaction, 0, sampleTransactionCount)

	for i := range sampleTransactionCount {
		categoryIndex := r.IntN(len(DefaultCategories))
		category := DefaultCategories[categoryIndex]

		txType := Expense
		if categoryIndex >= incomeCategoryStart {
			txType = Income
		}

		daysAgo := r.IntN(60)

		transactions = append(transactions, Transaction{
			ID:            fmt.Sprintf("tx-%d-%d", i, now.UnixMilli()),
			Date:          now.AddDate(0, 0, -daysAgo),
			Amount:        math.Round(r.Float64()*200) + 5,
			Description:   sampleDescriptions[categoryIndex],
			Category:      category,
			Type:          txType,
			PaymentMethod: samplePaymentMethods[r.IntN(len(samplePaymentMethods))],
			Location:      sampleLocations[r.IntN(len(sampleLocations))],
			Tags:          []string{category, string(txType)},
		})
	}

	slices.SortStableFunc(transactions, func(a, b Transaction) int {
		return b.Date.Compare(a.Date)
	})

	return transactions
}

// GenerateBudgets returns one monthly budget for each expense category.
func GenerateBudgets(r *rand.Rand) []Budget {
	budgets := make([]Budget, 0, sampleBudgetCount)

	for i, category := range DefaultCategories[:sampleBudgetCount] {
		budgets = append(budgets, Budget{
			ID:         fmt.Sprintf("budget-%d", i),
			CategoryID: fmt.Sprintf("cat-%d", i),
			Category:   category,
			Amount:     math.Round(r.Float64()*500) + 100,
			Spent:      math.Round(r.Float64()*350) + 50,
			Period:     Monthly,
			Color:      Palette[i%len(Palette)],
		})
	}

	return budgets
}

// GenerateGoals returns the five sample savings goals, each with a deadline
// three to twelve months after now.
func GenerateGoals(r *rand.Rand, now time.Time) []Goal {
	goals := make([]Goal, 0, len(sampleGoalNames))

	for i, name := range sampleGoalNames {
		target := math.Round(r.Float64()*5000) + 1000
		deadline := now.AddDate(0, r.IntN(10)+3, 0)
		updated := now

		goals = append(goals, Goal{
			ID:            fmt.Sprintf("goal-%d", i),
			Name:          name,
			TargetAmount:  target,
			CurrentAmount: math.Round(r.Float64() * target * 0.8),
			Deadline:      &deadline,
			Category:      "Savings",
			CreatedAt:     now,
			LastUpdated:   &updated,
			Color:         Palette[i%len(Palette)],
		})
	}

	return goals
}
