// Package ledger owns the transactions, budgets and savings goals of a
// finpal user and derives the monthly summary from them.
package ledger

import (
	"errors"
	"time"
)

// TransactionType classifies a money movement.
type TransactionType string

const (
	Income   TransactionType = "income"
	Expense  TransactionType = "expense"
	Transfer TransactionType = "transfer"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case Income, Expense, Transfer:
		return true
	}
	return false
}

// BudgetPeriod is the window a budget cap applies to.
type BudgetPeriod string

const (
	Weekly  BudgetPeriod = "weekly"
	Monthly BudgetPeriod = "monthly"
	Yearly  BudgetPeriod = "yearly"
)

// Theme is the persisted appearance preference.
type Theme string

const (
	LightTheme  Theme = "light"
	DarkTheme   Theme = "dark"
	SystemTheme Theme = "system"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	switch t {
	case LightTheme, DarkTheme, SystemTheme:
		return true
	}
	return false
}

// UncategorizedCategory is used when no category could be determined.
const UncategorizedCategory = "Uncategorized"

// ErrInvalidAmount is returned when user input cannot be read as an amount.
var ErrInvalidAmount = errors.New("invalid amount")

// Transaction is a single dated money movement.
type Transaction struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Amount        float64         `json:"amount"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Type          TransactionType `json:"type"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	Location      string          `json:"location,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
}

// Budget is a spending cap for one category.
//
// Spent is a recorded snapshot. It is not recomputed from transactions;
// see LiveBudgetUsage for the derived figure.
type Budget struct {
	ID         string       `json:"id"`
	CategoryID string       `json:"categoryId"`
	Category   string       `json:"category"`
	Amount     float64      `json:"amount"`
	Spent      float64      `json:"spent"`
	Period     BudgetPeriod `json:"period"`
	Color      string       `json:"color"`
}

// Goal is a named savings target.
type Goal struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	TargetAmount  float64    `json:"targetAmount"`
	CurrentAmount float64    `json:"currentAmount"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Category      string     `json:"category"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastUpdated   *time.Time `json:"lastUpdated,omitempty"`
	Color         string     `json:"color"`
}

// Progress returns the completion percentage clamped to [0, 100].
// CurrentAmount itself is never capped.
func (g Goal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return clampPercentage(g.CurrentAmount / g.TargetAmount * 100)
}

// Summary is the derived aggregate for the current calendar month.
type Summary struct {
	TotalSpent           float64 `json:"totalSpent"`
	TotalIncome          float64 `json:"totalIncome"`
	NetAmount            float64 `json:"netAmount"`
	BudgetUsedPercentage float64 `json:"budgetUsedPercentage"`
	TransactionCount     int     `json:"transactionCount"`
}
