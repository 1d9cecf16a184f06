package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rshep3087/finpal/format"
	"github.com/Rshep3087/finpal/ledger"
)

type transactionItem struct {
	t ledger.Transaction
}

func (t transactionItem) Title() string {
	return t.t.Description
}

// Description renders the second list line, e.g.
// "Mar 14 | Dining | -$40.00 | Credit Card | Downtown | dining,expense".
func (t transactionItem) Description() string {
	amount := format.Currency(t.t.Amount)
	if t.t.Type == ledger.Expense {
		amount = "-" + amount
	}

	parts := []string{format.Date(t.t.Date), t.t.Category, amount}
	if t.t.PaymentMethod != "" {
		parts = append(parts, t.t.PaymentMethod)
	}
	if t.t.Location != "" {
		parts = append(parts, t.t.Location)
	}
	if len(t.t.Tags) > 0 {
		parts = append(parts, strings.Join(t.t.Tags, ","))
	}

	return strings.Join(parts, " | ")
}

// FilterValue is matched by the list's search against description,
// category and location.
func (t transactionItem) FilterValue() string {
	return strings.Join([]string{t.t.Description, t.t.Category, t.t.Location}, " ")
}

// substringFilter is a list.FilterFunc doing case-insensitive substring
// matching instead of the default fuzzy matching.
func substringFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(strings.TrimSpace(term))

	var ranks []list.Rank
	for i, target := range targets {
		lower := strings.ToLower(target)
		idx := strings.Index(lower, term)
		if idx < 0 {
			continue
		}

		matched := make([]int, 0, len(term))
		for j := range len(term) {
			matched = append(matched, idx+j)
		}
		ranks = append(ranks, list.Rank{Index: i, MatchedIndexes: matched})
	}
	return ranks
}

func createTransactionList(delegate list.DefaultDelegate) list.Model {
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.SetShowTitle(false)
	l.Filter = substringFilter
	l.StatusMessageLifetime = notificationLifetime
	return l
}

// refreshTransactions reloads the list from the store through the
// category and time range filters.
func (m *model) refreshTransactions() tea.Cmd {
	filtered := ledger.FilterTransactions(m.store.Transactions(), m.filter, m.store.Now())

	items := make([]list.Item, len(filtered))
	for i, t := range filtered {
		items[i] = transactionItem{t: t}
	}
	return m.transactions.SetItems(items)
}

func updateTransactions(msg tea.Msg, m *model) tea.Cmd {
	var cmd tea.Cmd
	m.transactions, cmd = m.transactions.Update(msg)
	return cmd
}

func transactionsView(m model) string {
	category := m.filter.Category
	if category == "" {
		category = ledger.AllCategories
	}

	header := m.styles.mutedStyle.Render(fmt.Sprintf(
		"%d transactions | category: %s | range: %s",
		len(m.transactions.Items()),
		category,
		timeRangeLabel(m.filter.Range),
	))

	if len(m.transactions.Items()) == 0 {
		return header + "\n\n" + "No transactions found"
	}

	return header + "\n\n" + m.transactions.View()
}

// newTransaction fills in the defaults for a user-entered transaction.
func newTransaction(amount float64, description, category string, kind ledger.TransactionType, date time.Time) ledger.Transaction {
	if category == "" {
		category = ledger.UncategorizedCategory
	}
	if kind == "" {
		kind = ledger.Expense
	}
	return ledger.Transaction{
		Date:        date,
		Amount:      amount,
		Description: description,
		Category:    category,
		Type:        kind,
		Tags:        []string{category, string(kind)},
	}
}
