package main

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/Rshep3087/finpal/ledger"
)

// transactionForm holds the values bound to the manual entry form.
type transactionForm struct {
	amount        string
	description   string
	category      string
	kind          ledger.TransactionType
	date          string
	paymentMethod string
	location      string
}

func newTransactionForm(now time.Time) *transactionForm {
	return &transactionForm{
		category: ledger.UncategorizedCategory,
		kind:     ledger.Expense,
		date:     now.Format(time.DateOnly),
	}
}

// transaction converts the form values. Invalid input reports false and
// the submission is dropped.
func (f *transactionForm) transaction(loc *time.Location, now time.Time) (ledger.Transaction, bool) {
	amount, err := ledger.ParseAmount(f.amount)
	if err != nil {
		return ledger.Transaction{}, false
	}

	date := now
	if d, err := ledger.ParseDate(f.date, loc); err == nil && !d.IsZero() {
		date = d
	}

	t := newTransaction(amount, strings.TrimSpace(f.description), f.category, f.kind, date)
	t.PaymentMethod = strings.TrimSpace(f.paymentMethod)
	t.Location = strings.TrimSpace(f.location)
	return t, true
}

func newInsertTransactionForm(values *transactionForm) *huh.Form {
	categoryOpts := []huh.Option[string]{huh.NewOption(ledger.UncategorizedCategory, ledger.UncategorizedCategory)}
	for _, c := range ledger.EntryCategories {
		categoryOpts = append(categoryOpts, huh.NewOption(c, c))
	}

	typeOpts := []huh.Option[ledger.TransactionType]{
		huh.NewOption("Expense", ledger.Expense),
		huh.NewOption("Income", ledger.Income),
		huh.NewOption("Transfer", ledger.Transfer),
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Description("How much, e.g. 12.50").
				Key("amount").
				Placeholder("0.00").
				Value(&values.amount),

			huh.NewInput().
				Title("Description").
				Description("What was it for?").
				Key("description").
				Placeholder("Lunch with friends...").
				Value(&values.description),

			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD, defaults to today").
				Key("date").
				Value(&values.date),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOpts...).
				Key("category").
				Value(&values.category),

			huh.NewSelect[ledger.TransactionType]().
				Title("Type").
				Options(typeOpts...).
				Key("type").
				Value(&values.kind),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Payment Method (Optional)").
				Key("paymentMethod").
				Placeholder("Credit Card").
				Value(&values.paymentMethod),

			huh.NewInput().
				Title("Location (Optional)").
				Key("location").
				Placeholder("Where was this?").
				Value(&values.location),
		),
	)
}

func (m *model) openInsertTransaction() tea.Cmd {
	m.insertValues = newTransactionForm(m.store.Now())
	m.insertTransactionForm = newInsertTransactionForm(m.insertValues)
	m.switchTo(insertTransaction)
	return tea.Batch(m.insertTransactionForm.Init(), tea.WindowSize())
}

func updateInsertTransaction(msg tea.Msg, m *model) tea.Cmd {
	form, cmd := m.insertTransactionForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.insertTransactionForm = f
	}

	switch m.insertTransactionForm.State {
	case huh.StateCompleted:
		now := m.store.Now()
		t, ok := m.insertValues.transaction(now.Location(), now)
		m.sessionState = overviewState
		if !ok {
			log.Debug("dropping manual entry with invalid amount", "amount", m.insertValues.amount)
			return m.refresh()
		}
		return tea.Batch(m.refresh(), m.addTransaction(t))

	case huh.StateAborted:
		m.sessionState = overviewState
		return nil
	}

	return cmd
}

// addTransaction saves t and reports back with a ledgerChangedMsg.
func (m *model) addTransaction(t ledger.Transaction) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		saved := store.AddTransaction(ctx, t)
		log.Debug("transaction added", "id", saved.ID, "amount", saved.Amount)
		return ledgerChangedMsg{}
	}
}

func insertTransactionView(m model) string {
	return m.insertTransactionForm.View()
}
