package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/Rshep3087/finpal/format"
	"github.com/Rshep3087/finpal/ledger"
)

type budgetItem struct {
	b ledger.Budget
}

func (b budgetItem) Title() string {
	return b.b.Category
}

// Description shows the recorded snapshot, e.g.
// "Budget: $500.00 monthly | Spent: $120.00 | Used: 24%".
func (b budgetItem) Description() string {
	var pct float64
	if b.b.Amount > 0 {
		pct = b.b.Spent / b.b.Amount * 100
	}
	return fmt.Sprintf("Budget: %s %s | Spent: %s | Used: %s",
		format.Currency(b.b.Amount),
		b.b.Period,
		format.Currency(b.b.Spent),
		format.Percentage(pct),
	)
}

func (b budgetItem) FilterValue() string {
	return b.b.Category
}

type budgetListKeyMap struct {
	edit key.Binding
}

func newBudgetListKeyMap() budgetListKeyMap {
	return budgetListKeyMap{
		edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit amount"),
		),
	}
}

func createBudgetList(delegate list.DefaultDelegate, keys budgetListKeyMap) list.Model {
	budgetList := list.New([]list.Item{}, delegate, 0, 0)
	budgetList.SetShowTitle(false)
	budgetList.SetFilteringEnabled(false)
	budgetList.StatusMessageLifetime = notificationLifetime
	budgetList.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.edit}
	}
	return budgetList
}

func (m *model) refreshBudgets() tea.Cmd {
	bs := m.store.Budgets()
	items := make([]list.Item, len(bs))
	for i, b := range bs {
		items[i] = budgetItem{b: b}
	}
	return m.budgets.SetItems(items)
}

func newBudgetForm(category string, amount *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("%s budget", category)).
				Description("New spending cap").
				Key("amount").
				Value(amount),
		),
	)
}

func updateBudgets(msg tea.Msg, m *model) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.budgetKeys.edit) {
		item, ok := m.budgets.SelectedItem().(budgetItem)
		if !ok {
			return nil
		}

		m.editingBudget = item.b
		amount := fmt.Sprintf("%.2f", item.b.Amount)
		m.budgetForm = newBudgetForm(item.b.Category, &amount)
		m.switchTo(editBudget)
		return tea.Batch(m.budgetForm.Init(), tea.WindowSize())
	}

	var cmd tea.Cmd
	m.budgets, cmd = m.budgets.Update(msg)
	return cmd
}

func updateEditBudget(msg tea.Msg, m *model) tea.Cmd {
	form, cmd := m.budgetForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.budgetForm = f
	}

	switch m.budgetForm.State {
	case huh.StateCompleted:
		m.sessionState = budgets
		amount, err := ledger.ParseAmount(m.budgetForm.GetString("amount"))
		if err != nil {
			log.Debug("dropping budget edit", "error", err)
			return nil
		}
		return m.updateBudget(m.editingBudget.CategoryID, amount)

	case huh.StateAborted:
		m.sessionState = budgets
		return nil
	}

	return cmd
}

func (m *model) updateBudget(categoryID string, amount float64) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		if !store.UpdateBudget(ctx, categoryID, amount) {
			return notificationMsg{text: "Budget not found"}
		}
		return ledgerChangedMsg{notification: "Budget updated"}
	}
}

func budgetsView(m model) string {
	return m.budgets.View()
}
