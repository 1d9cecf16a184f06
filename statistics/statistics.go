// Package statistics reports a month of spending: income and expense
// totals, expenses by category, live budget usage and the yearly trend.
package statistics

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rshep3087/finpal/format"
	"github.com/Rshep3087/finpal/ledger"
)

// Report is the statistics for one calendar month.
type Report struct {
	Year       int                    `json:"year"`
	Month      time.Month             `json:"month"`
	Income     float64                `json:"income"`
	Expenses   float64                `json:"expenses"`
	Categories []ledger.CategoryTotal `json:"categories"`
	Budgets    []ledger.BudgetUsage   `json:"budgets"`
	Trend      []ledger.MonthTotal    `json:"trend"`
}

// Compute builds the report for year/month. The trend always covers
// January through now's month of now's year.
func Compute(transactions []ledger.Transaction, budgets []ledger.Budget, year int, month time.Month, now time.Time) Report {
	monthly := ledger.MonthTransactions(transactions, year, month, now.Location())

	r := Report{
		Year:       year,
		Month:      month,
		Categories: ledger.SortedCategoryTotals(monthly),
		Budgets:    ledger.LiveBudgetUsage(budgets, ledger.CategoryTotals(monthly)),
		Trend:      ledger.MonthlySeries(transactions, now),
	}

	for _, t := range monthly {
		switch t.Type {
		case ledger.Income:
			r.Income += t.Amount
		case ledger.Expense:
			r.Expenses += t.Amount
		}
	}

	return r
}

// Title returns the month heading, e.g. "March 2025".
func (r Report) Title() string {
	return fmt.Sprintf("%s %d", r.Month, r.Year)
}

// ParseMonth reads a YYYY-MM month. An empty value selects now's month.
func ParseMonth(s string, now time.Time) (int, time.Month, error) {
	if s == "" {
		return now.Year(), now.Month(), nil
	}
	t, err := time.ParseInLocation("2006-01", s, now.Location())
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", s, err)
	}
	return t.Year(), t.Month(), nil
}

type Colors struct {
	Primary string
	Income  string
	Expense string
}

// Tab selects which half of the statistics screen is shown.
type Tab int

const (
	CategoriesTab Tab = iota
	TrendsTab
)

const barWidth = 20

type Model struct {
	colors     Colors
	year       int
	month      time.Month
	now        time.Time
	tab        Tab
	report     Report
	categories table.Model
	budgets    table.Model
	trend      table.Model

	transactions []ledger.Transaction
	budgetList   []ledger.Budget
}

func newTable(colors Colors, columns []table.Column) table.Model {
	t := table.New(table.WithColumns(columns))

	tableStyle := table.DefaultStyles()
	tableStyle.Selected = tableStyle.Selected.
		Foreground(lipgloss.Color(colors.Primary))

	t.SetStyles(tableStyle)
	return t
}

func New(colors Colors) Model {
	return Model{
		colors: colors,
		categories: newTable(colors, []table.Column{
			{Title: "Category", Width: 20},
			{Title: "Spent", Width: 12},
			{Title: "", Width: barWidth},
		}),
		budgets: newTable(colors, []table.Column{
			{Title: "Budget", Width: 20},
			{Title: "Spent", Width: 12},
			{Title: "Cap", Width: 12},
			{Title: "Used", Width: 6},
		}),
		trend: newTable(colors, []table.Column{
			{Title: "Month", Width: 10},
			{Title: "Income", Width: 12},
			{Title: "Expenses", Width: 12},
			{Title: "", Width: barWidth},
		}),
	}
}

func (m *Model) SetFocus(focus bool) {
	if focus {
		m.categories.Focus()
		m.trend.Focus()
	} else {
		m.categories.Blur()
		m.trend.Blur()
	}
}

func (m *Model) SetSize(width, height int) {
	half := max(height/2-2, 3)
	m.categories.SetHeight(half)
	m.budgets.SetHeight(half)
	m.trend.SetHeight(height - 4)
	m.categories.SetWidth(width)
	m.budgets.SetWidth(width)
	m.trend.SetWidth(width)
}

// SetData replaces the ledger data. The first call selects now's month.
func (m *Model) SetData(transactions []ledger.Transaction, budgets []ledger.Budget, now time.Time) {
	m.transactions = transactions
	m.budgetList = budgets
	m.now = now
	if m.year == 0 {
		m.year, m.month = now.Year(), now.Month()
	}
	m.refresh()
}

// Selected returns the month being shown.
func (m Model) Selected() (int, time.Month) {
	return m.year, m.month
}

func (m Model) Report() Report {
	return m.report
}

// PreviousMonth moves the selection back one month.
func (m *Model) PreviousMonth() {
	d := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	m.year, m.month = d.Year(), d.Month()
	m.refresh()
}

// NextMonth moves the selection forward one month, but never past the
// current month. It reports whether the selection changed.
func (m *Model) NextMonth() bool {
	if m.year > m.now.Year() || (m.year == m.now.Year() && m.month >= m.now.Month()) {
		return false
	}
	d := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	m.year, m.month = d.Year(), d.Month()
	m.refresh()
	return true
}

// ToggleTab switches between the category and trend tabs.
func (m *Model) ToggleTab() {
	if m.tab == CategoriesTab {
		m.tab = TrendsTab
	} else {
		m.tab = CategoriesTab
	}
}

func (m Model) Tab() Tab {
	return m.tab
}

func bar(v, peak float64) string {
	if peak <= 0 {
		return ""
	}
	n := max(0, min(barWidth, int(v/peak*barWidth)))
	return strings.Repeat("█", n)
}

func (m *Model) refresh() {
	if m.now.IsZero() {
		return
	}

	m.report = Compute(m.transactions, m.budgetList, m.year, m.month, m.now)

	var peak float64
	if len(m.report.Categories) > 0 {
		peak = m.report.Categories[0].Amount
	}
	categoryRows := make([]table.Row, 0, len(m.report.Categories))
	for _, c := range m.report.Categories {
		categoryRows = append(categoryRows, table.Row{c.Category, format.Currency(c.Amount), bar(c.Amount, peak)})
	}
	m.categories.SetRows(categoryRows)

	budgetRows := make([]table.Row, 0, len(m.report.Budgets))
	for _, b := range m.report.Budgets {
		budgetRows = append(budgetRows, table.Row{
			b.Budget.Category,
			format.Currency(b.Spent),
			format.Currency(b.Budget.Amount),
			format.Percentage(b.Percentage),
		})
	}
	m.budgets.SetRows(budgetRows)

	var trendPeak float64
	for _, t := range m.report.Trend {
		trendPeak = max(trendPeak, t.Income, t.Expense)
	}
	trendRows := make([]table.Row, 0, len(m.report.Trend))
	for _, t := range m.report.Trend {
		trendRows = append(trendRows, table.Row{
			t.Month.String()[:3],
			format.CompactNumber(t.Income),
			format.CompactNumber(t.Expense),
			bar(t.Expense, trendPeak),
		})
	}
	m.trend.SetRows(trendRows)
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.tab == TrendsTab {
		m.trend, cmd = m.trend.Update(msg)
	} else {
		m.categories, cmd = m.categories.Update(msg)
	}
	return *m, cmd
}

func (m *Model) View() string {
	income := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Income))
	expense := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Expense))
	bold := lipgloss.NewStyle().Bold(true)

	header := lipgloss.JoinVertical(lipgloss.Left,
		bold.Render(fmt.Sprintf("‹ %s ›", m.report.Title())),
		fmt.Sprintf("Income: %s   Expenses: %s",
			income.Render(format.Currency(m.report.Income)),
			expense.Render(format.Currency(m.report.Expenses)),
		),
		"",
	)

	if m.tab == TrendsTab {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			bold.Render("Monthly Trend"),
			m.trend.View(),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		bold.Render("Expenses by Category"),
		m.categories.View(),
		"",
		bold.Render("Budget Usage"),
		m.budgets.View(),
	)
}
