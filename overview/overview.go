package overview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Rshep3087/finpal/format"
	"github.com/Rshep3087/finpal/ledger"
)

var titleCaser = cases.Title(language.English)

const (
	recentTransactionCount = 5
	dashboardGoalCount     = 2
	usageBarWidth          = 30
)

// Model defines the state for the dashboard widget.
type Model struct {
	Styles       Styles
	Viewport     viewport.Model
	summary      ledger.Summary
	transactions []ledger.Transaction
	goals        []ledger.Goal
	breakdown    []ledger.CategoryTotal
	goalTree     *tree.Tree
}

type Styles struct {
	IncomeStyle   lipgloss.Style
	SpentStyle    lipgloss.Style
	WarningStyle  lipgloss.Style
	TreeRootStyle lipgloss.Style
	CategoryStyle lipgloss.Style
	GoalStyle     lipgloss.Style
	SummaryStyle  lipgloss.Style
	MutedStyle    lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		IncomeStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#2A9D8F")),
		SpentStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#E76F51")),
		WarningStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#E9C46A")),
		TreeRootStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")),
		CategoryStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#bbbbbb")),
		GoalStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("#84A98C")),
		MutedStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")),

		SummaryStyle: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
	}
}

type Option func(*Model)

func WithSummary(s ledger.Summary) Option {
	return func(m *Model) {
		m.summary = s
	}
}

func New(opts ...Option) Model {
	m := Model{
		Styles:   defaultStyles(),
		Viewport: viewport.New(0, 20),
		goalTree: tree.New(),
	}

	for _, opt := range opts {
		opt(&m)
	}

	m.updateGoalTree()
	m.UpdateViewport()

	return m
}

// SetSummary sets the monthly summary shown at the top of the dashboard.
func (m *Model) SetSummary(s ledger.Summary) {
	m.summary = s
	m.UpdateViewport()
}

// SetTransactions sets the transactions used for recent activity. The
// spending breakdown covers only those dated in now's month.
func (m *Model) SetTransactions(transactions []ledger.Transaction, monthly []ledger.Transaction) {
	m.transactions = transactions
	m.breakdown = ledger.SortedCategoryTotals(monthly)
	m.UpdateViewport()
}

func (m *Model) SetGoals(goals []ledger.Goal) {
	m.goals = goals
	m.updateGoalTree()
	m.UpdateViewport()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.Viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.Viewport.Width = width
	m.Viewport.Height = height
}

func (m *Model) UpdateViewport() {
	goals := m.Styles.SummaryStyle.Render(
		lipgloss.JoinVertical(lipgloss.Top,
			lipgloss.NewStyle().Bold(true).Render("Your Goals"),
			m.goalTree.String(),
		),
	)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.summaryView(),
		m.balanceView(),
		goals,
	)

	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.recentActivityView(),
		m.spendingBreakdownView(),
	)

	m.Viewport.SetContent(
		lipgloss.JoinVertical(lipgloss.Top,
			"Let's manage your money",
			topRow,
			bottomRow,
		),
	)
}

// UsageStyle picks the color for a budget usage percentage.
func (m Model) UsageStyle(pct float64) lipgloss.Style {
	switch {
	case pct < 70:
		return m.Styles.IncomeStyle
	case pct < 90:
		return m.Styles.WarningStyle
	default:
		return m.Styles.SpentStyle
	}
}

// Bar renders a horizontal bar filled to pct percent of width.
func Bar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (m Model) summaryView() string {
	var b strings.Builder

	pct := m.summary.BudgetUsedPercentage

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Monthly Overview") + "\n\n")
	fmt.Fprintf(&b, "Spent: %s\n", m.Styles.SpentStyle.Render(format.Currency(m.summary.TotalSpent)))
	fmt.Fprintf(&b, "Income: %s\n\n", m.Styles.IncomeStyle.Render(format.Currency(m.summary.TotalIncome)))
	fmt.Fprintf(&b, "Budget Usage %s\n", format.Percentage(pct))
	b.WriteString(m.UsageStyle(pct).Render(Bar(pct, usageBarWidth)))

	return m.Styles.SummaryStyle.Render(b.String())
}

func (m Model) balanceView() string {
	var b strings.Builder

	net := m.Styles.IncomeStyle
	if m.summary.NetAmount < 0 {
		net = m.Styles.SpentStyle
	}

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Balance Overview") + "\n\n")
	fmt.Fprintf(&b, "Total Balance: %s\n", net.Render(format.Currency(m.summary.NetAmount)))
	fmt.Fprintf(&b, "Monthly Spending: %s\n", m.Styles.SpentStyle.Render(format.Currency(m.summary.TotalSpent)))
	fmt.Fprintf(&b, "Transactions: %d", m.summary.TransactionCount)

	return m.Styles.SummaryStyle.Render(b.String())
}

func (m Model) recentActivityView() string {
	var rows []table.Row
	for _, t := range m.transactions[:min(recentTransactionCount, len(m.transactions))] {
		amount := format.Currency(t.Amount)
		if t.Type == ledger.Expense {
			amount = "-" + amount
		}
		rows = append(rows, table.Row{format.Date(t.Date), t.Description, t.Category, amount})
	}

	return m.Styles.SummaryStyle.Render(
		lipgloss.JoinVertical(lipgloss.Top,
			lipgloss.NewStyle().Bold(true).Render("Recent Activity"),
			table.New(
				table.WithColumns([]table.Column{
					{Title: "Date", Width: 8},
					{Title: "Description", Width: 28},
					{Title: "Category", Width: 15},
					{Title: "Amount", Width: 12},
				}),
				table.WithRows(rows),
				table.WithHeight(recentTransactionCount+1),
			).View(),
		),
	)
}

// SpendingBreakdown returns the category rows with their share of the
// month's spending.
func (m Model) SpendingBreakdown() []table.Row {
	var total float64
	for _, c := range m.breakdown {
		total += c.Amount
	}

	rows := make([]table.Row, 0, len(m.breakdown))
	for _, c := range m.breakdown {
		var pct float64
		if total > 0 {
			pct = c.Amount / total * 100
		}
		rows = append(rows, table.Row{c.Category, format.Currency(c.Amount), fmt.Sprintf("%.2f%%", pct)})
	}
	return rows
}

func (m Model) spendingBreakdownView() string {
	return m.Styles.SummaryStyle.Render(
		lipgloss.JoinVertical(lipgloss.Top,
			lipgloss.NewStyle().Bold(true).Render("Spending Breakdown"),
			table.New(
				table.WithColumns([]table.Column{
					{Title: "Category", Width: 20},
					{Title: "Total Spent", Width: 15},
					{Title: "% of Total", Width: 10},
				}),
				table.WithRows(m.SpendingBreakdown()),
			).View(),
		),
	)
}

func (m *Model) updateGoalTree() {
	m.goalTree = tree.New().Root(m.Styles.TreeRootStyle.Render("Goals"))

	shown := m.goals[:min(dashboardGoalCount, len(m.goals))]
	if len(shown) == 0 {
		m.goalTree.Child(m.Styles.MutedStyle.Render("No goals yet"))
		return
	}

	// group the goals by category, keeping first-seen order
	var order []string
	byCategory := make(map[string][]ledger.Goal)
	for _, g := range shown {
		if _, ok := byCategory[g.Category]; !ok {
			order = append(order, g.Category)
		}
		byCategory[g.Category] = append(byCategory[g.Category], g)
	}

	for _, category := range order {
		categoryTree := tree.New().Root(m.Styles.CategoryStyle.Render(titleCaser.String(category)))
		for _, g := range byCategory[category] {
			text := fmt.Sprintf("%s %s / %s (%s)",
				g.Name,
				format.Currency(g.CurrentAmount),
				format.Currency(g.TargetAmount),
				format.Percentage(g.Progress()),
			)
			categoryTree.Child(m.Styles.GoalStyle.Render(text))
		}
		m.goalTree.Child(categoryTree)
	}
}
