package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/Rshep3087/finpal/format"
	"github.com/Rshep3087/finpal/ledger"
	"github.com/Rshep3087/finpal/overview"
)

const goalBarWidth = 20

type goalItem struct {
	g ledger.Goal
}

func (g goalItem) Title() string {
	return g.g.Name
}

// Description renders saved/target, a progress bar and the deadline, e.g.
// "$400.00 / $1,000.00 ████████░░░░ 40% | due Sep 1".
func (g goalItem) Description() string {
	s := fmt.Sprintf("%s / %s %s %s",
		format.Currency(g.g.CurrentAmount),
		format.Currency(g.g.TargetAmount),
		overview.Bar(g.g.Progress(), goalBarWidth),
		format.Percentage(g.g.Progress()),
	)
	if g.g.Deadline != nil {
		s += " | due " + format.Date(*g.g.Deadline)
	}
	return s
}

func (g goalItem) FilterValue() string {
	return g.g.Name
}

type goalListKeyMap struct {
	add        key.Binding
	contribute key.Binding
}

func newGoalListKeyMap() goalListKeyMap {
	return goalListKeyMap{
		add: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new goal"),
		),
		contribute: key.NewBinding(
			key.WithKeys("+", "enter"),
			key.WithHelp("+", "add funds"),
		),
	}
}

func createGoalList(delegate list.DefaultDelegate, keys goalListKeyMap) list.Model {
	goalList := list.New([]list.Item{}, delegate, 0, 0)
	goalList.SetShowTitle(false)
	goalList.SetFilteringEnabled(false)
	goalList.StatusMessageLifetime = notificationLifetime
	goalList.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.add, keys.contribute}
	}
	return goalList
}

func (m *model) refreshGoals() tea.Cmd {
	gs := m.store.Goals()
	items := make([]list.Item, len(gs))
	for i, g := range gs {
		items[i] = goalItem{g: g}
	}
	return m.goals.SetItems(items)
}

// goalFormValues holds the values bound to the new goal form.
type goalFormValues struct {
	name     string
	target   string
	deadline string
	color    string
}

// goal converts the form values. A missing name or an invalid target
// reports false and the submission is dropped.
func (v *goalFormValues) goal(loc *time.Location) (ledger.Goal, bool) {
	name := strings.TrimSpace(v.name)
	if name == "" {
		return ledger.Goal{}, false
	}

	target, err := ledger.ParseAmount(v.target)
	if err != nil {
		return ledger.Goal{}, false
	}

	var deadline *time.Time
	if d, err := ledger.ParseDate(v.deadline, loc); err == nil && !d.IsZero() {
		deadline = &d
	}

	return ledger.NewGoal(name, target, deadline, v.color), true
}

func newGoalForm(values *goalFormValues) *huh.Form {
	colorOpts := make([]huh.Option[string], len(ledger.GoalColors))
	for i, c := range ledger.GoalColors {
		colorOpts[i] = huh.NewOption(c, c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal Name").
				Placeholder("e.g. New Laptop").
				Key("name").
				Value(&values.name),

			huh.NewInput().
				Title("Target Amount").
				Placeholder("1000").
				Key("target").
				Value(&values.target),

			huh.NewInput().
				Title("Target Date (Optional)").
				Description("YYYY-MM-DD").
				Key("deadline").
				Value(&values.deadline),

			huh.NewSelect[string]().
				Title("Color").
				Options(colorOpts...).
				Key("color").
				Value(&values.color),
		),
	)
}

func newContributeForm(goal ledger.Goal, amount *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Add to %s", goal.Name)).
				Description(fmt.Sprintf("%s of %s saved. Negative amounts withdraw.",
					format.Currency(goal.CurrentAmount), format.Currency(goal.TargetAmount))).
				Key("amount").
				Value(amount),
		),
	)
}

func updateGoals(msg tea.Msg, m *model) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.goalKeys.add):
			m.goalValues = &goalFormValues{color: ledger.GoalColors[0]}
			m.goalForm = newGoalForm(m.goalValues)
			m.switchTo(newGoal)
			return tea.Batch(m.goalForm.Init(), tea.WindowSize())

		case key.Matches(msg, m.goalKeys.contribute):
			item, ok := m.goals.SelectedItem().(goalItem)
			if !ok {
				return nil
			}
			m.contributingGoal = item.g
			var amount string
			m.contributeForm = newContributeForm(item.g, &amount)
			m.switchTo(contributeGoal)
			return tea.Batch(m.contributeForm.Init(), tea.WindowSize())
		}
	}

	var cmd tea.Cmd
	m.goals, cmd = m.goals.Update(msg)
	return cmd
}

func updateNewGoal(msg tea.Msg, m *model) tea.Cmd {
	form, cmd := m.goalForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.goalForm = f
	}

	switch m.goalForm.State {
	case huh.StateCompleted:
		m.sessionState = goals
		g, ok := m.goalValues.goal(m.store.Now().Location())
		if !ok {
			log.Debug("dropping goal with missing name or invalid target")
			return nil
		}

		store := m.store
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
			defer cancel()
			store.AddGoal(ctx, g)
			return ledgerChangedMsg{}
		}

	case huh.StateAborted:
		m.sessionState = goals
		return nil
	}

	return cmd
}

func updateContributeGoal(msg tea.Msg, m *model) tea.Cmd {
	form, cmd := m.contributeForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.contributeForm = f
	}

	switch m.contributeForm.State {
	case huh.StateCompleted:
		m.sessionState = goals
		amount, err := ledger.ParseAmount(m.contributeForm.GetString("amount"))
		if err != nil {
			log.Debug("dropping goal contribution", "error", err)
			return nil
		}

		store, id := m.store, m.contributingGoal.ID
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
			defer cancel()
			if !store.UpdateGoalProgress(ctx, id, amount) {
				return notificationMsg{text: "Goal not found"}
			}
			return ledgerChangedMsg{notification: fmt.Sprintf("Added %s to goal", format.Currency(amount))}
		}

	case huh.StateAborted:
		m.sessionState = goals
		return nil
	}

	return cmd
}

func goalsView(m model) string {
	if len(m.goals.Items()) == 0 {
		return m.styles.mutedStyle.Render("No goals yet. Press n to create one.")
	}
	return m.goals.View()
}
