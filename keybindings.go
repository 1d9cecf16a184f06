package main

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
)

type keyMap struct {
	overview      key.Binding
	transactions  key.Binding
	addManual     key.Binding
	addVoice      key.Binding
	addReceipt    key.Binding
	goals         key.Binding
	budgets       key.Binding
	statistics    key.Binding
	profile       key.Binding
	assistant     key.Binding
	nextMonth     key.Binding
	previousMonth key.Binding
	switchTab     key.Binding
	cycleRange    key.Binding
	cycleCategory key.Binding
	escape        key.Binding
	fullHelp      key.Binding
	quit          key.Binding
	forceQuit     key.Binding
}

func (km keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		km.overview,
		km.transactions,
		km.addManual,
		km.goals,
		km.budgets,
		km.statistics,
		km.assistant,
		km.quit,
		km.fullHelp,
	}
}

func (km keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			km.overview,
			km.transactions,
			km.goals,
			km.budgets,
			km.statistics,
			km.profile,
			km.assistant,
		},
		{
			km.addManual,
			km.addVoice,
			km.addReceipt,
		},
		{
			km.previousMonth,
			km.nextMonth,
			km.switchTab,
			km.cycleRange,
			km.cycleCategory,
		},
		{
			km.escape,
			km.quit,
			km.fullHelp,
		},
	}
}

func initializeKeyMap() keyMap {
	return keyMap{
		overview: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "overview"),
		),
		transactions: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "transactions"),
		),
		addManual: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add expense"),
		),
		addVoice: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "voice entry"),
		),
		addReceipt: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "scan receipt"),
		),
		goals: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "goals"),
		),
		budgets: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "budgets"),
		),
		statistics: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "statistics"),
		),
		profile: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "profile"),
		),
		assistant: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "assistant"),
		),
		nextMonth: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next month"),
		),
		previousMonth: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous month"),
		),
		switchTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "categories/trends"),
		),
		cycleRange: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "time range"),
		),
		cycleCategory: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "category filter"),
		),
		escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		fullHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// handleKeyPress runs the application-wide key bindings. It reports whether
// the key was consumed; unconsumed keys go to the active screen.
func handleKeyPress(msg tea.KeyMsg, m *model) (tea.Cmd, bool) {
	log.Debug("key pressed", "key", msg.String(), "state", m.sessionState)

	if cmd, ok := handleSpecialKeys(msg, m); ok {
		return cmd, true
	}

	if isInputBlocked(m) {
		return nil, false
	}

	if key.Matches(msg, m.keys.quit) {
		return tea.Quit, true
	}

	if cmd, ok := handleNavigationKeys(msg, m); ok {
		return cmd, true
	}

	return handleSessionStateKeys(msg, m)
}

func handleSpecialKeys(msg tea.KeyMsg, m *model) (tea.Cmd, bool) {
	if key.Matches(msg, m.keys.forceQuit) {
		return tea.Quit, true
	}

	if key.Matches(msg, m.keys.escape) {
		return handleEscape(msg, m), true
	}

	return nil, false
}

func formActive(f *huh.Form) bool {
	return f != nil && f.State == huh.StateNormal
}

// isInputBlocked reports whether a screen is taking free text, in which
// case letter keys must reach it instead of switching screens.
func isInputBlocked(m *model) bool {
	if m.sessionState == loading {
		return true
	}

	if m.sessionState == transactions && m.transactions.FilterState() == list.Filtering {
		return true
	}

	switch m.sessionState {
	case insertTransaction:
		return formActive(m.insertTransactionForm)
	case newGoal:
		return formActive(m.goalForm)
	case contributeGoal:
		return formActive(m.contributeForm)
	case editBudget:
		return formActive(m.budgetForm)
	case profile:
		return formActive(m.clearForm)
	case assistantChat:
		return true
	}

	return false
}

func handleNavigationKeys(msg tea.KeyMsg, m *model) (tea.Cmd, bool) {
	switch m.sessionState {
	case statisticsView:
		switch {
		case key.Matches(msg, m.keys.previousMonth):
			m.statistics.PreviousMonth()
			return nil, true
		case key.Matches(msg, m.keys.nextMonth):
			if !m.statistics.NextMonth() {
				return m.notify("Already showing the current month"), true
			}
			return nil, true
		case key.Matches(msg, m.keys.switchTab):
			m.statistics.ToggleTab()
			return nil, true
		}

	case transactions:
		switch {
		case key.Matches(msg, m.keys.cycleRange):
			return cycleTimeRange(m), true
		case key.Matches(msg, m.keys.cycleCategory):
			return cycleCategoryFilter(m), true
		}
	}

	return nil, false
}

func (m *model) switchTo(state sessionState) {
	if m.sessionState == state {
		return
	}
	m.previousSessionState = m.sessionState
	m.sessionState = state
}

func handleSessionStateKeys(msg tea.KeyMsg, m *model) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.overview):
		m.switchTo(overviewState)
		return m.refresh(), true

	case key.Matches(msg, m.keys.transactions):
		m.switchTo(transactions)
		return m.refresh(), true

	case key.Matches(msg, m.keys.addManual):
		return m.openInsertTransaction(), true

	case key.Matches(msg, m.keys.addVoice):
		m.voice.reset()
		m.switchTo(voiceEntry)
		return nil, true

	case key.Matches(msg, m.keys.addReceipt):
		m.camera.reset()
		m.switchTo(cameraEntry)
		return nil, true

	case key.Matches(msg, m.keys.goals):
		m.switchTo(goals)
		return m.refresh(), true

	case key.Matches(msg, m.keys.budgets):
		m.switchTo(budgets)
		return m.refresh(), true

	case key.Matches(msg, m.keys.statistics):
		m.switchTo(statisticsView)
		m.statistics.SetFocus(true)
		return m.refresh(), true

	case key.Matches(msg, m.keys.profile):
		m.switchTo(profile)
		m.configView.SetFocus(true)
		return m.refresh(), true

	case key.Matches(msg, m.keys.assistant):
		m.switchTo(assistantChat)
		return m.chat.focus(), true

	case key.Matches(msg, m.keys.fullHelp):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true
	}

	return nil, false
}

// handleEscape leaves the current screen. Forms are aborted and return to
// the list they were opened from; everything else returns to the overview.
func handleEscape(msg tea.KeyMsg, m *model) tea.Cmd {
	switch m.sessionState {
	case insertTransaction:
		log.Debug("handling escape in insert transaction state")
		abortForm(m.insertTransactionForm)
		m.sessionState = m.previousSessionState
		if m.sessionState == insertTransaction {
			m.sessionState = overviewState
		}
		return nil

	case newGoal, contributeGoal:
		abortForm(m.goalForm)
		abortForm(m.contributeForm)
		m.sessionState = goals
		return nil

	case editBudget:
		abortForm(m.budgetForm)
		m.sessionState = budgets
		return nil

	case transactions:
		if m.transactions.FilterState() != list.Unfiltered {
			var cmd tea.Cmd
			m.transactions, cmd = m.transactions.Update(msg)
			return cmd
		}

	case profile:
		if formActive(m.clearForm) {
			abortForm(m.clearForm)
			return nil
		}

	case voiceEntry:
		m.voice.session.Stop()
		m.voice.reset()

	case cameraEntry:
		m.camera.session.Stop()
		m.camera.reset()

	case assistantChat:
		m.chat.blur()

	case loading, errorState:
		return nil
	}

	m.previousSessionState = m.sessionState
	m.sessionState = overviewState
	return m.refresh()
}

func abortForm(f *huh.Form) {
	if f != nil {
		f.State = huh.StateAborted
	}
}
