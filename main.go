package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/Rshep3087/finpal/assistant"
	"github.com/Rshep3087/finpal/capture"
	"github.com/Rshep3087/finpal/config"
	"github.com/Rshep3087/finpal/ledger"
	"github.com/Rshep3087/finpal/overview"
	"github.com/Rshep3087/finpal/parse"
	"github.com/Rshep3087/finpal/statistics"
)

type model struct {
	// loadingSpinner is shown while the ledger loads and during captures
	loadingSpinner spinner.Model
	loadingState   loadingState

	keys   keyMap
	help   help.Model
	theme  Theme
	styles styles
	// terminalDark is the background the terminal reported at startup
	terminalDark bool

	store  *ledger.Store
	config config.Config
	fs     afero.Fs

	// sessionState is the current screen
	sessionState         sessionState
	previousSessionState sessionState
	errorMsg             string

	notification   string
	notificationID int

	// period is the calendar month the dashboard covers
	period Period

	overview overview.Model

	transactions list.Model
	filter       ledger.Filter

	budgets       list.Model
	budgetKeys    budgetListKeyMap
	budgetForm    *huh.Form
	editingBudget ledger.Budget

	goals            list.Model
	goalKeys         goalListKeyMap
	goalForm         *huh.Form
	goalValues       *goalFormValues
	contributeForm   *huh.Form
	contributingGoal ledger.Goal

	insertTransactionForm *huh.Form
	insertValues          *transactionForm

	voice       *captureEntry
	camera      *captureEntry
	captureKeys captureKeyMap
	transcriber parse.SpeechTranscriber
	classifier  parse.TextClassifier
	extractor   parse.ReceiptExtractor
	// unavailable lists the devices that failed the startup check
	unavailable []capture.Kind

	statistics statistics.Model

	configView  config.Model
	profileKeys profileKeyMap
	clearForm   *huh.Form

	chat      chatModel
	assistant *aiAssistant
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.loadLedger,
		m.checkDevices,
		m.loadingSpinner.Tick,
	)
}

// refresh pushes the store's current state into every view.
func (m *model) refresh() tea.Cmd {
	now := m.store.Now()
	m.period.setPeriod(now)

	ts := m.store.Transactions()
	monthly := ledger.MonthTransactions(ts, now.Year(), now.Month(), now.Location())
	m.overview.SetSummary(m.store.Summary())
	m.overview.SetTransactions(ts, monthly)
	m.overview.SetGoals(m.store.Goals())
	m.chat.setChart(spendingChart(monthly))

	m.statistics.SetData(ts, m.store.Budgets(), now)
	m.configView.SetConfig(m.config, config.Preferences{
		Theme:   string(m.store.Theme()),
		Offline: m.store.Offline(),
	})

	return tea.Batch(
		m.refreshTransactions(),
		m.refreshBudgets(),
		m.refreshGoals(),
	)
}

// notify shows text in the notification line until notificationLifetime
// passes or a newer notification replaces it.
func (m *model) notify(text string) tea.Cmd {
	m.notificationID++
	m.notification = text

	id := m.notificationID
	return tea.Tick(notificationLifetime, func(time.Time) tea.Msg {
		return clearNotificationMsg{id: id}
	})
}

func main() {
	Execute()
}

func newModel(cfg config.Config, store *ledger.Store, fsys afero.Fs, responder assistant.Responder) model {
	theme := newTheme(cfg.Colors)

	extractor := parse.NewMockReceiptExtractor(nil)
	extractor.Now = store.Now

	m := model{
		keys:         initializeKeyMap(),
		help:         createHelpModel(theme),
		theme:        theme,
		styles:       createStyles(theme),
		terminalDark: lipgloss.HasDarkBackground(),
		store:        store,
		config:       cfg,
		fs:           fsys,
		sessionState: loading,
		loadingSpinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
		),
		loadingState: newLoadingState(ledgerLoadingKey, devicesLoadingKey),
		overview:     overview.New(),
		budgetKeys:   newBudgetListKeyMap(),
		goalKeys:     newGoalListKeyMap(),
		captureKeys:  newCaptureKeyMap(),
		profileKeys:  newProfileKeyMap(),
		voice:        newCaptureEntry(newDevice(fsys, capture.Microphone, cfg.Microphone)),
		camera:       newCaptureEntry(newDevice(fsys, capture.Camera, cfg.Camera)),
		transcriber:  parse.NewMockTranscriber(nil),
		classifier:   parse.KeywordClassifier{Now: store.Now},
		extractor:    extractor,
		statistics:   statistics.New(theme.statisticsColors()),
		configView:   config.New(),
		assistant:    newAIAssistant(responder, assistant.NewSimulator(nil), store.Offline),
	}
	m.overview.Styles = createOverviewStyles(theme)
	m.chat = newChatModel(m.styles, store.Now)

	delegate := m.newItemDelegate()
	m.transactions = createTransactionList(delegate)
	m.budgets = createBudgetList(delegate, m.budgetKeys)
	m.goals = createGoalList(delegate, m.goalKeys)

	return m
}

func rootAction(ctx context.Context, cfg config.Config) error {
	if cfg.Debug {
		f, err := tea.LogToFile("finpal.log", "finpal")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	var p *tea.Program
	store := ledger.NewStore(backend,
		ledger.WithLogger(log.Default()),
		ledger.WithNotifier(func(message string) {
			if p != nil {
				p.Send(notificationMsg{text: message})
			}
		}),
	)

	responder, err := newResponder(cfg, store)
	if err != nil {
		return err
	}

	m := newModel(cfg, store, afero.NewOsFs(), responder)

	p = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
