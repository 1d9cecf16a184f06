package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/Rshep3087/finpal/capture"
)

// Message types for the store and device results.
type (
	ledgerLoadedMsg struct {
		err error
	}

	devicesCheckedMsg struct {
		unavailable []capture.Kind
	}

	// ledgerChangedMsg is sent after a mutation. A non-empty notification
	// is shown once the views are refreshed.
	ledgerChangedMsg struct {
		notification string
	}

	notificationMsg struct {
		text string
	}

	clearNotificationMsg struct {
		id int
	}

	exportedMsg struct {
		path  string
		count int
		err   error
	}

	clearedMsg struct {
		err error
	}
)

// Message handlers.
func (m model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	h, v := m.styles.docStyle.GetFrameSize()
	width, height := msg.Width-h, msg.Height-v-takenHeight

	m.overview.SetSize(width, height)
	m.transactions.SetSize(width, height-standardMargin)
	m.budgets.SetSize(width, height)
	m.goals.SetSize(width, height)
	m.statistics.SetSize(width, height)
	m.configView.SetSize(width, height-standardMargin)
	m.chat.setSize(width, height)

	m.help.Width = msg.Width

	if m.insertTransactionForm != nil {
		m.insertTransactionForm = m.insertTransactionForm.WithHeight(height).WithWidth(width)
	}
	if m.goalForm != nil {
		m.goalForm = m.goalForm.WithHeight(height).WithWidth(width)
	}
	if m.contributeForm != nil {
		m.contributeForm = m.contributeForm.WithHeight(height).WithWidth(width)
	}
	if m.budgetForm != nil {
		m.budgetForm = m.budgetForm.WithHeight(height).WithWidth(width)
	}

	return m, nil
}

func (m model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	switch m.sessionState {
	case loading:
	case voiceEntry:
		return m, updateCaptureEntry(msg, &m, m.voice, capture.Microphone)
	case cameraEntry:
		return m, updateCaptureEntry(msg, &m, m.camera, capture.Camera)
	case assistantChat:
		if !m.chat.waiting {
			return m, nil
		}
	default:
		return m, nil
	}

	var cmd tea.Cmd
	m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
	return m, cmd
}

func (m model) handleLedgerLoaded(msg ledgerLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Error("failed to load ledger", "error", msg.err)
		m.sessionState = errorState
		m.errorMsg = fmt.Sprintf("Could not load your data: %s", msg.err)
		return m, nil
	}

	applyAppearance(m.store.Theme(), m.terminalDark)
	cmd := m.refresh()

	m.loadingState.set(ledgerLoadingKey)
	m.sessionState = m.checkIfLoading()

	return m, tea.Batch(cmd, tea.WindowSize())
}

func (m model) handleDevicesChecked(msg devicesCheckedMsg) (tea.Model, tea.Cmd) {
	m.unavailable = msg.unavailable
	m.loadingState.set(devicesLoadingKey)
	m.sessionState = m.checkIfLoading()

	if len(msg.unavailable) == 0 {
		return m, nil
	}

	return m, m.notify(fmt.Sprintf("Could not access the %s", msg.unavailable[0]))
}

func (m model) handleLedgerChanged(msg ledgerChangedMsg) (tea.Model, tea.Cmd) {
	cmd := m.refresh()
	if msg.notification == "" {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.notify(msg.notification))
}

func (m model) handleExported(msg exportedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Error("export failed", "path", msg.path, "error", msg.err)
		return m, m.notify(fmt.Sprintf("Export failed: %s", msg.err))
	}
	return m, m.notify(fmt.Sprintf("Exported %d transactions to %s", msg.count, msg.path))
}

func (m model) handleCleared(msg clearedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Error("clear failed", "error", msg.err)
		return m, m.notify(fmt.Sprintf("Could not clear data: %s", msg.err))
	}

	applyAppearance(m.store.Theme(), m.terminalDark)
	m.chat.reset()
	return m, tea.Batch(m.refresh(), m.notify("All data has been cleared"))
}

// checkIfLoading returns loading until every startup load has reported.
// An error screen is left in place.
func (m model) checkIfLoading() sessionState {
	if m.sessionState == errorState {
		return errorState
	}

	if loaded, pending := m.loadingState.allLoaded(); !loaded {
		log.Debug("still loading", "pending", pending)
		return loading
	}

	if m.sessionState == loading {
		return overviewState
	}
	return m.sessionState
}

// Store and device calls.
func (m model) loadLedger() tea.Msg {
	return ledgerLoadedMsg{err: m.store.Load(context.Background())}
}

// checkDevices opens and releases each capture device once so a missing
// file is reported before the user tries to record.
func (m model) checkDevices() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), captureTimeout)
	defer cancel()

	entries := []*captureEntry{m.voice, m.camera}
	failed := make([]bool, len(entries))

	var eg errgroup.Group
	for i, entry := range entries {
		eg.Go(func() error {
			err := entry.session.Capture(ctx, func(capture.Stream) error { return nil })
			if errors.Is(err, capture.ErrDeviceUnavailable) {
				log.Debug("device unavailable", "kind", entry.session.Kind(), "error", err)
				failed[i] = true
				return nil
			}
			return err
		})
	}

	if err := eg.Wait(); err != nil {
		log.Error("device check failed", "error", err)
	}

	var unavailable []capture.Kind
	for i, entry := range entries {
		if failed[i] {
			unavailable = append(unavailable, entry.session.Kind())
		}
	}
	return devicesCheckedMsg{unavailable: unavailable}
}
