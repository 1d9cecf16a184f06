package main

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Rshep3087/finpal/capture"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// always check for quit key first
	if msg, ok := msg.(tea.KeyMsg); ok {
		if cmd, handled := handleKeyPress(msg, &m); handled {
			log.Debug("key press handled", "key", msg.String())
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)

	case ledgerLoadedMsg:
		return m.handleLedgerLoaded(msg)

	case devicesCheckedMsg:
		return m.handleDevicesChecked(msg)

	case ledgerChangedMsg:
		return m.handleLedgerChanged(msg)

	case notificationMsg:
		return m, m.notify(msg.text)

	case clearNotificationMsg:
		if msg.id == m.notificationID {
			m.notification = ""
		}
		return m, nil

	case captureResultMsg:
		return m, m.handleCaptureResult(msg)

	case assistantReplyMsg:
		return m, m.handleAssistantReply(msg)

	case exportedMsg:
		return m.handleExported(msg)

	case clearedMsg:
		return m.handleCleared(msg)
	}

	var cmd tea.Cmd
	switch m.sessionState {
	case overviewState:
		m.overview, cmd = m.overview.Update(msg)

	case transactions:
		cmd = updateTransactions(msg, &m)

	case insertTransaction:
		cmd = updateInsertTransaction(msg, &m)

	case voiceEntry:
		cmd = updateCaptureEntry(msg, &m, m.voice, capture.Microphone)

	case cameraEntry:
		cmd = updateCaptureEntry(msg, &m, m.camera, capture.Camera)

	case goals:
		cmd = updateGoals(msg, &m)

	case newGoal:
		cmd = updateNewGoal(msg, &m)

	case contributeGoal:
		cmd = updateContributeGoal(msg, &m)

	case budgets:
		cmd = updateBudgets(msg, &m)

	case editBudget:
		cmd = updateEditBudget(msg, &m)

	case statisticsView:
		m.statistics, cmd = m.statistics.Update(msg)

	case profile:
		cmd = updateProfile(msg, &m)

	case assistantChat:
		cmd = updateChat(msg, &m)

	case loading:
		m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
	}

	return m, cmd
}
