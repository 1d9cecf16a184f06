package main

import (
	"fmt"
	"strings"

	"github.com/Rshep3087/finpal/capture"
)

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")

	switch m.sessionState {
	case overviewState:
		b.WriteString(m.overview.View())
	case transactions:
		b.WriteString(transactionsView(m))
	case insertTransaction:
		b.WriteString(insertTransactionView(m))
	case voiceEntry:
		b.WriteString(captureEntryView(m, m.voice, capture.Microphone))
	case cameraEntry:
		b.WriteString(captureEntryView(m, m.camera, capture.Camera))
	case goals:
		b.WriteString(goalsView(m))
	case newGoal:
		b.WriteString(m.goalForm.View())
	case contributeGoal:
		b.WriteString(m.contributeForm.View())
	case budgets:
		b.WriteString(budgetsView(m))
	case editBudget:
		b.WriteString(m.budgetForm.View())
	case statisticsView:
		b.WriteString(m.statistics.View())
	case profile:
		b.WriteString(profileView(m))
	case assistantChat:
		b.WriteString(chatView(m))
	case loading:
		fmt.Fprintf(&b, "%s Loading data...", m.loadingSpinner.View())
		return m.styles.docStyle.Render(b.String())
	case errorState:
		b.WriteString(m.styles.errorStyle.Render(fmt.Sprintf("%s - 'q' to quit", m.errorMsg)))
		return m.styles.docStyle.Render(b.String())
	default:
		b.WriteString(m.styles.mutedStyle.Render("Nothing here. Press o to go back to the overview."))
	}

	b.WriteString("\n")
	if m.notification != "" {
		b.WriteString(m.styles.notificationStyle.Render(m.notification))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return m.styles.docStyle.Render(b.String())
}

func (m model) renderTitle() string {
	if m.period.String() == "" {
		return m.styles.titleStyle.Render(fmt.Sprintf("%s | %s", appName, m.sessionState))
	}

	return m.styles.titleStyle.Render(
		fmt.Sprintf("%s | %s | %s",
			appName,
			m.sessionState,
			m.period.String(),
		),
	)
}
