package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/carlmjohnson/be"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rshep3087/finpal/assistant"
	"github.com/Rshep3087/finpal/ledger"
)

func TestSpendingChart(t *testing.T) {
	t.Run("no expenses", func(t *testing.T) {
		be.Equal(t, "", spendingChart(nil))
		be.Equal(t, "", spendingChart([]ledger.Transaction{
			{Amount: 3200, Category: "Salary", Type: ledger.Income},
		}))
	})

	t.Run("largest categories first", func(t *testing.T) {
		txs := []ledger.Transaction{
			{Amount: 10, Category: "Coffee", Type: ledger.Expense},
			{Amount: 90, Category: "Rent", Type: ledger.Expense},
			{Amount: 50, Category: "Food", Type: ledger.Expense},
			{Amount: 40, Category: "Fuel", Type: ledger.Expense},
			{Amount: 30, Category: "Gym", Type: ledger.Expense},
			{Amount: 20, Category: "Books", Type: ledger.Expense},
		}

		lines := strings.Split(spendingChart(txs), "\n")
		be.Equal(t, chartCategoryCount, len(lines))
		be.True(t, strings.HasPrefix(lines[0], "Rent"))
		be.In(t, "$90.00", lines[0])
		be.True(t, strings.HasPrefix(lines[4], "Books"))
		for _, l := range lines {
			be.NotIn(t, "Coffee", l)
		}
	})
}

func TestChatSuggestAndSend(t *testing.T) {
	m := newTestModel(t)
	m.sessionState = assistantChat
	m.chat.focus()

	updateChat(tea.KeyMsg{Type: tea.KeyTab}, &m)
	be.Equal(t, assistant.SuggestedQuestions[0], m.chat.input.Value())

	// a filled input is not replaced
	updateChat(tea.KeyMsg{Type: tea.KeyTab}, &m)
	be.Equal(t, assistant.SuggestedQuestions[0], m.chat.input.Value())

	cmd := updateChat(tea.KeyMsg{Type: tea.KeyEnter}, &m)
	be.Nonzero(t, cmd)
	be.True(t, m.chat.waiting)
	be.Equal(t, assistant.SuggestedQuestions[0], m.chat.pending)
	be.Equal(t, "", m.chat.input.Value())

	// no second request while waiting
	m.chat.input.SetValue("another")
	be.Zero(t, updateChat(tea.KeyMsg{Type: tea.KeyEnter}, &m))
}

func TestChatSendIgnoresBlank(t *testing.T) {
	m := newTestModel(t)
	m.chat.input.SetValue("   ")

	be.Zero(t, updateChat(tea.KeyMsg{Type: tea.KeyEnter}, &m))
	be.False(t, m.chat.waiting)
}

func TestHandleAssistantReply(t *testing.T) {
	m := newTestModel(t)
	m.chat.pending = "hello"
	m.chat.waiting = true

	be.Zero(t, m.handleAssistantReply(assistantReplyMsg{}))
	be.False(t, m.chat.waiting)
	be.Equal(t, "", m.chat.pending)

	be.Nonzero(t, m.handleAssistantReply(assistantReplyMsg{err: errors.New("timeout")}))
	be.In(t, "The assistant could not answer", m.notification)
}
