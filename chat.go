package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rshep3087/finpal/assistant"
	"github.com/Rshep3087/finpal/format"
	"github.com/Rshep3087/finpal/ledger"
	"github.com/Rshep3087/finpal/overview"
)

const (
	chartCategoryCount = 5
	chartBarWidth      = 20
	bubbleWidthPercent = 75
)

type chatKeyMap struct {
	send    key.Binding
	suggest key.Binding
	scroll  key.Binding
}

func newChatKeyMap() chatKeyMap {
	return chatKeyMap{
		send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		suggest: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "suggest a question"),
		),
		scroll: key.NewBinding(
			key.WithKeys("up", "down", "pgup", "pgdown"),
			key.WithHelp("↑/↓", "scroll"),
		),
	}
}

// chatModel is the assistant screen: the conversation in a viewport above a
// single-line input.
type chatModel struct {
	input        textinput.Model
	viewport     viewport.Model
	keys         chatKeyMap
	styles       styles
	now          func() time.Time
	conversation *assistant.Conversation

	// pending is the question awaiting a reply
	pending    string
	waiting    bool
	suggestion int
	// chart is the spending breakdown shown under replies that ask for it
	chart string
	width int
}

func newChatModel(s styles, now func() time.Time) chatModel {
	input := textinput.New()
	input.Placeholder = "Ask me anything about your finances..."
	input.Prompt = "> "
	input.CharLimit = 280

	c := chatModel{
		input:        input,
		viewport:     viewport.New(0, 10),
		keys:         newChatKeyMap(),
		styles:       s,
		now:          now,
		conversation: assistant.NewConversation(now),
	}
	c.refreshViewport()
	return c
}

func (c *chatModel) focus() tea.Cmd {
	c.refreshViewport()
	return c.input.Focus()
}

func (c *chatModel) blur() {
	c.input.Blur()
}

// reset starts a new conversation.
func (c *chatModel) reset() {
	c.conversation = assistant.NewConversation(c.now)
	c.pending = ""
	c.waiting = false
	c.suggestion = 0
	c.input.Reset()
	c.refreshViewport()
}

func (c *chatModel) setSize(width, height int) {
	c.width = width
	c.input.Width = max(width-4, 10)
	c.viewport.Width = width
	c.viewport.Height = max(height-4, 3)
	c.refreshViewport()
}

func (c *chatModel) setChart(chart string) {
	c.chart = chart
	c.refreshViewport()
}

// refreshViewport re-renders the history and scrolls to the newest message.
func (c *chatModel) refreshViewport() {
	bubbleWidth := c.width * bubbleWidthPercent / 100

	messages := c.conversation.Messages()

	var rows []string
	for _, msg := range messages {
		rows = append(rows, c.renderMessage(msg, bubbleWidth))
	}
	// the question is recorded once the request starts
	if c.pending != "" && messages[len(messages)-1].Sender != assistant.User {
		rows = append(rows, c.renderMessage(assistant.Message{Sender: assistant.User, Text: c.pending}, bubbleWidth))
	}

	c.viewport.SetContent(strings.Join(rows, "\n\n"))
	c.viewport.GotoBottom()
}

func (c *chatModel) renderMessage(msg assistant.Message, width int) string {
	if msg.Sender == assistant.User {
		style := c.styles.userBubbleStyle
		if width > 0 {
			style = style.MaxWidth(width)
		}
		return lipgloss.PlaceHorizontal(c.width, lipgloss.Right, style.Render(msg.Text))
	}

	text := msg.Text
	if msg.HasChart && c.chart != "" {
		text += "\n\n" + c.chart
	}

	style := c.styles.aiBubbleStyle
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(text)
}

// spendingChart renders the largest expense categories of monthly as
// horizontal bars.
func spendingChart(monthly []ledger.Transaction) string {
	totals := ledger.SortedCategoryTotals(monthly)
	if len(totals) == 0 {
		return ""
	}
	if len(totals) > chartCategoryCount {
		totals = totals[:chartCategoryCount]
	}

	var sum float64
	for _, t := range totals {
		sum += t.Amount
	}

	lines := make([]string, len(totals))
	for i, t := range totals {
		pct := t.Amount / sum * 100
		lines[i] = fmt.Sprintf("%-14s %s %s", t.Category, overview.Bar(pct, chartBarWidth), format.Currency(t.Amount))
	}
	return strings.Join(lines, "\n")
}

func updateChat(msg tea.Msg, m *model) tea.Cmd {
	c := &m.chat

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, c.keys.send):
			text := strings.TrimSpace(c.input.Value())
			if text == "" || c.waiting {
				return nil
			}

			c.input.Reset()
			c.pending = text
			c.waiting = true
			c.refreshViewport()
			return tea.Batch(m.assistant.ask(c.conversation, text), m.loadingSpinner.Tick)

		case key.Matches(msg, c.keys.suggest):
			if c.input.Value() != "" {
				return nil
			}
			c.input.SetValue(assistant.SuggestedQuestions[c.suggestion])
			c.input.CursorEnd()
			c.suggestion = (c.suggestion + 1) % len(assistant.SuggestedQuestions)
			return nil

		case key.Matches(msg, c.keys.scroll):
			var cmd tea.Cmd
			c.viewport, cmd = c.viewport.Update(msg)
			return cmd
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (m *model) handleAssistantReply(msg assistantReplyMsg) tea.Cmd {
	m.chat.pending = ""
	m.chat.waiting = false
	m.chat.refreshViewport()

	if msg.err != nil {
		return m.notify(fmt.Sprintf("The assistant could not answer: %s", msg.err))
	}
	return nil
}

func chatView(m model) string {
	var b strings.Builder

	b.WriteString(m.chat.viewport.View())
	b.WriteString("\n\n")

	if m.chat.waiting {
		fmt.Fprintf(&b, "%s Thinking...\n", m.loadingSpinner.View())
	} else if m.chat.conversation.UserTurns() == 0 {
		b.WriteString(m.styles.mutedStyle.Render("Try: " + strings.Join(assistant.SuggestedQuestions, " • ")))
		b.WriteString("\n")
	}

	b.WriteString(m.chat.input.View())
	b.WriteString("\n")
	b.WriteString(m.styles.mutedStyle.Render("enter send • tab suggest • ↑/↓ scroll • esc back"))

	return b.String()
}
