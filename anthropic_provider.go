package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/charmbracelet/log"

	"github.com/Rshep3087/finpal/assistant"
	"github.com/Rshep3087/finpal/format"
	"github.com/Rshep3087/finpal/ledger"
)

const (
	// maxHistoryMessages is even so the kept history starts with a user turn.
	maxHistoryMessages  = 20
	promptCategoryCount = 5
)

var chartPattern = regexp.MustCompile(`(?i)\b(spend|spent|spending|expenses?)\b`)

// ledgerSnapshot is the read side of the store used to ground replies.
type ledgerSnapshot interface {
	Now() time.Time
	Summary() ledger.Summary
	Transactions() []ledger.Transaction
	Goals() []ledger.Goal
}

// AnthropicResponder implements assistant.Responder with Anthropic's Claude
// API. The user's monthly figures go in the system prompt and earlier turns
// are replayed on every request.
type AnthropicResponder struct {
	client *anthropic.Client
	ledger ledgerSnapshot

	mu      sync.Mutex
	history []anthropic.MessageParam
}

// NewAnthropicResponder creates a responder whose requests are logged
// through the debug transport. opts are applied after the defaults.
func NewAnthropicResponder(apiKey string, snapshot ledgerSnapshot, opts ...option.RequestOption) *AnthropicResponder {
	httpClient := &http.Client{
		Transport: newLoggingTransport(http.DefaultTransport, log.Default()),
	}

	client := anthropic.NewClient(append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
	}, opts...)...)

	return &AnthropicResponder{
		client: &client,
		ledger: snapshot,
	}
}

// Respond implements assistant.Responder. A failed request leaves the
// history unchanged.
func (p *AnthropicResponder) Respond(ctx context.Context, message string) (assistant.Response, error) {
	p.mu.Lock()
	messages := append(slices.Clone(p.history), anthropic.NewUserMessage(anthropic.NewTextBlock(message)))
	p.mu.Unlock()

	log.Debug("sending question to Anthropic", "history", len(messages)-1)

	response, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropicModel,
		MaxTokens: anthropicMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: p.systemPrompt()},
		},
		Messages: messages,
	})
	if err != nil {
		log.Error("failed to call Anthropic API", "error", err)
		return assistant.Response{}, fmt.Errorf("failed to call Anthropic API: %w", err)
	}

	var text string
	if len(response.Content) > 0 {
		text = strings.TrimSpace(response.Content[0].Text)
	}

	if text == "" {
		return assistant.Response{}, errors.New("empty response from Anthropic API")
	}

	p.mu.Lock()
	p.history = append(p.history,
		messages[len(messages)-1],
		anthropic.NewAssistantMessage(anthropic.NewTextBlock(text)),
	)
	if len(p.history) > maxHistoryMessages {
		p.history = p.history[len(p.history)-maxHistoryMessages:]
	}
	p.mu.Unlock()

	return assistant.Response{
		Text:     text,
		HasChart: chartPattern.MatchString(message),
	}, nil
}

// systemPrompt describes the current month so answers use real figures.
func (p *AnthropicResponder) systemPrompt() string {
	now := p.ledger.Now()
	summary := p.ledger.Summary()
	monthly := ledger.MonthTransactions(p.ledger.Transactions(), now.Year(), now.Month(), now.Location())

	var b strings.Builder
	b.WriteString(`You are a friendly personal finance assistant in a budgeting app.
Answer in at most three sentences. Use the user's figures below when they are relevant and never invent transactions.
All amounts are in US dollars.

`)
	fmt.Fprintf(&b, "This month (%s %d):\n", now.Month(), now.Year())
	fmt.Fprintf(&b, "- Income: %s\n", format.Currency(summary.TotalIncome))
	fmt.Fprintf(&b, "- Spent: %s\n", format.Currency(summary.TotalSpent))
	fmt.Fprintf(&b, "- Net: %s\n", format.Currency(summary.NetAmount))
	fmt.Fprintf(&b, "- Budget used: %s\n", format.Percentage(summary.BudgetUsedPercentage))
	fmt.Fprintf(&b, "- Transactions: %d\n", summary.TransactionCount)

	totals := ledger.SortedCategoryTotals(monthly)
	if len(totals) > promptCategoryCount {
		totals = totals[:promptCategoryCount]
	}
	if len(totals) > 0 {
		b.WriteString("\nTop spending categories:\n")
		for _, t := range totals {
			fmt.Fprintf(&b, "- %s: %s\n", t.Category, format.Currency(t.Amount))
		}
	}

	if goals := p.ledger.Goals(); len(goals) > 0 {
		b.WriteString("\nSavings goals:\n")
		for _, g := range goals {
			fmt.Fprintf(&b, "- %s: %s of %s (%s)\n",
				g.Name,
				format.Currency(g.CurrentAmount),
				format.Currency(g.TargetAmount),
				format.Percentage(g.Progress()),
			)
		}
	}

	return b.String()
}
