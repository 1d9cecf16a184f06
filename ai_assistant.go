package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Rshep3087/finpal/assistant"
	"github.com/Rshep3087/finpal/config"
	"github.com/Rshep3087/finpal/ledger"
)

// assistantReplyMsg is sent when the assistant has answered or failed.
type assistantReplyMsg struct {
	response assistant.Response
	err      error
}

// aiAssistant routes questions to the configured responder, or to the
// local simulator while offline mode is on.
type aiAssistant struct {
	remote  assistant.Responder
	local   assistant.Responder
	offline func() bool
}

func newAIAssistant(remote, local assistant.Responder, offline func() bool) *aiAssistant {
	return &aiAssistant{remote: remote, local: local, offline: offline}
}

func (a *aiAssistant) responder() assistant.Responder {
	if a.remote == nil || (a.offline != nil && a.offline()) {
		return a.local
	}
	return a.remote
}

// Respond implements assistant.Responder.
func (a *aiAssistant) Respond(ctx context.Context, message string) (assistant.Response, error) {
	return a.responder().Respond(ctx, message)
}

// ask creates a tea.Cmd that records message and its reply in conv.
func (a *aiAssistant) ask(conv *assistant.Conversation, message string) tea.Cmd {
	log.Debug("asking assistant", "message", message)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), aiResponseTimeout)
		defer cancel()

		resp, err := conv.Ask(ctx, a, message)
		if err != nil {
			log.Error("assistant failed", "error", err)
		} else {
			log.Debug("assistant replied", "has_chart", resp.HasChart)
		}

		return assistantReplyMsg{response: resp, err: err}
	}
}

// newResponder returns the responder selected by cfg.Assistant.
func newResponder(cfg config.Config, store *ledger.Store) (assistant.Responder, error) {
	switch cfg.Assistant {
	case "", config.AssistantMock:
		return assistant.NewSimulator(nil), nil

	case config.AssistantAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, errors.New("an Anthropic API key is required for the anthropic assistant " +
				"(set via --anthropic-api-key, ANTHROPIC_API_KEY environment variable, or config file)")
		}
		return NewAnthropicResponder(cfg.AnthropicAPIKey, store), nil
	}

	return nil, fmt.Errorf("unknown assistant: %s (must be %s or %s)",
		cfg.Assistant, config.AssistantMock, config.AssistantAnthropic)
}
