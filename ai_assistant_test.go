package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/carlmjohnson/be"
	"github.com/spf13/afero"

	"github.com/Rshep3087/finpal/assistant"
	"github.com/Rshep3087/finpal/config"
)

type fixedResponder struct {
	text string
	err  error
}

func (f fixedResponder) Respond(context.Context, string) (assistant.Response, error) {
	return assistant.Response{Text: f.text}, f.err
}

func TestAIAssistantRouting(t *testing.T) {
	remote := fixedResponder{text: "remote"}
	local := fixedResponder{text: "local"}

	tests := []struct {
		name     string
		remote   assistant.Responder
		offline  func() bool
		expected string
	}{
		{name: "online uses remote", remote: remote, offline: func() bool { return false }, expected: "remote"},
		{name: "no offline toggle uses remote", remote: remote, expected: "remote"},
		{name: "offline uses local", remote: remote, offline: func() bool { return true }, expected: "local"},
		{name: "missing remote uses local", offline: func() bool { return false }, expected: "local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAIAssistant(tt.remote, local, tt.offline)
			resp, err := a.Respond(context.Background(), "hi")
			be.NilErr(t, err)
			be.Equal(t, tt.expected, resp.Text)
		})
	}
}

func TestAIAssistantAsk(t *testing.T) {
	conv := assistant.NewConversation(func() time.Time { return testNow })

	a := newAIAssistant(fixedResponder{text: "You are on track."}, nil, nil)
	msg := a.ask(conv, "Am I on track?")()

	reply, ok := msg.(assistantReplyMsg)
	be.True(t, ok)
	be.NilErr(t, reply.err)
	be.Equal(t, "You are on track.", reply.response.Text)
	be.Equal(t, 1, conv.UserTurns())

	a = newAIAssistant(fixedResponder{err: errors.New("offline")}, nil, nil)
	reply = a.ask(conv, "Again?")().(assistantReplyMsg)
	be.Nonzero(t, reply.err)
}

func TestNewResponder(t *testing.T) {
	store := newTestStore(t, afero.NewMemMapFs())

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{name: "default is the simulator", cfg: config.Config{}},
		{name: "mock", cfg: config.Config{Assistant: config.AssistantMock}},
		{
			name: "anthropic with key",
			cfg:  config.Config{Assistant: config.AssistantAnthropic, AnthropicAPIKey: "sk-test"},
		},
		{
			name:    "anthropic without key",
			cfg:     config.Config{Assistant: config.AssistantAnthropic},
			wantErr: "Anthropic API key is required",
		},
		{
			name:    "unknown",
			cfg:     config.Config{Assistant: "oracle"},
			wantErr: "unknown assistant: oracle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := newResponder(tt.cfg, store)
			if tt.wantErr != "" {
				be.Nonzero(t, err)
				be.In(t, tt.wantErr, err.Error())
				return
			}
			be.NilErr(t, err)
			be.Nonzero(t, r)
		})
	}
}
