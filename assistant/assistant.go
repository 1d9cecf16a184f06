// Package assistant answers free-form finance questions.
package assistant

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Responder produces a reply to a user message.
type Responder interface {
	Respond(ctx context.Context, message string) (Response, error)
}

// Response is an assistant reply. HasChart marks replies that are shown
// together with the spending breakdown.
type Response struct {
	Text     string `json:"text"`
	HasChart bool   `json:"hasChart,omitempty"`
}

// Sender identifies who wrote a chat message.
type Sender string

const (
	User      Sender = "user"
	Assistant Sender = "ai"
)

// Welcome is the first message of every conversation.
const Welcome = "Hi there! I'm your AI financial assistant. How can I help you today?"

// SuggestedQuestions are offered before the user has asked anything.
var SuggestedQuestions = []string{
	"How much did I spend on dining last month?",
	"What's my current balance?",
	"How am I doing on my savings goal?",
	"Show me my biggest expenses",
}

// Message is one turn of a conversation.
type Message struct {
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	HasChart  bool      `json:"hasChart,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is an ordered, concurrency-safe chat history.
type Conversation struct {
	mu       sync.Mutex
	now      func() time.Time
	messages []Message
}

// NewConversation returns a conversation that opens with the Welcome
// message.
func NewConversation(now func() time.Time) *Conversation {
	if now == nil {
		now = time.Now
	}
	c := &Conversation{now: now}
	c.messages = []Message{{Sender: Assistant, Text: Welcome, Timestamp: now()}}
	return c
}

// Ask records message, asks r for a reply and records the reply. Blank
// messages are ignored and return a zero Response.
func (c *Conversation) Ask(ctx context.Context, r Responder, message string) (Response, error) {
	if strings.TrimSpace(message) == "" {
		return Response{}, nil
	}

	c.append(Message{Sender: User, Text: message, Timestamp: c.now()})

	resp, err := r.Respond(ctx, message)
	if err != nil {
		return Response{}, err
	}

	c.append(Message{Sender: Assistant, Text: resp.Text, HasChart: resp.HasChart, Timestamp: c.now()})
	return resp, nil
}

func (c *Conversation) append(m Message) {
	c.mu.Lock()
	c.messages = append(c.messages, m)
	c.mu.Unlock()
}

// Messages returns a copy of the history, oldest first.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// UserTurns returns the number of messages the user has sent.
func (c *Conversation) UserTurns() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, m := range c.messages {
		if m.Sender == User {
			n++
		}
	}
	return n
}
