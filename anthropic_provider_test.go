package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/carlmjohnson/be"

	"github.com/Rshep3087/finpal/ledger"
)

type fakeSnapshot struct {
	now          time.Time
	summary      ledger.Summary
	transactions []ledger.Transaction
	goals        []ledger.Goal
}

func (f fakeSnapshot) Now() time.Time                     { return f.now }
func (f fakeSnapshot) Summary() ledger.Summary            { return f.summary }
func (f fakeSnapshot) Transactions() []ledger.Transaction { return f.transactions }
func (f fakeSnapshot) Goals() []ledger.Goal               { return f.goals }

func testSnapshot() fakeSnapshot {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	return fakeSnapshot{
		now: now,
		summary: ledger.Summary{
			TotalSpent:           320,
			TotalIncome:          3200,
			NetAmount:            2880,
			BudgetUsedPercentage: 42,
			TransactionCount:     2,
		},
		transactions: []ledger.Transaction{
			{Date: now, Amount: 320, Category: "Dining", Type: ledger.Expense},
			{Date: now, Amount: 3200, Category: "Salary", Type: ledger.Income},
		},
		goals: []ledger.Goal{{Name: "Vacation", TargetAmount: 3000, CurrentAmount: 1250}},
	}
}

type recordedRequest struct {
	System []struct {
		Text string `json:"text"`
	} `json:"system"`
	Messages []struct {
		Role string `json:"role"`
	} `json:"messages"`
	Model string `json:"model"`
}

// fakeAnthropic answers every message request with reply, recording the
// decoded requests.
type fakeAnthropic struct {
	mu       sync.Mutex
	requests []recordedRequest
	reply    string
	status   int
}

func (f *fakeAnthropic) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req recordedRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 {
		w.WriteHeader(f.status)
		fmt.Fprint(w, `{"type":"error","error":{"type":"api_error","message":"boom"}}`)
		return
	}

	reply, _ := json.Marshal(f.reply)
	fmt.Fprintf(w, `{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-haiku-20240307",`+
		`"content":[{"type":"text","text":%s}],"stop_reason":"end_turn","stop_sequence":null,`+
		`"usage":{"input_tokens":1,"output_tokens":1}}`, reply)
}

func newTestResponder(t *testing.T, fake *fakeAnthropic) *AnthropicResponder {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	return NewAnthropicResponder("test-key", testSnapshot(),
		option.WithBaseURL(srv.URL),
		option.WithMaxRetries(0),
	)
}

func TestAnthropicResponderRespond(t *testing.T) {
	fake := &fakeAnthropic{reply: "  You spent $320.00 on dining.  "}
	r := newTestResponder(t, fake)

	resp, err := r.Respond(context.Background(), "How much did I spend on dining?")
	be.NilErr(t, err)
	be.Equal(t, "You spent $320.00 on dining.", resp.Text)
	be.True(t, resp.HasChart)

	resp, err = r.Respond(context.Background(), "And my goals?")
	be.NilErr(t, err)
	be.False(t, resp.HasChart)

	be.Equal(t, 2, len(fake.requests))
	be.Equal(t, 1, len(fake.requests[0].Messages))
	// The first exchange is replayed before the new question.
	be.Equal(t, 3, len(fake.requests[1].Messages))
	be.Equal(t, "user", fake.requests[1].Messages[0].Role)
	be.Equal(t, "assistant", fake.requests[1].Messages[1].Role)
	be.Equal(t, anthropicModel, fake.requests[0].Model)
}

func TestAnthropicResponderSystemPrompt(t *testing.T) {
	fake := &fakeAnthropic{reply: "ok"}
	r := newTestResponder(t, fake)

	_, err := r.Respond(context.Background(), "hello")
	be.NilErr(t, err)

	be.Equal(t, 1, len(fake.requests[0].System))
	prompt := fake.requests[0].System[0].Text
	be.In(t, "This month (March 2025):", prompt)
	be.In(t, "- Spent: $320.00", prompt)
	be.In(t, "- Budget used: 42%", prompt)
	be.In(t, "- Dining: $320.00", prompt)
	be.In(t, "- Vacation: $1,250.00 of $3,000.00 (42%)", prompt)
	be.NotIn(t, "Salary", prompt)
}

func TestAnthropicResponderErrors(t *testing.T) {
	t.Run("api error keeps history", func(t *testing.T) {
		fake := &fakeAnthropic{status: http.StatusInternalServerError}
		r := newTestResponder(t, fake)

		_, err := r.Respond(context.Background(), "hello")
		be.Nonzero(t, err)
		be.In(t, "failed to call Anthropic API", err.Error())
		be.Equal(t, 0, len(r.history))
	})

	t.Run("empty reply", func(t *testing.T) {
		fake := &fakeAnthropic{reply: "   "}
		r := newTestResponder(t, fake)

		_, err := r.Respond(context.Background(), "hello")
		be.Nonzero(t, err)
		be.In(t, "empty response", err.Error())
		be.Equal(t, 0, len(r.history))
	})
}

func TestAnthropicResponderHistoryLimit(t *testing.T) {
	fake := &fakeAnthropic{reply: "ok"}
	r := newTestResponder(t, fake)

	for i := range maxHistoryMessages {
		_, err := r.Respond(context.Background(), fmt.Sprintf("question %d", i))
		be.NilErr(t, err)
	}

	be.Equal(t, maxHistoryMessages, len(r.history))
	last := fake.requests[len(fake.requests)-1]
	be.Equal(t, maxHistoryMessages+1, len(last.Messages))
	be.Equal(t, "user", last.Messages[0].Role)
}
