package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Rshep3087/finpal/api"
	"github.com/Rshep3087/finpal/assistant"
	"github.com/Rshep3087/finpal/ledger"
	"github.com/Rshep3087/finpal/storage"
)

var now = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

type echoResponder struct {
	err error
}

func (e echoResponder) Respond(_ context.Context, message string) (assistant.Response, error) {
	if e.err != nil {
		return assistant.Response{}, e.err
	}
	return assistant.Response{Text: "you said: " + message}, nil
}

func newStore(t *testing.T) *ledger.Store {
	t.Helper()

	backend, err := storage.NewFileBackend(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)

	seed := map[string]any{
		ledger.TransactionsKey: []ledger.Transaction{
			{ID: "tx-1", Date: now.AddDate(0, 0, -1), Amount: 40, Description: "Lunch at cafe", Category: "Dining", Type: ledger.Expense},
			{ID: "tx-2", Date: now.AddDate(0, 0, -2), Amount: 1000, Description: "Paycheck", Category: "Salary", Type: ledger.Income},
			{ID: "tx-3", Date: now.AddDate(0, -2, 0), Amount: 60, Description: "Groceries run", Category: "Groceries", Type: ledger.Expense},
		},
		ledger.BudgetsKey: []ledger.Budget{
			{ID: "budget-1", CategoryID: "cat-1", Category: "Dining", Amount: 200, Spent: 10, Period: ledger.Monthly},
		},
		ledger.GoalsKey: []ledger.Goal{
			{ID: "goal-1", Name: "Vacation", TargetAmount: 1000, CurrentAmount: 100, Category: ledger.SavingsCategory},
		},
	}
	for key, v := range seed {
		data, err := json.Marshal(v)
		require.NoError(t, err)
		require.NoError(t, backend.Set(context.Background(), key, data))
	}

	n := 0
	s := ledger.NewStore(backend,
		ledger.WithClock(func() time.Time { return now }),
		ledger.WithIDGenerator(func(prefix string) string {
			n++
			return fmt.Sprintf("%s-new-%d", prefix, n)
		}),
	)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func newRouter(t *testing.T, responder assistant.Responder) (*gin.Engine, *ledger.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := newStore(t)
	logger := log.New(io.Discard)
	return api.NewRouter(api.Config{Store: s, Responder: responder, Logger: logger}), s
}

func request(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "body: %s", w.Body.String())
}

func TestHealthz(t *testing.T) {
	r, _ := newRouter(t, echoResponder{})

	w := request(t, r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestNotFound(t *testing.T) {
	r, _ := newRouter(t, echoResponder{})

	w := request(t, r, http.MethodGet, "/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not found"}`, w.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	r, _ := newRouter(t, echoResponder{})

	w := request(t, r, http.MethodDelete, "/v1/summary", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestGetSummary(t *testing.T) {
	r, _ := newRouter(t, echoResponder{})

	w := request(t, r, http.MethodGet, "/v1/summary", "")
	require.Equal(t, http.StatusOK, w.Code)

	var s ledger.Summary
	decodeResponse(t, w, &s)
	assert.Equal(t, 40.0, s.TotalSpent)
	assert.Equal(t, 1000.0, s.TotalIncome)
	assert.Equal(t, 960.0, s.NetAmount)
	assert.Equal(t, 20.0, s.BudgetUsedPercentage)
	assert.Equal(t, 2, s.TransactionCount)
}

func TestGetTransactions(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
		ids    []string
	}{
		{"all", "", http.StatusOK, []string{"tx-1", "tx-2", "tx-3"}},
		{"search", "?search=LUNCH", http.StatusOK, []string{"tx-1"}},
		{"category", "?category=Salary", http.StatusOK, []string{"tx-2"}},
		{"range", "?range=month", http.StatusOK, []string{"tx-1", "tx-2"}},
		{"no match", "?search=zzz", http.StatusOK, []string{}},
		{"bad range", "?range=decade", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newRouter(t, echoResponder{})

			w := request(t, r, http.MethodGet, "/v1/transactions"+tt.query, "")
			require.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusOK {
				return
			}

			var got []ledger.Transaction
			decodeResponse(t, w, &got)

			ids := []string{}
			for _, tx := range got {
				ids = append(ids, tx.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestCreateTransaction(t *testing.T) {
	r, s := newRouter(t, echoResponder{})

	w := request(t, r, http.MethodPost, "/v1/transactions", `{"amount": 12.5, "description": "Coffee", "category": "Dining", "id": "mine"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var got ledger.Transaction
	decodeResponse(t, w, &got)
	assert.Equal(t, "tx-new-1", got.ID)
	assert.Equal(t, 12.5, got.Amount)
	assert.Equal(t, ledger.Expense, got.Type)
	assert.True(t, got.Date.Equal(now))
	assert.Len(t, s.Transactions(), 4)
}

func TestCreateTransactionRejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"amount":`},
		{"missing amount", `{"description": "Coffee"}`},
		{"non-numeric amount", `{"amount": "twelve"}`},
		{"invalid type", `{"amount": 5, "type": "gift"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, s := newRouter(t, echoResponder{})

			w := request(t, r, http.MethodPost, "/v1/transactions", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Len(t, s.Transactions(), 3)
		})
	}
}

func TestUpdateBudget(t *testing.T) {
	r, s := newRouter(t, echoResponder{})

	w := request(t, r, http.MethodPatch, "/v1/budgets/cat-1", `{"amount": 350}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got ledger.Budget
	decodeResponse(t, w, &got)
	assert.Equal(t, 350.0, got.Amount)
	assert.Equal(t, 10.0, got.Spent)
	assert.Equal(t, 350.0, s.Budgets()[0].Amount)

	w = request(t, r, http.MethodPatch, "/v1/budgets/cat-99", `{"amount": 350}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = request(t, r, http.MethodPatch, "/v1/budgets/cat-1", `{"amount": "lots"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGoal(t *testing.T) {
	r, s := newRouter(t, echoResponder{})

	w := request(t, r, http.MethodPost, "/v1/goals", `{"name": "Laptop", "targetAmount": 1500}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var got ledger.Goal
	decodeResponse(t, w, &got)
	assert.Equal(t, "goal-new-1", got.ID)
	assert.Equal(t, ledger.SavingsCategory, got.Category)
	assert.Equal(t, 0.0, got.CurrentAmount)
	assert.Equal(t, ledger.GoalColors[1], got.Color)
	assert.True(t, got.CreatedAt.Equal(now))
	assert.Len(t, s.Goals(), 2)

	w = request(t, r, http.MethodPost, "/v1/goals", `{"targetAmount": 1500}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(t, r, http.MethodPost, "/v1/goals", `{"name": "Laptop"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContribute(t *testing.T) {
	r, _ := newRouter(t, echoResponder{})

	w := request(t, r, http.MethodPost, "/v1/goals/goal-1/contributions", `{"amount": 250}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got ledger.Goal
	decodeResponse(t, w, &got)
	assert.Equal(t, 350.0, got.CurrentAmount)
	require.NotNil(t, got.LastUpdated)
	assert.True(t, got.LastUpdated.Equal(now))

	w = request(t, r, http.MethodPost, "/v1/goals/goal-404/contributions", `{"amount": 250}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetStatistics(t *testing.T) {
	r, _ := newRouter(t, echoResponder{})

	w := request(t, r, http.MethodGet, "/v1/statistics?month=2025-01", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Year     int     `json:"year"`
		Month    int     `json:"month"`
		Expenses float64 `json:"expenses"`
	}
	decodeResponse(t, w, &got)
	assert.Equal(t, 2025, got.Year)
	assert.Equal(t, 1, got.Month)
	assert.Equal(t, 60.0, got.Expenses)

	w = request(t, r, http.MethodGet, "/v1/statistics?month=march", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExport(t *testing.T) {
	r, _ := newRouter(t, echoResponder{})

	w := request(t, r, http.MethodGet, "/v1/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="my_financial_data.json"`, w.Header().Get("Content-Disposition"))

	var got []ledger.Transaction
	decodeResponse(t, w, &got)
	assert.Len(t, got, 3)

	w = request(t, r, http.MethodGet, "/v1/export?format=xlsx", "")
	require.Equal(t, http.StatusOK, w.Code)

	f, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	rows, err := f.GetRows("Transactions")
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	w = request(t, r, http.MethodGet, "/v1/export?format=csv", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssistant(t *testing.T) {
	r, _ := newRouter(t, echoResponder{})

	w := request(t, r, http.MethodPost, "/v1/assistant", `{"message": "hello"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Text     string              `json:"text"`
		Messages []assistant.Message `json:"messages"`
	}
	decodeResponse(t, w, &got)
	assert.Equal(t, "you said: hello", got.Text)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, assistant.Welcome, got.Messages[0].Text)
	assert.Equal(t, assistant.User, got.Messages[1].Sender)

	w = request(t, r, http.MethodPost, "/v1/assistant", `{"message": "   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssistantFailure(t *testing.T) {
	r, _ := newRouter(t, echoResponder{err: errors.New("boom")})

	w := request(t, r, http.MethodPost, "/v1/assistant", `{"message": "hello"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestNewRouterLeavesGinGlobals(t *testing.T) {
	newRouter(t, echoResponder{})
	assert.Nil(t, gin.DebugPrintRouteFunc, "router construction must not replace the process-wide route printer")
}
