// Package api serves the ledger as a local JSON API.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/Rshep3087/finpal/assistant"
	"github.com/Rshep3087/finpal/ledger"
	"github.com/Rshep3087/finpal/statistics"
)

// Store is the part of ledger.Store the API needs.
type Store interface {
	Now() time.Time
	Summary() ledger.Summary
	Transactions() []ledger.Transaction
	Budgets() []ledger.Budget
	Goals() []ledger.Goal
	Goal(id string) (ledger.Goal, bool)
	AddTransaction(ctx context.Context, t ledger.Transaction) ledger.Transaction
	UpdateBudget(ctx context.Context, categoryID string, amount float64) bool
	AddGoal(ctx context.Context, g ledger.Goal) ledger.Goal
	UpdateGoalProgress(ctx context.Context, goalID string, delta float64) bool
}

// Config configures the router.
type Config struct {
	Store     Store
	Responder assistant.Responder
	Logger    *log.Logger

	// AllowOrigins enables CORS for the listed origins when not empty.
	AllowOrigins []string
}

// HTTPError is the body of every error response.
type HTTPError struct {
	Error string `json:"error"`
}

func httpError(c *gin.Context, status int, format string, args ...any) {
	c.AbortWithStatusJSON(status, HTTPError{Error: fmt.Sprintf(format, args...)})
}

type handler struct {
	store        Store
	responder    assistant.Responder
	conversation *assistant.Conversation
}

// NewRouter returns the gin engine serving the API.
func NewRouter(cfg Config) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	h := &handler{
		store:        cfg.Store,
		responder:    cfg.Responder,
		conversation: assistant.NewConversation(cfg.Store.Now),
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(requestLogger(logger))

	if len(cfg.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowOrigins,
			AllowMethods: []string{"OPTIONS", "GET", "POST", "PATCH"},
			AllowHeaders: []string{"Origin", "Content-Length", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}

	r.NoRoute(func(c *gin.Context) {
		httpError(c, http.StatusNotFound, "not found")
	})
	r.NoMethod(func(c *gin.Context) {
		httpError(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Client IPs are only logged, never trusted.
	_ = r.SetTrustedProxies([]string{})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	{
		v1.GET("/summary", h.getSummary)

		v1.GET("/transactions", h.getTransactions)
		v1.POST("/transactions", h.createTransaction)

		v1.GET("/budgets", h.getBudgets)
		v1.PATCH("/budgets/:categoryId", h.updateBudget)

		v1.GET("/goals", h.getGoals)
		v1.POST("/goals", h.createGoal)
		v1.POST("/goals/:id/contributions", h.contribute)

		v1.GET("/statistics", h.getStatistics)
		v1.GET("/export", h.export)

		v1.POST("/assistant", h.ask)
	}

	return r
}

func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		kv := []any{
			"request_id", requestid.Get(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
		}
		if status >= http.StatusInternalServerError {
			logger.Error("request", kv...)
			return
		}
		logger.Info("request", kv...)
	}
}

func (h *handler) getSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Summary())
}

func (h *handler) getTransactions(c *gin.Context) {
	f := ledger.Filter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Range:    ledger.TimeRange(c.DefaultQuery("range", string(ledger.AllTime))),
	}

	switch f.Range {
	case ledger.AllTime, ledger.PastWeek, ledger.PastMonth, ledger.PastQuarter:
	default:
		httpError(c, http.StatusBadRequest, "invalid range %q, expected all, week, month or quarter", f.Range)
		return
	}

	transactions := ledger.FilterTransactions(h.store.Transactions(), f, h.store.Now())
	if transactions == nil {
		transactions = []ledger.Transaction{}
	}
	c.JSON(http.StatusOK, transactions)
}

type transactionRequest struct {
	Date          *time.Time             `json:"date"`
	Amount        *float64               `json:"amount"`
	Description   string                 `json:"description"`
	Category      string                 `json:"category"`
	Type          ledger.TransactionType `json:"type"`
	PaymentMethod string                 `json:"paymentMethod"`
	Location      string                 `json:"location"`
	Tags          []string               `json:"tags"`
}

func (h *handler) createTransaction(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpError(c, http.StatusBadRequest, "invalid request body: %s", err)
		return
	}

	if req.Amount == nil {
		httpError(c, http.StatusBadRequest, "amount is required")
		return
	}

	if req.Type == "" {
		req.Type = ledger.Expense
	}
	if !req.Type.Valid() {
		httpError(c, http.StatusBadRequest, "invalid type %q", req.Type)
		return
	}

	if req.Category == "" {
		req.Category = ledger.UncategorizedCategory
	}

	date := h.store.Now()
	if req.Date != nil {
		date = *req.Date
	}

	t := h.store.AddTransaction(c.Request.Context(), ledger.Transaction{
		Date:          date,
		Amount:        *req.Amount,
		Description:   req.Description,
		Category:      req.Category,
		Type:          req.Type,
		PaymentMethod: req.PaymentMethod,
		Location:      req.Location,
		Tags:          req.Tags,
	})
	c.JSON(http.StatusCreated, t)
}

func (h *handler) getBudgets(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Budgets())
}

type amountRequest struct {
	Amount *float64 `json:"amount"`
}

func bindAmount(c *gin.Context) (float64, bool) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpError(c, http.StatusBadRequest, "invalid request body: %s", err)
		return 0, false
	}
	if req.Amount == nil {
		httpError(c, http.StatusBadRequest, "amount is required")
		return 0, false
	}
	return *req.Amount, true
}

func (h *handler) updateBudget(c *gin.Context) {
	amount, ok := bindAmount(c)
	if !ok {
		return
	}

	categoryID := c.Param("categoryId")
	if !h.store.UpdateBudget(c.Request.Context(), categoryID, amount) {
		httpError(c, http.StatusNotFound, "no budget for category %q", categoryID)
		return
	}

	for _, b := range h.store.Budgets() {
		if b.CategoryID == categoryID {
			c.JSON(http.StatusOK, b)
			return
		}
	}
}

func (h *handler) getGoals(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Goals())
}

type goalRequest struct {
	Name         string     `json:"name"`
	TargetAmount *float64   `json:"targetAmount"`
	Deadline     *time.Time `json:"deadline"`
	Color        string     `json:"color"`
}

func (h *handler) createGoal(c *gin.Context) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpError(c, http.StatusBadRequest, "invalid request body: %s", err)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		httpError(c, http.StatusBadRequest, "name is required")
		return
	}
	if req.TargetAmount == nil {
		httpError(c, http.StatusBadRequest, "targetAmount is required")
		return
	}

	color := req.Color
	if color == "" {
		color = ledger.GoalColors[len(h.store.Goals())%len(ledger.GoalColors)]
	}

	g := h.store.AddGoal(c.Request.Context(), ledger.NewGoal(req.Name, *req.TargetAmount, req.Deadline, color))
	c.JSON(http.StatusCreated, g)
}

func (h *handler) contribute(c *gin.Context) {
	amount, ok := bindAmount(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if !h.store.UpdateGoalProgress(c.Request.Context(), id, amount) {
		httpError(c, http.StatusNotFound, "no goal with id %q", id)
		return
	}

	g, _ := h.store.Goal(id)
	c.JSON(http.StatusOK, g)
}

func (h *handler) getStatistics(c *gin.Context) {
	now := h.store.Now()
	year, month, err := statistics.ParseMonth(c.Query("month"), now)
	if err != nil {
		httpError(c, http.StatusBadRequest, "%s", err)
		return
	}

	c.JSON(http.StatusOK, statistics.Compute(h.store.Transactions(), h.store.Budgets(), year, month, now))
}

func (h *handler) export(c *gin.Context) {
	var (
		buf         bytes.Buffer
		err         error
		name        string
		contentType string
	)

	switch c.DefaultQuery("format", "json") {
	case "json":
		err = ledger.ExportJSON(&buf, h.store.Transactions())
		name, contentType = ledger.ExportFileName, "application/json"
	case "xlsx":
		err = ledger.ExportXLSX(&buf, h.store.Transactions())
		name, contentType = ledger.ExportXLSXFileName, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		httpError(c, http.StatusBadRequest, "invalid format %q, expected json or xlsx", c.Query("format"))
		return
	}
	if err != nil {
		httpError(c, http.StatusInternalServerError, "export failed: %s", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

type askRequest struct {
	Message string `json:"message"`
}

type askResponse struct {
	assistant.Response
	Messages []assistant.Message `json:"messages"`
}

func (h *handler) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpError(c, http.StatusBadRequest, "invalid request body: %s", err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		httpError(c, http.StatusBadRequest, "message is required")
		return
	}

	resp, err := h.conversation.Ask(c.Request.Context(), h.responder, req.Message)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			httpError(c, http.StatusServiceUnavailable, "request canceled")
			return
		}
		httpError(c, http.StatusBadGateway, "assistant failed: %s", err)
		return
	}

	c.JSON(http.StatusOK, askResponse{Response: resp, Messages: h.conversation.Messages()})
}
