package parse

import (
	"context"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/carlmjohnson/be"

	"github.com/Rshep3087/finpal/ledger"
)

func TestKeywordClassifier(t *testing.T) {
	now := time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC)
	c := KeywordClassifier{Now: func() time.Time { return now }}

	tests := []struct {
		text         string
		wantAmount   float64
		wantCategory string
		wantType     ledger.TransactionType
	}{
		{"Spent $45 on lunch today at Italian restaurant", 45, "Dining", ledger.Expense},
		{"Add $120 for the electricity bill", 120, "Utilities", ledger.Expense},
		{"Coffee shop purchase for $4.75", 4.75, "Dining", ledger.Expense},
		{"New expense of $85 for groceries at Whole Foods", 85, "Groceries", ledger.Expense},
		{"Got my paycheck of 2500 dollars", 2500, "Salary", ledger.Income},
		{"dividend 12.50 USD", 12.5, "Investments", ledger.Income},
		{"Filled up on gas for $ 30", 30, "Transportation", ledger.Expense},
		{"Something happened", 0, ledger.UncategorizedCategory, ledger.Expense},
		{"Transfer $200 to my savings account", 200, ledger.UncategorizedCategory, ledger.Expense},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := c.Classify(context.Background(), tt.text)
			be.NilErr(t, err)
			be.Equal(t, tt.wantAmount, got.Amount)
			be.Equal(t, tt.wantCategory, got.Category)
			be.Equal(t, tt.wantType, got.Type)
			be.Equal(t, tt.text, got.Description)
			be.True(t, got.Date.Equal(now))
		})
	}
}

func TestAmountFirstMatchWins(t *testing.T) {
	be.Equal(t, 10.0, Amount("$10 then $20"))
	be.Equal(t, 3.5, Amount("3.5 usd and $9"))
	be.Equal(t, 0.0, Amount("about 40 bucks"))
}

func TestMockReceiptExtractor(t *testing.T) {
	now := time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC)
	e := NewMockReceiptExtractor(rand.New(rand.NewPCG(5, 6)))
	e.Now = func() time.Time { return now }

	for range 50 {
		got, err := e.Extract(context.Background(), strings.NewReader("ignored"))
		be.NilErr(t, err)
		be.Equal(t, ledger.Expense, got.Type)
		be.True(t, got.Amount >= 5 && got.Amount <= 156)
		be.True(t, slices.Contains(receiptCategories, got.Category))
		be.True(t, strings.HasPrefix(got.Description, "Purchase at "))
		be.True(t, !got.Date.After(now) && !got.Date.Before(now.AddDate(0, 0, -4)))
	}
}

func TestMockTranscriber(t *testing.T) {
	m := NewMockTranscriber(rand.New(rand.NewPCG(1, 1)))
	m.Delay = time.Millisecond

	got, err := m.Transcribe(context.Background(), nil)
	be.NilErr(t, err)
	be.True(t, slices.Contains(Transcripts, got))
}

func TestMockTranscriberCanceled(t *testing.T) {
	m := NewMockTranscriber(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Transcribe(ctx, nil)
	be.Equal(t, context.Canceled, err)
}
