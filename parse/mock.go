package parse

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/Rshep3087/finpal/ledger"
)

var (
	receiptMerchants = []string{
		"Whole Foods Market",
		"Target",
		"Walmart",
		"Trader Joe's",
		"CVS Pharmacy",
		"Starbucks Coffee",
		"Amazon",
		"Apple Store",
		"Best Buy",
		"Home Depot",
	}

	receiptCategories = []string{"Groceries", "Shopping", "Dining", "Healthcare", "Entertainment"}

	// Transcripts returned by MockTranscriber.
	Transcripts = []string{
		"Spent $45 on lunch today at Italian restaurant",
		"Add $120 for the electricity bill",
		"Transfer $200 to my savings account",
		"New expense of $85 for groceries at Whole Foods",
		"Coffee shop purchase for $4.75",
	}
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// MockReceiptExtractor pretends to read a receipt, returning a random
// purchase from a short list of merchants.
type MockReceiptExtractor struct {
	Rand *rand.Rand
	Now  func() time.Time
}

func NewMockReceiptExtractor(r *rand.Rand) *MockReceiptExtractor {
	if r == nil {
		r = newRand()
	}
	return &MockReceiptExtractor{Rand: r, Now: time.Now}
}

// Extract ignores image.
func (e *MockReceiptExtractor) Extract(ctx context.Context, _ io.Reader) (ledger.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return ledger.Transaction{}, err
	}

	merchant := receiptMerchants[e.Rand.IntN(len(receiptMerchants))]
	category := receiptCategories[e.Rand.IntN(len(receiptCategories))]
	amount := math.Round(e.Rand.Float64()*150 + 5 + e.Rand.Float64())
	daysAgo := e.Rand.IntN(5)

	return ledger.Transaction{
		Date:        e.Now().AddDate(0, 0, -daysAgo),
		Amount:      amount,
		Description: fmt.Sprintf("Purchase at %s", merchant),
		Category:    category,
		Type:        ledger.Expense,
		Location:    merchant,
	}, nil
}

// DefaultTranscribeDelay simulates speech processing time.
const DefaultTranscribeDelay = time.Second

// MockTranscriber returns one of the canned Transcripts after Delay.
type MockTranscriber struct {
	Rand  *rand.Rand
	Delay time.Duration
}

func NewMockTranscriber(r *rand.Rand) *MockTranscriber {
	if r == nil {
		r = newRand()
	}
	return &MockTranscriber{Rand: r, Delay: DefaultTranscribeDelay}
}

// Transcribe ignores audio. It returns ctx.Err() if ctx is done before the
// delay elapses.
func (m *MockTranscriber) Transcribe(ctx context.Context, _ io.Reader) (string, error) {
	timer := time.NewTimer(m.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
	}

	return Transcripts[m.Rand.IntN(len(Transcripts))], nil
}
