package parse

import (
	"context"
	"regexp"
	"strconv"
	"time"

	"github.com/Rshep3087/finpal/ledger"
)

var amountPattern = regexp.MustCompile(`(?i)\$\s*(\d+(\.\d{1,2})?)|(\d+(\.\d{1,2})?)(?:\s+dollars|\s+USD)`)

type categoryRule struct {
	category string
	pattern  *regexp.Regexp
}

// Rules are tried in order; "gas" matches Transportation before Utilities.
var categoryRules = []categoryRule{
	{"Groceries", regexp.MustCompile(`(?i)groceries|grocery|supermarket|food shop|whole foods`)},
	{"Dining", regexp.MustCompile(`(?i)restaurant|dinner|lunch|breakfast|coffee|cafe|dining`)},
	{"Entertainment", regexp.MustCompile(`(?i)movie|cinema|theater|concert|entertainment`)},
	{"Transportation", regexp.MustCompile(`(?i)transport|uber|lyft|taxi|bus|train|gas|fuel`)},
	{"Utilities", regexp.MustCompile(`(?i)utility|electric|electricity|water|gas|bill|internet`)},
	{"Shopping", regexp.MustCompile(`(?i)shopping|clothes|clothing|purchase|buy|bought|shoes|mall`)},
	{"Healthcare", regexp.MustCompile(`(?i)health|doctor|medical|pharmacy|medicine|prescription`)},
	{"Housing", regexp.MustCompile(`(?i)rent|mortgage|housing|apartment`)},
	{"Salary", regexp.MustCompile(`(?i)salary|income|paycheck|earning|wage`)},
	{"Investments", regexp.MustCompile(`(?i)investment|dividend|stock|bond|mutual fund|etf`)},
}

var incomeCategories = map[string]bool{
	"Salary":      true,
	"Investments": true,
}

// KeywordClassifier classifies text with fixed regular expressions.
type KeywordClassifier struct {
	// Now returns the date given to classified transactions. Defaults to
	// time.Now.
	Now func() time.Time
}

// Classify never fails: text without an amount yields 0 and text without a
// known keyword yields ledger.UncategorizedCategory.
func (c KeywordClassifier) Classify(_ context.Context, text string) (ledger.Transaction, error) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	category := Category(text)
	txType := ledger.Expense
	if incomeCategories[category] {
		txType = ledger.Income
	}

	return ledger.Transaction{
		Date:        now(),
		Amount:      Amount(text),
		Description: text,
		Category:    category,
		Type:        txType,
	}, nil
}

// Amount returns the first dollar amount in text, or 0.
func Amount(text string) float64 {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}

	digits := m[1]
	if digits == "" {
		digits = m[3]
	}

	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0
	}
	return v
}

// Category returns the first category whose keywords appear in text.
func Category(text string) string {
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(text) {
			return rule.category
		}
	}
	return ledger.UncategorizedCategory
}
