package main

import (
	"testing"

	"github.com/carlmjohnson/be"

	"github.com/Rshep3087/finpal/ledger"
)

func TestNextTimeRange(t *testing.T) {
	tests := []struct {
		current  ledger.TimeRange
		expected ledger.TimeRange
	}{
		{"", ledger.PastWeek},
		{ledger.AllTime, ledger.PastWeek},
		{ledger.PastWeek, ledger.PastMonth},
		{ledger.PastMonth, ledger.PastQuarter},
		{ledger.PastQuarter, ledger.AllTime},
	}

	for _, tt := range tests {
		t.Run(string(tt.current), func(t *testing.T) {
			be.Equal(t, tt.expected, nextTimeRange(tt.current))
		})
	}
}

func TestTimeRangeLabel(t *testing.T) {
	be.Equal(t, "all time", timeRangeLabel(ledger.AllTime))
	be.Equal(t, "past week", timeRangeLabel(ledger.PastWeek))
	be.Equal(t, "past month", timeRangeLabel(ledger.PastMonth))
	be.Equal(t, "past 3 months", timeRangeLabel(ledger.PastQuarter))
}

func TestNextCategory(t *testing.T) {
	categories := []string{"Food", "Transport"}

	tests := []struct {
		name     string
		current  string
		expected string
	}{
		{name: "unset starts after all", current: "", expected: "Food"},
		{name: "all", current: ledger.AllCategories, expected: "Food"},
		{name: "middle", current: "Food", expected: "Transport"},
		{name: "wraps to all", current: "Transport", expected: ledger.AllCategories},
		{name: "unknown restarts", current: "Rent", expected: ledger.AllCategories},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, tt.expected, nextCategory(tt.current, categories))
		})
	}
}
