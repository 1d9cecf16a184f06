package main

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rshep3087/finpal/ledger"
)

var timeRanges = []ledger.TimeRange{
	ledger.AllTime,
	ledger.PastWeek,
	ledger.PastMonth,
	ledger.PastQuarter,
}

func timeRangeLabel(r ledger.TimeRange) string {
	switch r {
	case ledger.PastWeek:
		return "past week"
	case ledger.PastMonth:
		return "past month"
	case ledger.PastQuarter:
		return "past 3 months"
	}
	return "all time"
}

func nextTimeRange(r ledger.TimeRange) ledger.TimeRange {
	if r == "" {
		r = ledger.AllTime
	}
	i := slices.Index(timeRanges, r)
	return timeRanges[(i+1)%len(timeRanges)]
}

// nextCategory cycles through "all" followed by the given categories.
func nextCategory(current string, categories []string) string {
	if current == "" {
		current = ledger.AllCategories
	}
	options := append([]string{ledger.AllCategories}, categories...)
	i := slices.Index(options, current)
	return options[(i+1)%len(options)]
}

// cycleTimeRange moves the transactions list to the next time range.
func cycleTimeRange(m *model) tea.Cmd {
	m.filter.Range = nextTimeRange(m.filter.Range)
	cmd := m.refreshTransactions()
	return tea.Batch(cmd, m.transactions.NewStatusMessage(
		fmt.Sprintf("Showing %s", timeRangeLabel(m.filter.Range)),
	))
}

// cycleCategoryFilter moves the transactions list to the next category.
func cycleCategoryFilter(m *model) tea.Cmd {
	m.filter.Category = nextCategory(m.filter.Category, ledger.Categories(m.store.Transactions()))
	cmd := m.refreshTransactions()
	return tea.Batch(cmd, m.transactions.NewStatusMessage(
		fmt.Sprintf("Category: %s", m.filter.Category),
	))
}
