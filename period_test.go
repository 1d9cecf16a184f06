package main

import (
	"testing"
	"time"

	"github.com/carlmjohnson/be"
)

func TestPeriodString(t *testing.T) {
	tests := []struct {
		name     string
		current  time.Time
		expected string
	}{
		{
			name:     "unset period",
			expected: "",
		},
		{
			name:     "mid month",
			current:  time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC),
			expected: "March 2025",
		},
		{
			name:     "new year",
			current:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: "January 2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Period{}
			if !tt.current.IsZero() {
				p.setPeriod(tt.current)
			}
			be.Equal(t, tt.expected, p.String())
		})
	}
}

func TestPeriodSetPeriod(t *testing.T) {
	tests := []struct {
		name        string
		current     time.Time
		expectStart string
		expectEnd   string
	}{
		{
			name:        "mid month",
			current:     time.Date(2023, 12, 15, 10, 30, 0, 0, time.UTC),
			expectStart: "2023-12-01",
			expectEnd:   "2023-12-31",
		},
		{
			name:        "start of month",
			current:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expectStart: "2024-01-01",
			expectEnd:   "2024-01-31",
		},
		{
			name:        "leap february",
			current:     time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC),
			expectStart: "2024-02-01",
			expectEnd:   "2024-02-29",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Period{}
			p.setPeriod(tt.current)

			be.Equal(t, tt.expectStart, p.startDate())
			be.Equal(t, tt.expectEnd, p.endDate())
			be.Equal(t, time.Date(tt.current.Year(), tt.current.Month(), 1, 0, 0, 0, 0, time.UTC), p.start)
		})
	}
}
