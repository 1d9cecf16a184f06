package format

import (
	"testing"
	"time"

	"github.com/carlmjohnson/be"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{4.75, "$4.75"},
		{1234.5, "$1,234.50"},
		{-3, "-$3.00"},
		{1000000, "$1,000,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			be.Equal(t, tt.want, Currency(tt.amount))
		})
	}
}

func TestDates(t *testing.T) {
	d := time.Date(2025, time.March, 7, 18, 30, 0, 0, time.UTC)
	be.Equal(t, "Mar 7", Date(d))
	be.Equal(t, "March 7, 2025", LongDate(d))
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0%"},
		{49.4, "49%"},
		{49.5, "50%"},
		{100, "100%"},
		{66.666, "67%"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			be.Equal(t, tt.want, Percentage(tt.v))
		})
	}
}

func TestCompactNumber(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{999, "999"},
		{1200, "1.2K"},
		{1000, "1K"},
		{12000, "12K"},
		{123456, "123K"},
		{1500000, "1.5M"},
		{2000000000, "2B"},
		{1e12, "1T"},
		{-4500, "-4.5K"},
		{999.6, "1K"},
		{999_999, "1M"},
		{9.96, "10"},
		{0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			be.Equal(t, tt.want, CompactNumber(tt.v))
		})
	}
}
