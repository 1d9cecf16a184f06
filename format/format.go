// Package format renders amounts, dates and percentages for display.
package format

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
)

// Currency formats amount as US dollars, e.g. $1,234.50 or -$3.00.
func Currency(amount float64) string {
	return money.NewFromFloat(amount, money.USD).Display()
}

// Date formats t as a short month and day, e.g. "Jan 2".
func Date(t time.Time) string {
	return t.Format("Jan 2")
}

// LongDate formats t as "January 2, 2006".
func LongDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// Percentage rounds v to the nearest integer, halves up, and appends "%".
func Percentage(v float64) string {
	return strconv.FormatFloat(math.Floor(v+0.5), 'f', 0, 64) + "%"
}

var compactUnits = []struct {
	size   float64
	suffix string
}{
	{1, ""},
	{1e3, "K"},
	{1e6, "M"},
	{1e9, "B"},
	{1e12, "T"},
}

// CompactNumber abbreviates v with K, M, B or T suffixes keeping at most
// two significant digits after the leading one, e.g. 1.2K, 12K, 123K.
// A value that rounds up to 1000 of one unit is shown in the next, so
// 999_999 is 1M.
func CompactNumber(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	i := 0
	for i+1 < len(compactUnits) && v >= compactUnits[i+1].size {
		i++
	}

	scaled := compactRound(v / compactUnits[i].size)
	if scaled >= 1000 && i+1 < len(compactUnits) {
		i++
		scaled = compactRound(v / compactUnits[i].size)
	}

	return sign + strings.TrimSuffix(strconv.FormatFloat(scaled, 'f', 1, 64), ".0") + compactUnits[i].suffix
}

// compactRound keeps one decimal below 10 and none above.
func compactRound(v float64) float64 {
	if v < 10 {
		return math.Round(v*10) / 10
	}
	return math.Round(v)
}
