package ledger

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// EntryCategories are offered when entering a transaction by hand.
var EntryCategories = []string{
	"Shopping",
	"Dining",
	"Entertainment",
	"Transportation",
	"Housing",
	"Utilities",
	"Healthcare",
	"Business",
	"Salary",
	"Investments",
}

// GoalColors are assigned to goals created by the user.
var GoalColors = []string{"#2A9D8F", "#E76F51", "#E9C46A", "#84A98C", "#264653"}

// SavingsCategory is the category of user-created goals.
const SavingsCategory = "Savings"

// ParseAmount reads a user-entered amount such as "12.50", "$1,200" or
// "-3". It returns ErrInvalidAmount for anything else.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || s == "" || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if neg {
		v = -v
	}
	return v, nil
}

// ParseDate reads a YYYY-MM-DD date in loc. An empty string yields the
// zero time.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// NewGoal returns an unsaved savings goal with nothing saved yet.
func NewGoal(name string, target float64, deadline *time.Time, color string) Goal {
	return Goal{
		Name:         name,
		TargetAmount: target,
		Deadline:     deadline,
		Category:     SavingsCategory,
		Color:        color,
	}
}
