package ledger_test

import (
	"errors"
	"testing"
	"time"

	"github.com/carlmjohnson/be"

	"github.com/Rshep3087/finpal/ledger"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"12.50", 12.5, false},
		{" $1,200 ", 1200, false},
		{"-3", -3, false},
		{"-$4.75", -4.75, false},
		{"", 0, true},
		{"abc", 0, true},
		{"$", 0, true},
		{"NaN", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ledger.ParseAmount(tt.in)
			be.Equal(t, tt.wantErr, err != nil)
			if tt.wantErr {
				be.True(t, errors.Is(err, ledger.ErrInvalidAmount))
				return
			}
			be.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ledger.ParseDate("2025-03-07", time.UTC)
	be.NilErr(t, err)
	be.True(t, got.Equal(time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC)))

	got, err = ledger.ParseDate("", time.UTC)
	be.NilErr(t, err)
	be.True(t, got.IsZero())

	_, err = ledger.ParseDate("03/07/2025", time.UTC)
	be.Nonzero(t, err)
}

func TestNewGoal(t *testing.T) {
	g := ledger.NewGoal("Bike", 800, nil, "#2A9D8F")
	be.Equal(t, ledger.SavingsCategory, g.Category)
	be.Equal(t, 0.0, g.CurrentAmount)
	be.Equal(t, 800.0, g.TargetAmount)
}
