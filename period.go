package main

import (
	"fmt"
	"time"
)

// Period is the calendar month the dashboard summarizes.
type Period struct {
	start time.Time
	end   time.Time
}

func (p *Period) String() string {
	if p.start.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %d", p.start.Month(), p.start.Year())
}

func (p *Period) startDate() string {
	return p.start.Format(time.DateOnly)
}

func (p *Period) endDate() string {
	return p.end.Format(time.DateOnly)
}

func (p *Period) setPeriod(current time.Time) {
	p.start = time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, current.Location())
	p.end = p.start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}
