package core

import (
	"fmt"
	"time"
)

// Period is a year-month granule, the primary grouping and filter key for
// every aggregate. Keys sort lexicographically in chronological order.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf derives the period a timestamp falls into.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod parses a "2006-01" key.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("parse period %q: %w", s, err)
	}
	return PeriodOf(t), nil
}

// Key returns the sortable "2006-01" form.
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Label returns the human-readable form, e.g. "January 2025".
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// Days returns the number of calendar days in the month.
func (p Period) Days() int {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Start returns midnight UTC on the first day of the month.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Day returns midnight UTC on the given 1-based day of the month.
func (p Period) Day(n int) time.Time {
	return time.Date(p.Year, p.Month, n, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month
}

func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}
