// Package report is the aggregation engine. Every function here is pure:
// the same tables, period and parameters always produce the same outputs,
// and nothing reaches back to the store.
package report

import (
	"math"
	"sort"
	"time"

	"financehq/internal/core"
)

type (
	// DayAmount is a per-calendar-day spend total.
	DayAmount struct {
		Date   time.Time
		Amount core.Money
	}

	// CategoryAmount is a per-category spend total.
	CategoryAmount struct {
		Category string
		Amount   core.Money
	}

	// SpendSummary holds the basic monthly spend aggregates.
	SpendSummary struct {
		Period     core.Period
		Total      core.Money
		Count      int
		Average    core.Money
		ByDay      []DayAmount      // ascending by date
		ByCategory []CategoryAmount // descending by amount
	}
)

// FilterTransactions returns the subset of rows in the given period.
func FilterTransactions(rows []core.Transaction, p core.Period) []core.Transaction {
	out := make([]core.Transaction, 0, len(rows))
	for _, t := range rows {
		if t.Period == p {
			out = append(out, t)
		}
	}
	return out
}

// FilterTimeLogs returns the subset of entries in the given period.
func FilterTimeLogs(entries []core.TimeLogEntry, p core.Period) []core.TimeLogEntry {
	out := make([]core.TimeLogEntry, 0, len(entries))
	for _, e := range entries {
		if e.Period == p {
			out = append(out, e)
		}
	}
	return out
}

// Spend computes the period's totals, count, average and the per-day and
// per-category splits. A period with no rows yields zeros, not an error.
func Spend(rows []core.Transaction, p core.Period) SpendSummary {
	sum := SpendSummary{Period: p}
	byDay := map[time.Time]int64{}
	byCat := map[string]int64{}
	for _, t := range FilterTransactions(rows, p) {
		sum.Total.Cents += t.Amount.Cents
		sum.Count++
		day := p.Day(t.Timestamp.Day())
		byDay[day] += t.Amount.Cents
		byCat[t.Category] += t.Amount.Cents
	}
	if sum.Count > 0 {
		sum.Average = core.Money{
			Cents: int64(math.Round(float64(sum.Total.Cents) / float64(sum.Count))),
		}
	}

	sum.ByDay = make([]DayAmount, 0, len(byDay))
	for day, cents := range byDay {
		sum.ByDay = append(sum.ByDay, DayAmount{Date: day, Amount: core.Money{Cents: cents}})
	}
	sort.Slice(sum.ByDay, func(i, j int) bool {
		return sum.ByDay[i].Date.Before(sum.ByDay[j].Date)
	})

	sum.ByCategory = make([]CategoryAmount, 0, len(byCat))
	for cat, cents := range byCat {
		sum.ByCategory = append(sum.ByCategory, CategoryAmount{Category: cat, Amount: core.Money{Cents: cents}})
	}
	sort.Slice(sum.ByCategory, func(i, j int) bool {
		if sum.ByCategory[i].Amount.Cents != sum.ByCategory[j].Amount.Cents {
			return sum.ByCategory[i].Amount.Cents > sum.ByCategory[j].Amount.Cents
		}
		return sum.ByCategory[i].Category < sum.ByCategory[j].Category
	})
	return sum
}
