package report

import (
	"math"
	"time"

	"financehq/internal/core"
)

// Pace says whether actual remaining budget is ahead of or behind the ideal
// linear depletion at today's position in the month.
type Pace string

const (
	PaceAhead  Pace = "ahead"
	PaceBehind Pace = "behind"
	// PaceUnknown means today falls outside the selected period.
	PaceUnknown Pace = ""
)

type (
	// BurndownDay is one point on the burndown curve.
	BurndownDay struct {
		Date       time.Time
		Spent      core.Money
		Cumulative core.Money
		Remaining  core.Money // total budget minus cumulative; can go negative
		Ideal      core.Money // linear depletion reaching zero on the last day
	}

	// BurndownReport covers the full calendar month, missing days zero-filled.
	BurndownReport struct {
		Period      core.Period
		TotalBudget core.Money
		Days        []BurndownDay

		// Pace and Buffer are set only when today falls inside the period.
		// Buffer is actual remaining minus ideal remaining at today's day:
		// positive means ahead of schedule.
		Pace   Pace
		Buffer core.Money
	}
)

// Burndown builds the cumulative-remaining curve for the period against an
// idealized linear pace. Daily spend is reindexed onto the month's full
// calendar-day sequence with missing days filled with zero.
func Burndown(txs []core.Transaction, totalBudget core.Money, p core.Period, today time.Time) BurndownReport {
	daily := map[int]int64{}
	for _, t := range FilterTransactions(txs, p) {
		daily[t.Timestamp.Day()] += t.Amount.Cents
	}

	days := p.Days()
	rep := BurndownReport{Period: p, TotalBudget: totalBudget, Days: make([]BurndownDay, 0, days)}
	var cumulative int64
	for day := 1; day <= days; day++ {
		cumulative += daily[day]
		rep.Days = append(rep.Days, BurndownDay{
			Date:       p.Day(day),
			Spent:      core.Money{Cents: daily[day]},
			Cumulative: core.Money{Cents: cumulative},
			Remaining:  core.Money{Cents: totalBudget.Cents - cumulative},
			Ideal:      core.Money{Cents: idealRemaining(totalBudget.Cents, day, days)},
		})
	}

	if p.Contains(today) {
		pos := rep.Days[today.Day()-1]
		rep.Buffer = core.Money{Cents: pos.Remaining.Cents - pos.Ideal.Cents}
		if rep.Buffer.Cents > 0 {
			rep.Pace = PaceAhead
		} else {
			rep.Pace = PaceBehind
		}
	}
	return rep
}

// idealRemaining is total - (total/days)*day, which depletes linearly and
// lands on exactly zero on the month's last day.
func idealRemaining(totalCents int64, day, days int) int64 {
	spent := math.Round(float64(totalCents) * float64(day) / float64(days))
	return totalCents - int64(spent)
}
