package report

import (
	"math"
	"sort"
	"strings"

	"financehq/internal/core"
)

// StandardWorkingDays is the default working-days-per-month constant used to
// project logged effort onto a full month.
const StandardWorkingDays = 22

type (
	// CategoryHours is a per-category hour total.
	CategoryHours struct {
		Category string
		Hours    float64
	}

	// GroupHours is the summed hours for one caller-defined category group.
	GroupHours struct {
		Name  string
		Hours float64
	}

	// TimeSummary holds the period's time-log aggregates.
	TimeSummary struct {
		Period     core.Period
		TotalHours float64
		ByCategory []CategoryHours // descending by hours
		Groups     []GroupHours    // ascending by name
	}

	// RateEstimate is the effective-hourly-rate proxy. It projects the
	// average logged effort per active day onto a standard working month;
	// treat it as an estimate, not payroll math.
	RateEstimate struct {
		EffortHours           float64
		DistinctDays          int
		ProjectedMonthlyHours float64
		Rate                  core.Money // zero when there is nothing to project from
	}
)

// Time computes total and per-category hours for the period, plus sums for
// the caller-supplied category groups (group name -> member categories).
// Group membership matches case-insensitively.
func Time(entries []core.TimeLogEntry, p core.Period, groups map[string][]string) TimeSummary {
	sum := TimeSummary{Period: p}
	byCat := map[string]float64{}
	for _, e := range FilterTimeLogs(entries, p) {
		sum.TotalHours += e.Hours
		byCat[e.Category] += e.Hours
	}

	sum.ByCategory = make([]CategoryHours, 0, len(byCat))
	for cat, hours := range byCat {
		sum.ByCategory = append(sum.ByCategory, CategoryHours{Category: cat, Hours: hours})
	}
	sort.Slice(sum.ByCategory, func(i, j int) bool {
		if sum.ByCategory[i].Hours != sum.ByCategory[j].Hours {
			return sum.ByCategory[i].Hours > sum.ByCategory[j].Hours
		}
		return sum.ByCategory[i].Category < sum.ByCategory[j].Category
	})

	sum.Groups = make([]GroupHours, 0, len(groups))
	for name, members := range groups {
		var hours float64
		for cat, h := range byCat {
			if containsFold(members, cat) {
				hours += h
			}
		}
		sum.Groups = append(sum.Groups, GroupHours{Name: name, Hours: hours})
	}
	sort.Slice(sum.Groups, func(i, j int) bool {
		return sum.Groups[i].Name < sum.Groups[j].Name
	})
	return sum
}

// HourlyRate estimates the real hourly pay rate for the period: hours logged
// in the effort categories, averaged over the distinct days that have any
// effort logged, projected onto standardDays working days, divided into the
// stated monthly income. Zero guards on both divisors; when either is zero
// the estimate is all zeros.
func HourlyRate(income core.Money, entries []core.TimeLogEntry, p core.Period, effortCategories []string, standardDays int) RateEstimate {
	if standardDays <= 0 {
		standardDays = StandardWorkingDays
	}
	est := RateEstimate{}
	days := map[string]struct{}{}
	for _, e := range FilterTimeLogs(entries, p) {
		if !containsFold(effortCategories, e.Category) {
			continue
		}
		est.EffortHours += e.Hours
		days[e.Date.Format("2006-01-02")] = struct{}{}
	}
	est.DistinctDays = len(days)
	if est.DistinctDays == 0 {
		return est
	}
	est.ProjectedMonthlyHours = est.EffortHours / float64(est.DistinctDays) * float64(standardDays)
	if est.ProjectedMonthlyHours <= 0 {
		return est
	}
	est.Rate = core.Money{
		Cents: int64(math.Round(float64(income.Cents) / est.ProjectedMonthlyHours)),
	}
	return est
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}
