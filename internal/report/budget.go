package report

import (
	"sort"

	"financehq/internal/core"
)

// BudgetStatus classifies a category's budget usage for the period.
type BudgetStatus string

const (
	StatusOnTrack    BudgetStatus = "on-track"    // usage < 80%
	StatusWarning    BudgetStatus = "warning"     // 80% <= usage <= 100%
	StatusOverBudget BudgetStatus = "over-budget" // usage > 100%
	StatusUnbudgeted BudgetStatus = "unbudgeted"  // spend with no limit to measure against
)

// BudgetLine is one row of the budget-vs-actual comparison.
type BudgetLine struct {
	Category string
	Limit    core.Money
	Spent    core.Money

	// UsagePercent is the raw value; ClampedPercent is bounded to [0,100]
	// for progress-style rendering.
	UsagePercent   float64
	ClampedPercent float64
	Status         BudgetStatus
}

// CompareBudgets outer-joins the period's per-category spend with the budget
// targets: categories present on either side appear in the result, so
// unbudgeted spend and budgeted-but-unspent categories both surface.
// Duplicate budget rows for a category sum-merge.
//
// Usage rules: with a positive limit, usage = 100*spent/limit. With no limit
// (or a zero one) and positive spend, usage is pinned to exactly 100 and the
// row is flagged unbudgeted rather than producing a divide-by-zero artifact.
func CompareBudgets(txs []core.Transaction, budgets []core.BudgetTarget, p core.Period) []BudgetLine {
	spent := map[string]int64{}
	for _, t := range FilterTransactions(txs, p) {
		spent[t.Category] += t.Amount.Cents
	}
	limits := map[string]int64{}
	hasLimit := map[string]bool{}
	for _, b := range budgets {
		limits[b.Category] += b.MonthlyLimit.Cents
		hasLimit[b.Category] = true
	}

	categories := map[string]struct{}{}
	for c := range spent {
		categories[c] = struct{}{}
	}
	for c := range limits {
		categories[c] = struct{}{}
	}

	lines := make([]BudgetLine, 0, len(categories))
	for cat := range categories {
		line := BudgetLine{
			Category: cat,
			Limit:    core.Money{Cents: limits[cat]},
			Spent:    core.Money{Cents: spent[cat]},
		}
		switch {
		case line.Limit.Cents > 0:
			line.UsagePercent = 100 * float64(line.Spent.Cents) / float64(line.Limit.Cents)
			switch {
			case line.UsagePercent > 100:
				line.Status = StatusOverBudget
			case line.UsagePercent >= 80:
				line.Status = StatusWarning
			default:
				line.Status = StatusOnTrack
			}
		case line.Spent.Cents > 0:
			line.UsagePercent = 100
			line.Status = StatusUnbudgeted
		default:
			line.UsagePercent = 0
			if hasLimit[cat] {
				line.Status = StatusOnTrack
			} else {
				line.Status = StatusUnbudgeted
			}
		}
		line.ClampedPercent = clampPercent(line.UsagePercent)
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Category < lines[j].Category
	})
	return lines
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
