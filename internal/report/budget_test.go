package report

import (
	"testing"

	"financehq/internal/core"
)

func budget(category string, limit int64) core.BudgetTarget {
	return core.BudgetTarget{Category: category, MonthlyLimit: core.Money{Cents: limit * 100}}
}

func findLine(t *testing.T, lines []BudgetLine, category string) BudgetLine {
	t.Helper()
	for _, l := range lines {
		if l.Category == category {
			return l
		}
	}
	t.Fatalf("category %q missing from %+v", category, lines)
	return BudgetLine{}
}

func TestCompareBudgetsStatuses(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-01-03", 600, "Food"),      // over a 500 limit
		tx("2025-01-04", 50, "Impulse"),    // no limit row at all
		tx("2025-01-05", 450, "Transport"), // 90% of 500
	}
	budgets := []core.BudgetTarget{
		budget("Food", 500),
		budget("Transport", 500),
		budget("Savings", 500), // budgeted, nothing spent
		budget("Hobby", 0),     // zero limit, nothing spent
	}
	lines := CompareBudgets(txs, budgets, jan25())
	if len(lines) != 5 {
		t.Fatalf("outer join should produce 5 lines, got %d: %+v", len(lines), lines)
	}

	food := findLine(t, lines, "Food")
	if food.UsagePercent != 120 || food.Status != StatusOverBudget {
		t.Fatalf("food: %+v", food)
	}
	if food.ClampedPercent != 100 {
		t.Fatalf("food clamped = %v", food.ClampedPercent)
	}

	impulse := findLine(t, lines, "Impulse")
	if impulse.UsagePercent != 100 || impulse.Status != StatusUnbudgeted {
		t.Fatalf("impulse: %+v", impulse)
	}

	transport := findLine(t, lines, "Transport")
	if transport.UsagePercent != 90 || transport.Status != StatusWarning {
		t.Fatalf("transport: %+v", transport)
	}

	savings := findLine(t, lines, "Savings")
	if savings.UsagePercent != 0 || savings.Status != StatusOnTrack {
		t.Fatalf("savings: %+v", savings)
	}

	hobby := findLine(t, lines, "Hobby")
	if hobby.UsagePercent != 0 || hobby.Status != StatusOnTrack {
		t.Fatalf("hobby: %+v", hobby)
	}
}

func TestCompareBudgetsDuplicateLimitsMerge(t *testing.T) {
	txs := []core.Transaction{tx("2025-01-03", 300, "Food")}
	budgets := []core.BudgetTarget{budget("Food", 200), budget("Food", 200)}
	lines := CompareBudgets(txs, budgets, jan25())
	food := findLine(t, lines, "Food")
	if food.Limit.Cents != 40000 {
		t.Fatalf("duplicate limits should sum: %+v", food)
	}
	if food.UsagePercent != 75 || food.Status != StatusOnTrack {
		t.Fatalf("food: %+v", food)
	}
}

func TestCompareBudgetsSortedByCategory(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-01-03", 10, "Zeta"),
		tx("2025-01-03", 10, "Alpha"),
	}
	lines := CompareBudgets(txs, nil, jan25())
	if len(lines) != 2 || lines[0].Category != "Alpha" || lines[1].Category != "Zeta" {
		t.Fatalf("not sorted by category: %+v", lines)
	}
}

// End-to-end shape: Jan 2025 transactions against a Food-only budget.
func TestCompareBudgetsEndToEnd(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-01-05", 200, "Food"),
		tx("2025-01-06", 300, "Food"),
		tx("2025-01-07", 100, "Transport"),
	}
	budgets := []core.BudgetTarget{budget("Food", 400)}

	sum := Spend(txs, jan25())
	if sum.Total.Cents != 60000 {
		t.Fatalf("total spend = %d", sum.Total.Cents)
	}

	lines := CompareBudgets(txs, budgets, jan25())
	food := findLine(t, lines, "Food")
	if food.Spent.Cents != 50000 || food.UsagePercent != 125 || food.Status != StatusOverBudget {
		t.Fatalf("food: %+v", food)
	}
	transport := findLine(t, lines, "Transport")
	if transport.Spent.Cents != 10000 || transport.Status != StatusUnbudgeted {
		t.Fatalf("transport: %+v", transport)
	}
}
