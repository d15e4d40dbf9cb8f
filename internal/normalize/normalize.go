// Package normalize turns raw rectangular text grids (header row plus data
// rows, as read from the backing spreadsheet) into typed tables.
//
// The policies here are deliberately lossy: a row whose date does not parse
// is dropped (a spend without a date is meaningless), while a row whose
// amount or duration does not parse is kept with a zero value so the event
// stays visible for audit.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"financehq/internal/core"
)

// ErrMissingColumn reports a declared semantic column absent from the header
// row. The loader decides whether that is fatal (transactions) or degrades
// the dataset to empty (budgets, time logs).
var ErrMissingColumn = errors.New("missing required column")

type (
	// TransactionSchema names the semantic columns of the transactions sheet.
	// Date and Amount are required; the rest default to empty text when the
	// column is absent.
	TransactionSchema struct {
		Date        string
		Amount      string
		Category    string
		Description string
		PaymentMode string
	}

	// BudgetSchema names the semantic columns of the budgets sheet.
	BudgetSchema struct {
		Category string
		Limit    string
	}

	// TimeLogSchema names the semantic columns of the time log sheet and
	// declares which duration convention the sheet uses. The convention is
	// stated configuration, never inferred per cell.
	TimeLogSchema struct {
		Date     string
		Category string
		Activity string
		Duration string
		Unit     core.DurationUnit
	}
)

func DefaultTransactionSchema() TransactionSchema {
	return TransactionSchema{
		Date:        "Timestamp",
		Amount:      "Amount",
		Category:    "Category",
		Description: "Description",
		PaymentMode: "Payment Mode",
	}
}

func DefaultBudgetSchema() BudgetSchema {
	return BudgetSchema{Category: "Category", Limit: "Monthly Limit"}
}

func DefaultTimeLogSchema(unit core.DurationUnit) TimeLogSchema {
	return TimeLogSchema{
		Date:     "Date",
		Category: "Category",
		Activity: "Activity",
		Duration: "Hours",
		Unit:     unit,
	}
}

// Record is one data row keyed by header name. Columns the typed schemas do
// not know about pass through untouched as opaque text.
type Record map[string]string

// Records converts a grid into header-keyed records. Rows shorter than the
// header are padded with empty text; rows longer than the header have their
// trailing cells dropped. A grid with no data rows yields an empty slice.
func Records(grid [][]string) []Record {
	if len(grid) < 2 {
		return nil
	}
	headers := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		headers[i] = strings.TrimSpace(h)
	}
	out := make([]Record, 0, len(grid)-1)
	for _, row := range grid[1:] {
		rec := make(Record, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	return out
}

// lookup resolves a declared column name against the header set,
// case-insensitively and ignoring surrounding whitespace.
func lookup(grid [][]string, name string) (string, bool) {
	if len(grid) == 0 {
		return "", false
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for _, h := range grid[0] {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			return strings.TrimSpace(h), true
		}
	}
	return "", false
}

// Transactions normalizes the transactions grid. Missing Date or Amount
// columns are a configuration error; rows with unparseable dates are
// dropped, unparseable amounts become zero.
func Transactions(grid [][]string, sch TransactionSchema) ([]core.Transaction, error) {
	dateCol, ok := lookup(grid, sch.Date)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, sch.Date)
	}
	amountCol, ok := lookup(grid, sch.Amount)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, sch.Amount)
	}
	catCol, _ := lookup(grid, sch.Category)
	descCol, _ := lookup(grid, sch.Description)
	modeCol, _ := lookup(grid, sch.PaymentMode)

	recs := Records(grid)
	out := make([]core.Transaction, 0, len(recs))
	for _, rec := range recs {
		ts, ok := core.ParseDate(rec[dateCol])
		if !ok {
			continue
		}
		out = append(out, core.Transaction{
			Timestamp:   ts,
			Amount:      core.ParseAmount(rec[amountCol]),
			Category:    strings.TrimSpace(rec[catCol]),
			Description: rec[descCol],
			PaymentMode: strings.TrimSpace(rec[modeCol]),
			Period:      core.PeriodOf(ts),
		})
	}
	return out, nil
}

// Budgets normalizes the budget targets grid. Rows without a category are
// skipped; duplicate categories are kept as-is and sum-merged downstream.
func Budgets(grid [][]string, sch BudgetSchema) ([]core.BudgetTarget, error) {
	catCol, ok := lookup(grid, sch.Category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, sch.Category)
	}
	limitCol, ok := lookup(grid, sch.Limit)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, sch.Limit)
	}

	recs := Records(grid)
	out := make([]core.BudgetTarget, 0, len(recs))
	for _, rec := range recs {
		cat := strings.TrimSpace(rec[catCol])
		if cat == "" {
			continue
		}
		out = append(out, core.BudgetTarget{
			Category:     cat,
			MonthlyLimit: core.ParseAmount(rec[limitCol]),
		})
	}
	return out, nil
}

// TimeLogs normalizes the time log grid under the schema's declared duration
// convention. Rows with unparseable dates are dropped, unparseable durations
// become zero hours.
func TimeLogs(grid [][]string, sch TimeLogSchema) ([]core.TimeLogEntry, error) {
	if !sch.Unit.IsValid() {
		return nil, fmt.Errorf("invalid duration unit %q", sch.Unit)
	}
	dateCol, ok := lookup(grid, sch.Date)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, sch.Date)
	}
	durCol, ok := lookup(grid, sch.Duration)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, sch.Duration)
	}
	catCol, _ := lookup(grid, sch.Category)
	actCol, _ := lookup(grid, sch.Activity)

	recs := Records(grid)
	out := make([]core.TimeLogEntry, 0, len(recs))
	for _, rec := range recs {
		day, ok := core.ParseDate(rec[dateCol])
		if !ok {
			continue
		}
		out = append(out, core.TimeLogEntry{
			Date:     day,
			Category: strings.TrimSpace(rec[catCol]),
			Activity: strings.TrimSpace(rec[actCol]),
			Hours:    core.ParseDurationHours(rec[durCol], sch.Unit),
			Period:   core.PeriodOf(day),
		})
	}
	return out, nil
}
