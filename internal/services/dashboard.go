// Package services wires the loader and the aggregation engine into the
// operations the presentation adapter consumes: monthly overviews, period
// listings, and the append paths for new transactions and time entries.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"financehq/internal/core"
	"financehq/internal/loader"
	"financehq/internal/report"
	"financehq/internal/sheets"
)

// Config holds the aggregation parameters that are user configuration rather
// than data: income for the rate estimate, which categories count as work
// effort, and the category groups shown in the time summary.
type Config struct {
	MonthlyIncome    core.Money
	EffortCategories []string
	StandardWorkDays int
	TimeGroups       map[string][]string
}

// Overview is everything the presentation adapter needs for one period,
// as plain structured data.
type Overview struct {
	Period      core.Period
	PeriodLabel string

	Spend       report.SpendSummary
	Budgets     []report.BudgetLine
	TotalBudget core.Money
	Burndown    report.BurndownReport
	Time        report.TimeSummary
	Rate        report.RateEstimate

	Datasets  map[string]loader.DatasetStatus
	FetchedAt time.Time
}

// Dashboard orchestrates load, aggregation and writes against the backing
// tabular store.
type Dashboard struct {
	db      sheets.Database
	loader  *loader.Loader
	loadCfg loader.Config
	cfg     Config

	now func() time.Time
}

func NewDashboard(db sheets.Database, loadCfg loader.Config, cfg Config) *Dashboard {
	return &Dashboard{
		db:      db,
		loader:  loader.New(db, loadCfg),
		loadCfg: loadCfg,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Overview loads (or reuses) the current snapshot and computes the period's
// aggregates. The error is non-nil only when the primary transactions
// dataset cannot be loaded.
func (d *Dashboard) Overview(ctx context.Context, p core.Period) (Overview, error) {
	snap, err := d.loader.Load(ctx)
	if err != nil {
		return Overview{}, err
	}

	var totalBudget core.Money
	for _, b := range snap.Budgets {
		totalBudget.Cents += b.MonthlyLimit.Cents
	}

	ov := Overview{
		Period:      p,
		PeriodLabel: p.Label(),
		Spend:       report.Spend(snap.Transactions, p),
		Budgets:     report.CompareBudgets(snap.Transactions, snap.Budgets, p),
		TotalBudget: totalBudget,
		Burndown:    report.Burndown(snap.Transactions, totalBudget, p, d.now()),
		Time:        report.Time(snap.TimeLogs, p, d.cfg.TimeGroups),
		Rate: report.HourlyRate(d.cfg.MonthlyIncome, snap.TimeLogs, p,
			d.cfg.EffortCategories, d.cfg.StandardWorkDays),
		Datasets:  snap.Datasets,
		FetchedAt: snap.FetchedAt,
	}
	return ov, nil
}

// Periods lists the period keys present in the data, newest first.
func (d *Dashboard) Periods(ctx context.Context) ([]string, error) {
	snap, err := d.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Periods(), nil
}

// Refresh drops the snapshot cache so the next read refetches.
func (d *Dashboard) Refresh() {
	d.loader.Invalidate()
}

// AddTransaction validates and appends a new transaction row, then
// invalidates the cache so the next read sees it. On append failure nothing
// is invalidated and the error surfaces once.
func (d *Dashboard) AddTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("validate transaction: %w", err)
	}
	sh, err := d.transactionsSheet(ctx)
	if err != nil {
		return err
	}
	row := []string{
		t.Timestamp.In(core.IST).Format("2006-01-02 15:04:05"),
		t.Amount.String(),
		strings.TrimSpace(t.Category),
		t.Description,
		strings.TrimSpace(t.PaymentMode),
	}
	if err := sh.AppendRow(ctx, row); err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}
	slog.InfoContext(ctx, "Transaction appended",
		"category", t.Category, "amount_cents", t.Amount.Cents)
	d.loader.Invalidate()
	return nil
}

// AddTimeEntry validates and appends a new time log row, then invalidates
// the cache. The hours value is written as plain decimal hours regardless of
// the unit convention used by historical rows the sheet may hold; keep the
// sheet's declared unit as hours when writes go through here.
func (d *Dashboard) AddTimeEntry(ctx context.Context, e core.TimeLogEntry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("validate time entry: %w", err)
	}
	sh, err := d.db.Sheet(ctx, d.loadCfg.TimeLogsSheet)
	if err != nil {
		return fmt.Errorf("open time log sheet: %w", err)
	}
	row := []string{
		e.Date.Format("2006-01-02"),
		strings.TrimSpace(e.Category),
		strings.TrimSpace(e.Activity),
		fmt.Sprintf("%.2f", e.Hours),
	}
	if err := sh.AppendRow(ctx, row); err != nil {
		return fmt.Errorf("append time entry: %w", err)
	}
	slog.InfoContext(ctx, "Time entry appended",
		"category", e.Category, "hours", e.Hours)
	d.loader.Invalidate()
	return nil
}

// EnsureSheets creates the optional sheets that are missing, with header
// rows matching the configured schemas. The transactions sheet is assumed to
// exist; it is the dataset nothing else is useful without.
func (d *Dashboard) EnsureSheets(ctx context.Context) error {
	names, err := d.db.SheetNames(ctx)
	if err != nil {
		return fmt.Errorf("list sheets: %w", err)
	}
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[strings.ToLower(strings.TrimSpace(n))] = true
	}

	want := []struct {
		name   string
		header []string
	}{
		{d.loadCfg.BudgetsSheet, []string{d.loadCfg.Budgets.Category, d.loadCfg.Budgets.Limit}},
		{d.loadCfg.TimeLogsSheet, []string{
			d.loadCfg.TimeLogs.Date, d.loadCfg.TimeLogs.Category,
			d.loadCfg.TimeLogs.Activity, d.loadCfg.TimeLogs.Duration,
		}},
	}
	for _, w := range want {
		if w.name == "" || present[strings.ToLower(w.name)] {
			continue
		}
		if err := d.db.CreateSheet(ctx, w.name, w.header); err != nil {
			return fmt.Errorf("create sheet %s: %w", w.name, err)
		}
		slog.InfoContext(ctx, "Created missing sheet", "sheet", w.name)
	}
	return nil
}

func (d *Dashboard) transactionsSheet(ctx context.Context) (sheets.Sheet, error) {
	if d.loadCfg.TransactionsSheet == "" {
		sh, err := d.db.PrimarySheet(ctx)
		if err != nil {
			return nil, fmt.Errorf("open primary sheet: %w", err)
		}
		return sh, nil
	}
	sh, err := d.db.Sheet(ctx, d.loadCfg.TransactionsSheet)
	if err != nil {
		return nil, fmt.Errorf("open transactions sheet: %w", err)
	}
	return sh, nil
}
