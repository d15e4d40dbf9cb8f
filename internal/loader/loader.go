// Package loader fetches the three logical datasets from the backing store,
// normalizes them, and caches the resulting snapshot for a bounded time
// window so interactive reloads do not hammer the spreadsheet API.
//
// Failure policy (explicit, not scattered): the transactions dataset is
// primary and its failure is fatal to the whole load; budgets and time logs
// are optional and degrade to empty tables with a recorded reason.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"financehq/internal/core"
	"financehq/internal/normalize"
	"financehq/internal/sheets"
)

const (
	DatasetTransactions = "transactions"
	DatasetBudgets      = "budgets"
	DatasetTimeLogs     = "timelogs"
)

type DatasetState string

const (
	StateOK       DatasetState = "ok"
	StateDegraded DatasetState = "degraded"
)

// DatasetStatus records how a dataset's load went. Degraded datasets carry
// the reason so the presentation layer can surface it once.
type DatasetStatus struct {
	State  DatasetState
	Reason string
}

// Snapshot is one immutable load of all three datasets. Nothing mutates a
// snapshot after Load publishes it.
type Snapshot struct {
	Transactions []core.Transaction
	Budgets      []core.BudgetTarget
	TimeLogs     []core.TimeLogEntry
	Datasets     map[string]DatasetStatus
	FetchedAt    time.Time
}

// Periods returns the distinct period keys present in the snapshot, newest
// first. Transactions and time logs both contribute.
func (s *Snapshot) Periods() []string {
	seen := map[string]struct{}{}
	for _, t := range s.Transactions {
		seen[t.Period.Key()] = struct{}{}
	}
	for _, e := range s.TimeLogs {
		seen[e.Period.Key()] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}

// Config declares where each dataset lives and how to normalize it.
type Config struct {
	// TransactionsSheet may be empty, meaning the document's primary sheet.
	TransactionsSheet string
	BudgetsSheet      string
	TimeLogsSheet     string

	Transactions normalize.TransactionSchema
	Budgets      normalize.BudgetSchema
	TimeLogs     normalize.TimeLogSchema

	// TTL bounds how long a snapshot is served before a refetch.
	TTL time.Duration
}

// Loader owns the snapshot cache. Safe for concurrent use.
type Loader struct {
	db  sheets.Database
	cfg Config

	mu        sync.Mutex
	cached    *Snapshot
	fetchedAt time.Time

	now func() time.Time
}

const defaultTTL = 2 * time.Minute

func New(db sheets.Database, cfg Config) *Loader {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	return &Loader{db: db, cfg: cfg, now: time.Now}
}

// Load returns the cached snapshot when it is still fresh, otherwise fetches
// all three datasets. The error is non-nil only when the primary
// transactions dataset cannot be loaded.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.cached != nil && now.Sub(l.fetchedAt) < l.cfg.TTL {
		return l.cached, nil
	}

	snap, err := l.fetch(ctx)
	if err != nil {
		// Keep serving nothing rather than a stale snapshot: the caller asked
		// for fresh data and the primary dataset is gone.
		return nil, err
	}
	l.cached = snap
	l.fetchedAt = now
	return snap, nil
}

// Invalidate drops the cached snapshot so the next Load refetches. Called
// after every successful append so the new row becomes visible.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cached = nil
}

func (l *Loader) fetch(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		Datasets:  make(map[string]DatasetStatus, 3),
		FetchedAt: l.now(),
	}
	var txStatus, budgetStatus, timeStatus DatasetStatus

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		grid, err := l.readGrid(gctx, l.cfg.TransactionsSheet, true)
		if err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}
		rows, err := normalize.Transactions(grid, l.cfg.Transactions)
		if err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}
		snap.Transactions = rows
		txStatus = DatasetStatus{State: StateOK}
		return nil
	})
	g.Go(func() error {
		budgetStatus = DatasetStatus{State: StateOK}
		grid, err := l.readGrid(gctx, l.cfg.BudgetsSheet, false)
		if err == nil {
			snap.Budgets, err = normalize.Budgets(grid, l.cfg.Budgets)
		}
		if err != nil {
			snap.Budgets = nil
			budgetStatus = DatasetStatus{State: StateDegraded, Reason: err.Error()}
			slog.WarnContext(gctx, "Budgets dataset degraded to empty", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		timeStatus = DatasetStatus{State: StateOK}
		grid, err := l.readGrid(gctx, l.cfg.TimeLogsSheet, false)
		if err == nil {
			snap.TimeLogs, err = normalize.TimeLogs(grid, l.cfg.TimeLogs)
		}
		if err != nil {
			snap.TimeLogs = nil
			timeStatus = DatasetStatus{State: StateDegraded, Reason: err.Error()}
			slog.WarnContext(gctx, "Time log dataset degraded to empty", "error", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap.Datasets[DatasetTransactions] = txStatus
	snap.Datasets[DatasetBudgets] = budgetStatus
	snap.Datasets[DatasetTimeLogs] = timeStatus
	return snap, nil
}

func (l *Loader) readGrid(ctx context.Context, name string, primary bool) ([][]string, error) {
	var (
		sh  sheets.Sheet
		err error
	)
	if primary && name == "" {
		sh, err = l.db.PrimarySheet(ctx)
	} else {
		sh, err = l.db.Sheet(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return sh.ReadAll(ctx)
}
