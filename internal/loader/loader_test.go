package loader

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"financehq/internal/core"
	"financehq/internal/normalize"
	"financehq/internal/sheets/memory"
)

func testConfig(ttl time.Duration) Config {
	return Config{
		BudgetsSheet:  "Budgets",
		TimeLogsSheet: "TimeLogs",
		Transactions:  normalize.DefaultTransactionSchema(),
		Budgets:       normalize.DefaultBudgetSchema(),
		TimeLogs:      normalize.DefaultTimeLogSchema(core.UnitHours),
		TTL:           ttl,
	}
}

func seededStore() *memory.Store {
	s := memory.New()
	s.SetSheet("Transactions", [][]string{
		{"Timestamp", "Amount", "Category", "Description", "Payment Mode"},
		{"2025-01-05 10:00:00", "200", "Food", "lunch", "UPI"},
		{"2025-01-06 09:00:00", "300", "Food", "groceries", "Card"},
	})
	s.SetSheet("Budgets", [][]string{
		{"Category", "Monthly Limit"},
		{"Food", "400"},
	})
	s.SetSheet("TimeLogs", [][]string{
		{"Date", "Category", "Activity", "Hours"},
		{"2025-01-05", "Work", "emails", "2.5"},
	})
	return s
}

func TestLoadAllDatasets(t *testing.T) {
	l := New(seededStore(), testConfig(time.Minute))
	snap, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Transactions) != 2 || len(snap.Budgets) != 1 || len(snap.TimeLogs) != 1 {
		t.Fatalf("unexpected snapshot sizes: %d/%d/%d",
			len(snap.Transactions), len(snap.Budgets), len(snap.TimeLogs))
	}
	for name, st := range snap.Datasets {
		if st.State != StateOK {
			t.Fatalf("dataset %s not ok: %+v", name, st)
		}
	}
	if got := snap.Periods(); len(got) != 1 || got[0] != "2025-01" {
		t.Fatalf("periods = %v", got)
	}
}

func TestLoadCachesWithinTTL(t *testing.T) {
	store := seededStore()
	l := New(store, testConfig(time.Minute))

	base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	now := base
	l.now = func() time.Time { return now }

	first, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// A row appended behind the cache's back is not visible yet.
	store.SetSheet("Transactions", append(store.Rows("Transactions"),
		[]string{"2025-01-07", "100", "Transport", "bus", "Cash"}))

	now = base.Add(30 * time.Second)
	second, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if second != first {
		t.Fatal("expected cache hit inside TTL")
	}

	now = base.Add(2 * time.Minute)
	third, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(third.Transactions) != 3 {
		t.Fatalf("expected refetch after TTL, got %d rows", len(third.Transactions))
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	store := seededStore()
	l := New(store, testConfig(time.Hour))

	if _, err := l.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	store.SetSheet("Transactions", append(store.Rows("Transactions"),
		[]string{"2025-01-08", "50", "Food", "snack", "Cash"}))

	l.Invalidate()
	snap, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Transactions) != 3 {
		t.Fatalf("expected fresh data after invalidate, got %d rows", len(snap.Transactions))
	}
}

func TestOptionalDatasetDegrades(t *testing.T) {
	store := seededStore()
	store.FailSheet("Budgets", errors.New("transport down"))
	l := New(store, testConfig(time.Minute))

	snap, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("optional failure must not be fatal: %v", err)
	}
	st := snap.Datasets[DatasetBudgets]
	if st.State != StateDegraded || !strings.Contains(st.Reason, "transport down") {
		t.Fatalf("unexpected budget status: %+v", st)
	}
	if len(snap.Budgets) != 0 {
		t.Fatalf("degraded dataset should be empty, got %d rows", len(snap.Budgets))
	}
	if len(snap.Transactions) != 2 {
		t.Fatal("other datasets should still load")
	}
}

func TestMissingOptionalSheetIsEmptyNotError(t *testing.T) {
	store := memory.New()
	store.SetSheet("Transactions", [][]string{
		{"Timestamp", "Amount"},
		{"2025-01-05", "200"},
	})
	l := New(store, testConfig(time.Minute))

	snap, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap.Datasets[DatasetBudgets].State != StateDegraded {
		t.Fatalf("missing sheet should degrade: %+v", snap.Datasets[DatasetBudgets])
	}
	if snap.Datasets[DatasetTimeLogs].State != StateDegraded {
		t.Fatalf("missing sheet should degrade: %+v", snap.Datasets[DatasetTimeLogs])
	}
}

func TestPrimaryFailureIsFatal(t *testing.T) {
	store := seededStore()
	store.FailSheet("Transactions", errors.New("auth expired"))
	l := New(store, testConfig(time.Minute))

	if _, err := l.Load(context.Background()); err == nil {
		t.Fatal("expected fatal error when transactions fail")
	}
}

func TestPrimaryMissingColumnIsFatal(t *testing.T) {
	store := seededStore()
	store.SetSheet("Transactions", [][]string{
		{"When", "How Much"},
		{"2025-01-05", "200"},
	})
	l := New(store, testConfig(time.Minute))

	_, err := l.Load(context.Background())
	if !errors.Is(err, normalize.ErrMissingColumn) {
		t.Fatalf("expected missing column error, got %v", err)
	}
}
