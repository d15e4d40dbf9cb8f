package config

import (
	"strings"
	"testing"
	"time"

	"financehq/internal/core"
)

func validConfig() *Config {
	return &Config{
		Port:             "8080",
		DataBackend:      "memory",
		SQLiteDBPath:     "./data/financehq.db",
		BudgetsSheet:     "Budgets",
		TimeLogsSheet:    "TimeLogs",
		TimeLogUnit:      core.UnitHours,
		CacheTTL:         2 * time.Minute,
		StandardWorkDays: 22,
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.DataBackend != "memory" {
		t.Fatalf("backend = %q", cfg.DataBackend)
	}
	if cfg.TimeLogUnit != core.UnitHours {
		t.Fatalf("unit = %q", cfg.TimeLogUnit)
	}
	if cfg.CacheTTL != 2*time.Minute {
		t.Fatalf("ttl = %v", cfg.CacheTTL)
	}
	if cfg.StandardWorkDays != 22 {
		t.Fatalf("standard work days = %d", cfg.StandardWorkDays)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATA_BACKEND", "sheets")
	t.Setenv("GOOGLE_SPREADSHEET_ID", "abc123")
	t.Setenv("TIMELOG_UNIT", "clock")
	t.Setenv("CACHE_TTL", "45s")
	t.Setenv("MONTHLY_INCOME", "100000")
	t.Setenv("WORK_CATEGORIES", "Office, Side Project ,")

	cfg := Load()
	if cfg.DataBackend != "sheets" || cfg.GoogleSpreadsheetID != "abc123" {
		t.Fatalf("backend config: %+v", cfg)
	}
	if cfg.TimeLogUnit != core.UnitClock {
		t.Fatalf("unit = %q", cfg.TimeLogUnit)
	}
	if cfg.CacheTTL != 45*time.Second {
		t.Fatalf("ttl = %v", cfg.CacheTTL)
	}
	if cfg.MonthlyIncome.Cents != 100000*100 {
		t.Fatalf("income = %d", cfg.MonthlyIncome.Cents)
	}
	if len(cfg.WorkCategories) != 2 || cfg.WorkCategories[1] != "Side Project" {
		t.Fatalf("work categories = %v", cfg.WorkCategories)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("env config should validate: %v", err)
	}
}

func TestValidateFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad port", func(c *Config) { c.Port = "nope" }, "invalid port"},
		{"port range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"bad backend", func(c *Config) { c.DataBackend = "oracle" }, "invalid data backend"},
		{"sheets without id", func(c *Config) { c.DataBackend = "sheets" }, "Spreadsheet ID"},
		{"sqlite without path", func(c *Config) { c.DataBackend = "sqlite"; c.SQLiteDBPath = "" }, "database path"},
		{"bad unit", func(c *Config) { c.TimeLogUnit = "fortnights" }, "time log unit"},
		{"ttl too small", func(c *Config) { c.CacheTTL = time.Millisecond }, "cache TTL"},
		{"ttl too large", func(c *Config) { c.CacheTTL = 2 * time.Hour }, "cache TTL"},
		{"work days", func(c *Config) { c.StandardWorkDays = 0 }, "standard work days"},
		{"negative income", func(c *Config) { c.MonthlyIncome = core.Money{Cents: -1} }, "income"},
	}
	for _, tc := range cases {
		cfg := validConfig()
		tc.mutate(cfg)
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error containing %q, got %v", tc.name, tc.want, err)
		}
	}
}

func TestLoaderConfigConversion(t *testing.T) {
	cfg := validConfig()
	cfg.TimeLogUnit = core.UnitSeconds
	lc := cfg.LoaderConfig()
	if lc.TimeLogs.Unit != core.UnitSeconds {
		t.Fatalf("unit not propagated: %+v", lc.TimeLogs)
	}
	if lc.BudgetsSheet != "Budgets" || lc.TTL != cfg.CacheTTL {
		t.Fatalf("loader config: %+v", lc)
	}
}

func TestServiceConfigConversion(t *testing.T) {
	cfg := validConfig()
	cfg.WorkCategories = []string{"Office"}
	sc := cfg.ServiceConfig()
	if len(sc.TimeGroups["Work"]) != 1 {
		t.Fatalf("time groups: %+v", sc.TimeGroups)
	}
	if sc.StandardWorkDays != 22 {
		t.Fatalf("standard work days = %d", sc.StandardWorkDays)
	}
}
