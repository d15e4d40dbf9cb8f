package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"financehq/internal/core"
	"financehq/internal/loader"
	"financehq/internal/normalize"
	"financehq/internal/report"
	"financehq/internal/services"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	DataBackend string

	// SQLite mirror backend
	SQLiteDBPath string

	// Google Sheets backend
	GoogleSpreadsheetID string

	// Sheet layout. TransactionsSheet empty means the document's first sheet.
	TransactionsSheet string
	BudgetsSheet      string
	TimeLogsSheet     string

	// TimeLogUnit declares the duration convention of the time log sheet.
	TimeLogUnit core.DurationUnit

	// Snapshot cache
	CacheTTL time.Duration

	// Rate estimate parameters
	MonthlyIncome    core.Money
	WorkCategories   []string
	StandardWorkDays int
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		DataBackend: getEnv("DATA_BACKEND", "memory"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/financehq.db"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),

		TransactionsSheet: getEnv("TRANSACTIONS_SHEET_NAME", ""),
		BudgetsSheet:      getEnv("BUDGETS_SHEET_NAME", "Budgets"),
		TimeLogsSheet:     getEnv("TIMELOGS_SHEET_NAME", "TimeLogs"),

		TimeLogUnit: core.DurationUnit(getEnv("TIMELOG_UNIT", string(core.UnitHours))),

		CacheTTL: getEnvDuration("CACHE_TTL", 2*time.Minute),

		MonthlyIncome:    core.ParseAmount(getEnv("MONTHLY_INCOME", "0")),
		WorkCategories:   splitList(getEnv("WORK_CATEGORIES", "")),
		StandardWorkDays: getEnvInt("STANDARD_WORK_DAYS", report.StandardWorkingDays),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory", "sheets", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [memory sheets sqlite]", c.DataBackend))
	}

	if c.DataBackend == "sqlite" && c.SQLiteDBPath == "" {
		errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
	}

	if c.DataBackend == "sheets" && c.GoogleSpreadsheetID == "" {
		errs = append(errs, "Google Spreadsheet ID is required when using sheets backend")
	}

	if !c.TimeLogUnit.IsValid() {
		errs = append(errs, fmt.Sprintf("invalid time log unit '%s': must be one of [seconds minutes clock hours]", c.TimeLogUnit))
	}

	if c.CacheTTL < time.Second {
		errs = append(errs, fmt.Sprintf("invalid cache TTL %v: must be at least 1 second", c.CacheTTL))
	} else if c.CacheTTL > time.Hour {
		errs = append(errs, fmt.Sprintf("invalid cache TTL %v: must be at most 1 hour", c.CacheTTL))
	}

	if c.StandardWorkDays < 1 || c.StandardWorkDays > 31 {
		errs = append(errs, fmt.Sprintf("invalid standard work days %d: must be between 1 and 31", c.StandardWorkDays))
	}

	if c.MonthlyIncome.Cents < 0 {
		errs = append(errs, "monthly income cannot be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// LoaderConfig converts the app config into the loader's dataset config.
func (c *Config) LoaderConfig() loader.Config {
	return loader.Config{
		TransactionsSheet: c.TransactionsSheet,
		BudgetsSheet:      c.BudgetsSheet,
		TimeLogsSheet:     c.TimeLogsSheet,
		Transactions:      normalize.DefaultTransactionSchema(),
		Budgets:           normalize.DefaultBudgetSchema(),
		TimeLogs:          normalize.DefaultTimeLogSchema(c.TimeLogUnit),
		TTL:               c.CacheTTL,
	}
}

// ServiceConfig converts the app config into the dashboard service config.
// The work categories double as the default time-summary group.
func (c *Config) ServiceConfig() services.Config {
	groups := map[string][]string{}
	if len(c.WorkCategories) > 0 {
		groups["Work"] = c.WorkCategories
	}
	return services.Config{
		MonthlyIncome:    c.MonthlyIncome,
		EffortCategories: c.WorkCategories,
		StandardWorkDays: c.StandardWorkDays,
		TimeGroups:       groups,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
