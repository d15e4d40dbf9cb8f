package core

import (
	"errors"
	"strings"
	"time"
)

// IST is the civil time offset baked into transaction timestamps by the
// writer. The backing spreadsheet stores naive local times.
var IST = time.FixedZone("IST", 5*3600+30*60)

type (
	// Transaction is one spend event read back from the transactions sheet.
	// Amount is always numeric after normalization (unparseable text becomes
	// zero); Timestamp is always a valid calendar date (rows with a bad date
	// never survive normalization).
	Transaction struct {
		Timestamp   time.Time
		Amount      Money
		Category    string
		Description string
		PaymentMode string
		Period      Period
	}

	// BudgetTarget is a monthly spending limit for one category. The category
	// is a loose string match against Transaction.Category; nothing enforces
	// the relationship.
	BudgetTarget struct {
		Category     string
		MonthlyLimit Money
	}

	// TimeLogEntry is one time-tracking row. Hours is already converted from
	// whatever unit convention the source sheet uses.
	TimeLogEntry struct {
		Date     time.Time
		Category string
		Activity string
		Hours    float64
		Period   Period
	}
)

var (
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyDescription = errors.New("empty description")
)

// Validate checks a transaction before it is written to the backing store.
// Read-back rows are not validated this strictly; normalization already
// applied its lossy policies.
func (t Transaction) Validate() error {
	if t.Timestamp.IsZero() {
		return ErrInvalidDate
	}
	if t.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

// Validate checks a time log entry before it is written to the backing store.
func (e TimeLogEntry) Validate() error {
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if e.Hours < 0 {
		return errors.New("negative hours")
	}
	return nil
}
