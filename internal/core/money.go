// Package core holds the domain types and the field parsers that turn raw
// spreadsheet text into typed values.
//
// This file contains money handling. Amounts are kept as integer cents
// (paise) to avoid floating-point drift in sums; float64 appears only at the
// edges (parsing and rate math).
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in cents (hundredths of the account currency).
type Money struct {
	Cents int64
}

// MoneyFromUnits converts a decimal amount into Money with half-away-from-zero
// rounding on the third decimal.
func MoneyFromUnits(v float64) Money {
	return Money{Cents: int64(math.Round(v * 100))}
}

// Units returns the decimal value for display and rate math.
// Use cents for aggregation to avoid floating-point precision issues.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}

// String formats the amount as a plain decimal ("123.45"), the same shape
// the append path writes back to the sheet.
func (m Money) String() string {
	neg := m.Cents < 0
	c := m.Cents
	if neg {
		c = -c
	}
	s := fmt.Sprintf("%d.%02d", c/100, c%100)
	if neg {
		return "-" + s
	}
	return s
}

// ParseAmount converts free-form amount text into Money. Every rune that is
// not a digit, dot or minus sign is stripped before parsing ("₹1,234.50"
// becomes "1234.50"). Malformed or empty input yields zero; this parser
// never fails, a row with garbage in the amount column is still an event
// worth keeping for audit visibility.
func ParseAmount(s string) Money {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return Money{}
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return Money{}
	}
	return MoneyFromUnits(f)
}
