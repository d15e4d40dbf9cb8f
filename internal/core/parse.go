package core

import (
	"strconv"
	"strings"
	"time"
)

// DurationUnit declares how a time log sheet encodes durations. The source
// sheets evolved through several conventions (raw seconds, clock text,
// plain hours); the convention is configuration, never guessed per cell.
type DurationUnit string

const (
	UnitSeconds DurationUnit = "seconds"
	UnitMinutes DurationUnit = "minutes"
	UnitClock   DurationUnit = "clock" // "H:MM:SS" or "MM:SS"
	UnitHours   DurationUnit = "hours"
)

// IsValid reports whether u is one of the declared conventions.
func (u DurationUnit) IsValid() bool {
	switch u {
	case UnitSeconds, UnitMinutes, UnitClock, UnitHours:
		return true
	}
	return false
}

// dateLayouts are tried in order. ISO first; the slash and day-first forms
// show up in older sheet exports.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
}

// ParseDate parses date text, discarding any time-of-day or timezone suffix:
// only the text up to the first whitespace or 'T' separator is considered.
// The second return value is false when no layout matches; the caller
// decides whether that drops the record.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \tT"); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDurationHours converts duration text into hours under the declared
// unit convention. Clock text is split on ':' and converted positionally.
// Any parse failure yields 0 hours; this is low-stakes personal data and a
// lossy-but-available value beats a failed load.
func ParseDurationHours(s string, unit DurationUnit) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if unit == UnitClock {
		return parseClockHours(s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	switch unit {
	case UnitSeconds:
		return f / 3600
	case UnitMinutes:
		return f / 60
	default:
		return f
	}
}

func parseClockHours(s string) float64 {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0
	}
	vals := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || f < 0 {
			return 0
		}
		vals[i] = f
	}
	if len(vals) == 3 {
		// H:MM:SS
		return vals[0] + vals[1]/60 + vals[2]/3600
	}
	// MM:SS
	return vals[0]/60 + vals[1]/3600
}
