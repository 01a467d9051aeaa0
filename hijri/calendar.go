// Package hijri implements the Hijri (Islamic) lunar calendar: an
// immutable date value, weekday handling, date arithmetic, and two
// pluggable calendar back-ends (a purely arithmetic tabular calendar and
// the table-driven Umm al-Qura calendar). Conversions to and from the
// Gregorian civil calendar go through Julian Day Numbers.
package hijri

import (
	"log/slog"
	"sync"
)

// Calendar is the capability surface a Hijri back-end must provide. All
// day numbers are chronological Julian Day Numbers.
type Calendar interface {
	// Name returns the canonical CALENDAR parameter value of the back-end.
	Name() string
	// MonthLength returns 29 or 30 for the given year and month.
	MonthLength(year, month int) int
	// YearLength returns 354 or 355.
	YearLength(year int) int
	// IsLeapYear reports whether the year has 355 days.
	IsLeapYear(year int) bool
	// IsValid reports whether (year, month, day) names an actual day.
	IsValid(year, month, day int) bool
	// DayNumber converts a valid Hijri date to its day number.
	DayNumber(year, month, day int) int
	// FromDayNumber converts a day number back to a Hijri date.
	FromDayNumber(dn int) (year, month, day int)
}

var (
	configMu   sync.RWMutex
	defaultCal Calendar = UmmAlQura()
	logger     *slog.Logger
)

// Default returns the process-wide default calendar, initially Umm
// al-Qura. Set it before constructing rules; changing it mid-lifecycle is
// not picked up by already-built rules.
func Default() Calendar {
	configMu.RLock()
	defer configMu.RUnlock()
	return defaultCal
}

// SetDefault replaces the process-wide default calendar.
func SetDefault(cal Calendar) {
	configMu.Lock()
	defer configMu.Unlock()
	defaultCal = cal
}

// SetLogger sets the logger used by calendar back-ends for degraded-path
// diagnostics. A nil logger restores slog.Default.
func SetLogger(l *slog.Logger) {
	configMu.Lock()
	defer configMu.Unlock()
	logger = l
}

func log() *slog.Logger {
	configMu.RLock()
	defer configMu.RUnlock()
	if logger != nil {
		return logger
	}
	return slog.Default()
}
