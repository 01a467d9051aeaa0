package hijri

import (
	"fmt"
	"strings"
	"time"

	"github.com/maktabah/hijrule/internal/julian"
)

// Date is an immutable Hijri date with wall-clock time fields. Equality,
// ordering and hashing consider only (year, month, day); the clock fields
// ride along through arithmetic.
type Date struct {
	year, month, day     int
	hour, minute, second int
}

// NewDate validates (year, month, day) against the default calendar.
func NewDate(year, month, day int) (Date, error) {
	return NewDateTimeIn(Default(), year, month, day, 0, 0, 0)
}

// NewDateTime validates a date with clock fields against the default
// calendar.
func NewDateTime(year, month, day, hour, minute, second int) (Date, error) {
	return NewDateTimeIn(Default(), year, month, day, hour, minute, second)
}

// NewDateIn validates (year, month, day) against the given calendar.
func NewDateIn(cal Calendar, year, month, day int) (Date, error) {
	return NewDateTimeIn(cal, year, month, day, 0, 0, 0)
}

// NewDateTimeIn validates all fields against the given calendar.
func NewDateTimeIn(cal Calendar, year, month, day, hour, minute, second int) (Date, error) {
	if !cal.IsValid(year, month, day) {
		return Date{}, InvalidDate("%04d-%02d-%02d is not a valid date in the %s calendar",
			year, month, day, cal.Name())
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return Date{}, InvalidDate("time %02d:%02d:%02d out of range", hour, minute, second)
	}
	return Date{year, month, day, hour, minute, second}, nil
}

// FromTime converts a Gregorian civil time to a Hijri date in the default
// calendar, preserving the clock fields.
func FromTime(t time.Time) Date {
	return FromTimeIn(Default(), t)
}

// FromTimeIn converts a Gregorian civil time in the given calendar.
func FromTimeIn(cal Calendar, t time.Time) Date {
	y, m, d := cal.FromDayNumber(julian.FromTime(t))
	return Date{y, m, d, t.Hour(), t.Minute(), t.Second()}
}

// Today returns the current local day in the default calendar.
func Today() Date {
	return FromTime(time.Now())
}

// Year returns the Hijri year.
func (d Date) Year() int { return d.year }

// Month returns the Hijri month, 1 through 12.
func (d Date) Month() int { return d.month }

// Day returns the day of the month.
func (d Date) Day() int { return d.day }

// Clock returns the wall-clock fields.
func (d Date) Clock() (hour, minute, second int) {
	return d.hour, d.minute, d.second
}

// IsZero reports whether d is the zero value, which is not a valid date.
func (d Date) IsZero() bool {
	return d.year == 0
}

// Compare orders two dates at day granularity: -1, 0 or +1.
func (d Date) Compare(o Date) int {
	a := d.Key()
	b := o.Key()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal reports day-granularity equality.
func (d Date) Equal(o Date) bool { return d.Compare(o) == 0 }

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// Key returns the day-granularity ordering key, year*10000+month*100+day.
func (d Date) Key() int {
	return d.year*10000 + d.month*100 + d.day
}

// DayNumber returns the chronological Julian Day Number of the date under
// the given calendar.
func (d Date) DayNumber(cal Calendar) int {
	return cal.DayNumber(d.year, d.month, d.day)
}

// Time converts the date to a Gregorian civil time in the local location
// using the default calendar.
func (d Date) Time() time.Time {
	return d.TimeIn(Default(), time.Local)
}

// TimeIn converts the date through the given calendar into the given
// location.
func (d Date) TimeIn(cal Calendar, loc *time.Location) time.Time {
	return julian.ToTime(d.DayNumber(cal), d.hour, d.minute, d.second, loc)
}

// Weekday returns the day of the week under the given calendar.
func (d Date) Weekday(cal Calendar) Weekday {
	return Weekday((d.DayNumber(cal) + 2) % 7)
}

// withDay returns a copy with (year, month, day) replaced and clock
// fields kept. No validation; for in-package use on known-valid values.
func (d Date) withDay(year, month, day int) Date {
	return Date{year, month, day, d.hour, d.minute, d.second}
}

func (d Date) String() string {
	if d.hour == 0 && d.minute == 0 && d.second == 0 {
		return fmt.Sprintf("%04d-%02d-%02d AH", d.year, d.month, d.day)
	}
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d AH",
		d.year, d.month, d.day, d.hour, d.minute, d.second)
}

// Token renders the date in the compact textual form YYYYMMDD, with a
// THHMMSS suffix when any clock field is nonzero.
func (d Date) Token() string {
	if d.hour == 0 && d.minute == 0 && d.second == 0 {
		return fmt.Sprintf("%04d%02d%02d", d.year, d.month, d.day)
	}
	return fmt.Sprintf("%04d%02d%02dT%02d%02d%02d",
		d.year, d.month, d.day, d.hour, d.minute, d.second)
}

// ParseToken parses the textual date form YYYYMMDD[THHMMSS[Z]] and
// validates it against the given calendar. The trailing Z is accepted and
// ignored.
func ParseToken(cal Calendar, token string) (Date, error) {
	s := strings.TrimSuffix(strings.TrimSpace(token), "Z")
	digits := func(from, to int) (int, bool) {
		n := 0
		for _, c := range s[from:to] {
			if c < '0' || c > '9' {
				return 0, false
			}
			n = n*10 + int(c-'0')
		}
		return n, true
	}
	var year, month, day, hour, minute, second int
	ok := len(s) == 8 || (len(s) == 15 && s[8] == 'T')
	if ok {
		var oy, om, od bool
		year, oy = digits(0, 4)
		month, om = digits(4, 6)
		day, od = digits(6, 8)
		ok = oy && om && od
	}
	if ok && len(s) == 15 {
		var oh, om, os bool
		hour, oh = digits(9, 11)
		minute, om = digits(11, 13)
		second, os = digits(13, 15)
		ok = oh && om && os
	}
	if !ok {
		return Date{}, InvalidInput("malformed date token %q", token)
	}
	return NewDateTimeIn(cal, year, month, day, hour, minute, second)
}
