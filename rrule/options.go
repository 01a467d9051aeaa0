// Package rrule evaluates RFC 5545 style recurrence rules against the
// Hijri calendar. Rules are built from an Options struct or parsed from
// the RRULE textual form (extended with CALENDAR and SKIP parameters),
// expanded lazily in ascending order, and composed into rule sets of
// inclusions and exclusions.
package rrule

import (
	"strings"
	"time"

	"github.com/samber/mo"

	"github.com/maktabah/hijrule/hijri"
)

// Frequency is the recurrence frequency. The zero value is invalid so a
// missing FREQ can be detected.
type Frequency int

const (
	Yearly Frequency = iota + 1
	Monthly
	Weekly
	Daily
	Hourly
	Minutely
	Secondly
)

var frequencyNames = map[Frequency]string{
	Yearly:   "YEARLY",
	Monthly:  "MONTHLY",
	Weekly:   "WEEKLY",
	Daily:    "DAILY",
	Hourly:   "HOURLY",
	Minutely: "MINUTELY",
	Secondly: "SECONDLY",
}

func (f Frequency) String() string {
	if name, ok := frequencyNames[f]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseFrequency resolves a FREQ value, case-insensitively.
func ParseFrequency(s string) (Frequency, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for f, name := range frequencyNames {
		if name == upper {
			return f, nil
		}
	}
	return 0, hijri.InvalidInput("unknown FREQ %q", s)
}

// Skip is the policy for a BYMONTHDAY that falls outside the actual
// month length.
type Skip int

const (
	SkipOmit Skip = iota
	SkipBackward
	SkipForward
)

var skipNames = map[Skip]string{
	SkipOmit:     "OMIT",
	SkipBackward: "BACKWARD",
	SkipForward:  "FORWARD",
}

func (s Skip) String() string {
	if name, ok := skipNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseSkip resolves a SKIP value, case-insensitively.
func ParseSkip(s string) (Skip, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for sk, name := range skipNames {
		if name == upper {
			return sk, nil
		}
	}
	return 0, hijri.InvalidInput("unknown SKIP %q", s)
}

// Options carries the rule parameters as accepted from the user. Only
// Freq is required. Dates may be given as Hijri dates or as Gregorian
// civil times; the civil forms are converted through the rule's calendar
// during normalization and lose to the Hijri forms when both are set.
type Options struct {
	Freq        Frequency
	Dtstart     mo.Option[hijri.Date]
	DtstartTime mo.Option[time.Time]
	Interval    int
	Wkst        mo.Option[hijri.Weekday]
	Count       mo.Option[int]
	Until       mo.Option[hijri.Date]
	UntilTime   mo.Option[time.Time]
	Tzid        string
	BySetPos    []int
	ByMonth     []int
	ByMonthDay  []int
	ByYearDay   []int
	ByWeekNo    []int
	ByWeekday   []hijri.WeekdaySpec
	ByHour      []int
	ByMinute    []int
	BySecond    []int
	Skip        Skip
	Calendar    hijri.Calendar
}

// ParsedOptions is the canonicalized form the expansion engine consumes:
// defaults applied, month days split by sign, weekday specs split by the
// presence of an ordinal, every field range-checked.
type ParsedOptions struct {
	Freq        Frequency
	Dtstart     hijri.Date
	Interval    int
	Wkst        hijri.Weekday
	Count       mo.Option[int]
	Until       mo.Option[hijri.Date]
	Tzid        string
	BySetPos    []int
	ByMonth     []int
	ByMonthDay  []int // strictly positive entries
	ByNMonthDay []int // strictly negative entries
	ByYearDay   []int
	ByWeekNo    []int
	ByWeekday   []hijri.Weekday      // entries without an ordinal
	ByNWeekday  []hijri.WeekdaySpec  // entries with an ordinal
	ByHour      []int
	ByMinute    []int
	BySecond    []int
	Skip        Skip
	Calendar    hijri.Calendar
}

// ParseOptions normalizes and validates partial options.
func ParseOptions(opts Options) (*ParsedOptions, error) {
	if opts.Freq == 0 {
		return nil, hijri.InvalidInput("FREQ is required")
	}
	if _, ok := frequencyNames[opts.Freq]; !ok {
		return nil, hijri.InvalidInput("unknown FREQ %d", int(opts.Freq))
	}
	if _, ok := skipNames[opts.Skip]; !ok {
		return nil, hijri.InvalidInput("unknown SKIP %d", int(opts.Skip))
	}

	parsed := &ParsedOptions{
		Freq:     opts.Freq,
		Interval: opts.Interval,
		Wkst:     opts.Wkst.OrElse(hijri.Sunday),
		Count:    opts.Count,
		Tzid:     opts.Tzid,
		Skip:     opts.Skip,
		Calendar: opts.Calendar,
	}
	if parsed.Calendar == nil {
		parsed.Calendar = hijri.Default()
	}
	if parsed.Interval == 0 {
		parsed.Interval = 1
	}
	if parsed.Interval < 1 {
		return nil, hijri.InvalidInput("INTERVAL must be at least 1, got %d", parsed.Interval)
	}
	if n, ok := parsed.Count.Get(); ok && n < 0 {
		return nil, hijri.InvalidInput("COUNT must not be negative, got %d", n)
	}
	if parsed.Wkst < hijri.Saturday || parsed.Wkst > hijri.Friday {
		return nil, hijri.InvalidInput("unknown WKST %d", int(parsed.Wkst))
	}

	// Anchor and limit dates: Hijri forms win, civil forms are converted
	// through the rule's calendar, and an absent anchor means today.
	switch {
	case opts.Dtstart.IsPresent():
		parsed.Dtstart = opts.Dtstart.MustGet()
	case opts.DtstartTime.IsPresent():
		parsed.Dtstart = hijri.FromTimeIn(parsed.Calendar, opts.DtstartTime.MustGet())
	default:
		parsed.Dtstart = hijri.FromTimeIn(parsed.Calendar, time.Now())
	}
	switch {
	case opts.Until.IsPresent():
		parsed.Until = opts.Until
	case opts.UntilTime.IsPresent():
		parsed.Until = mo.Some(hijri.FromTimeIn(parsed.Calendar, opts.UntilTime.MustGet()))
	}

	if err := checkRange("BYMONTH", opts.ByMonth, 1, 12, false); err != nil {
		return nil, err
	}
	parsed.ByMonth = append([]int(nil), opts.ByMonth...)

	if err := checkRange("BYMONTHDAY", opts.ByMonthDay, -30, 30, true); err != nil {
		return nil, err
	}
	for _, v := range opts.ByMonthDay {
		if v > 0 {
			parsed.ByMonthDay = append(parsed.ByMonthDay, v)
		} else {
			parsed.ByNMonthDay = append(parsed.ByNMonthDay, v)
		}
	}

	if err := checkRange("BYYEARDAY", opts.ByYearDay, -355, 355, true); err != nil {
		return nil, err
	}
	parsed.ByYearDay = append([]int(nil), opts.ByYearDay...)

	if err := checkRange("BYSETPOS", opts.BySetPos, -366, 366, true); err != nil {
		return nil, err
	}
	parsed.BySetPos = append([]int(nil), opts.BySetPos...)

	if err := checkRange("BYWEEKNO", opts.ByWeekNo, -53, 53, true); err != nil {
		return nil, err
	}
	parsed.ByWeekNo = append([]int(nil), opts.ByWeekNo...)

	for _, spec := range opts.ByWeekday {
		if spec.Weekday < hijri.Saturday || spec.Weekday > hijri.Friday {
			return nil, hijri.InvalidInput("unknown weekday %d in BYDAY", int(spec.Weekday))
		}
		if n, ok := spec.N.Get(); ok {
			if n == 0 {
				return nil, hijri.InvalidInput("BYDAY ordinal must not be zero")
			}
			parsed.ByNWeekday = append(parsed.ByNWeekday, spec)
		} else {
			parsed.ByWeekday = append(parsed.ByWeekday, spec.Weekday)
		}
	}

	if err := checkRange("BYHOUR", opts.ByHour, 0, 23, false); err != nil {
		return nil, err
	}
	parsed.ByHour = append([]int(nil), opts.ByHour...)
	if err := checkRange("BYMINUTE", opts.ByMinute, 0, 59, false); err != nil {
		return nil, err
	}
	parsed.ByMinute = append([]int(nil), opts.ByMinute...)
	if err := checkRange("BYSECOND", opts.BySecond, 0, 59, false); err != nil {
		return nil, err
	}
	parsed.BySecond = append([]int(nil), opts.BySecond...)

	return parsed, nil
}

func checkRange(name string, values []int, min, max int, forbidZero bool) error {
	for _, v := range values {
		if v < min || v > max {
			return hijri.InvalidInput("%s value %d out of range [%d,%d]", name, v, min, max)
		}
		if forbidZero && v == 0 {
			return hijri.InvalidInput("%s must not contain zero", name)
		}
	}
	return nil
}
