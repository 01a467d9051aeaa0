package hijri

import (
	"regexp"
	"strconv"

	"github.com/samber/mo"
)

// Weekday is a day of the Islamic week, which starts on Saturday.
type Weekday int

const (
	Saturday Weekday = iota
	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
)

var weekdayCodes = [7]string{"SA", "SU", "MO", "TU", "WE", "TH", "FR"}

// String returns the two-letter RFC 5545 code of the weekday.
func (w Weekday) String() string {
	if w < Saturday || w > Friday {
		return "??"
	}
	return weekdayCodes[w]
}

// ParseWeekday resolves a two-letter weekday code.
func ParseWeekday(code string) (Weekday, error) {
	for i, c := range weekdayCodes {
		if c == code {
			return Weekday(i), nil
		}
	}
	return 0, InvalidInput("unknown weekday %q", code)
}

// Nth returns a spec meaning the |n|-th occurrence of the weekday within
// the enclosing period, counted from the end when n is negative.
func (w Weekday) Nth(n int) WeekdaySpec {
	return WeekdaySpec{Weekday: w, N: mo.Some(n)}
}

// Spec returns the plain, unqualified spec for the weekday.
func (w Weekday) Spec() WeekdaySpec {
	return WeekdaySpec{Weekday: w}
}

// WeekdaySpec is a BYDAY entry: a weekday with an optional nonzero
// ordinal qualifier.
type WeekdaySpec struct {
	Weekday Weekday
	N       mo.Option[int]
}

// RRuleString renders the spec in BYDAY form, e.g. "1FR", "-1MO", "TU".
func (s WeekdaySpec) RRuleString() string {
	if n, ok := s.N.Get(); ok {
		return strconv.Itoa(n) + s.Weekday.String()
	}
	return s.Weekday.String()
}

var byDayPattern = regexp.MustCompile(`^(-?\d+)?([A-Z]{2})$`)

// ParseWeekdaySpec parses a BYDAY token such as "2SA" or "FR". A present
// ordinal must be nonzero.
func ParseWeekdaySpec(token string) (WeekdaySpec, error) {
	m := byDayPattern.FindStringSubmatch(token)
	if m == nil {
		return WeekdaySpec{}, InvalidInput("malformed BYDAY token %q", token)
	}
	w, err := ParseWeekday(m[2])
	if err != nil {
		return WeekdaySpec{}, err
	}
	if m[1] == "" {
		return w.Spec(), nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n == 0 {
		return WeekdaySpec{}, InvalidInput("BYDAY ordinal must be a nonzero integer in %q", token)
	}
	return w.Nth(n), nil
}
