// Package julian converts between Gregorian civil dates and Julian Day
// Numbers. Day numbers here are chronological: the integer value of
// floor(JDN + 0.5), so each civil day maps to exactly one integer.
package julian

import "time"

// FromCivil returns the chronological Julian Day Number of a Gregorian
// civil date.
func FromCivil(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// ToCivil returns the Gregorian civil date of a chronological Julian Day
// Number.
func ToCivil(dn int) (year, month, day int) {
	a := dn + 32044
	b := (4*a + 3) / 146097
	c := a - 146097*b/4
	d := (4*c + 3) / 1461
	e := c - 1461*d/4
	m := (5*e + 2) / 153
	day = e - (153*m+2)/5 + 1
	month = m + 3 - 12*(m/10)
	year = 100*b + d - 4800 + m/10
	return year, month, day
}

// FromTime returns the day number of t's civil date in its own location.
func FromTime(t time.Time) int {
	return FromCivil(t.Year(), int(t.Month()), t.Day())
}

// ToTime builds a wall-clock time in the given location from a day number
// and clock fields.
func ToTime(dn, hour, minute, second int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := ToCivil(dn)
	return time.Date(y, time.Month(m), d, hour, minute, second, 0, loc)
}
