package hijri

import (
	"github.com/samber/mo"
)

// AddDays moves the date by k days through the day-number line, keeping
// the clock fields. It fails with out_of_epoch when the result would fall
// before year 1.
func AddDays(cal Calendar, d Date, k int) (Date, error) {
	dn := d.DayNumber(cal) + k
	if dn < EpochDayNumber {
		return Date{}, OutOfEpoch("%d days before %s is before 1 Muharram 1 AH", -k, d)
	}
	y, m, day := cal.FromDayNumber(dn)
	return d.withDay(y, m, day), nil
}

// AddMonths moves the date by k months on the linearized month index.
// When the source day does not exist in the target month it is clamped to
// the month's last day if clamp is set, and dropped (None) otherwise.
func AddMonths(cal Calendar, d Date, k int, clamp bool) (mo.Option[Date], error) {
	idx := d.year*12 + (d.month - 1) + k
	year := idx / 12
	month := idx%12 + 1
	if idx < 0 || year < 1 {
		return mo.None[Date](), OutOfEpoch("%d months from %s is before 1 Muharram 1 AH", k, d)
	}
	length := cal.MonthLength(year, month)
	day := d.day
	if day > length {
		if !clamp {
			return mo.None[Date](), nil
		}
		day = length
	}
	return mo.Some(d.withDay(year, month, day)), nil
}

// AddYears moves the date by k years, keeping the month. A 30th vanishes
// when the same month of the target year has 29 days (in the tabular
// calendar only 30 Dhu al-Hijjah of a leap year landing on a common year);
// clamp decides between the 29th and no result.
func AddYears(cal Calendar, d Date, k int, clamp bool) (mo.Option[Date], error) {
	year := d.year + k
	if year < 1 {
		return mo.None[Date](), OutOfEpoch("%d years from %s is before 1 AH", k, d)
	}
	length := cal.MonthLength(year, d.month)
	day := d.day
	if day > length {
		if !clamp {
			return mo.None[Date](), nil
		}
		day = length
	}
	return mo.Some(d.withDay(year, d.month, day)), nil
}

// NthWeekdayOfMonth finds the n-th occurrence of a weekday within a
// month, scanning from the end when n is negative. It returns None when
// the month has fewer than |n| such days or n is zero.
func NthWeekdayOfMonth(cal Calendar, year, month int, w Weekday, n int) mo.Option[Date] {
	if n == 0 || !cal.IsValid(year, month, 1) {
		return mo.None[Date]()
	}
	length := cal.MonthLength(year, month)
	first := Weekday((cal.DayNumber(year, month, 1) + 2) % 7)
	offset := (int(w) - int(first) + 7) % 7
	count := (length - 1 - offset)/7 + 1
	if offset >= length || n > count || -n > count {
		return mo.None[Date]()
	}
	var day int
	if n > 0 {
		day = 1 + offset + (n-1)*7
	} else {
		day = 1 + offset + (count+n)*7
	}
	return mo.Some(Date{year: year, month: month, day: day})
}

// StartOfMonth returns the first day of d's month, clock fields kept.
func StartOfMonth(d Date) Date {
	return d.withDay(d.year, d.month, 1)
}

// EndOfMonth returns the last day of d's month under the given calendar.
func EndOfMonth(cal Calendar, d Date) Date {
	return d.withDay(d.year, d.month, cal.MonthLength(d.year, d.month))
}

// StartOfYear returns 1 Muharram of d's year.
func StartOfYear(d Date) Date {
	return d.withDay(d.year, 1, 1)
}

// EndOfYear returns the last day of d's year under the given calendar.
func EndOfYear(cal Calendar, d Date) Date {
	return d.withDay(d.year, 12, cal.MonthLength(d.year, 12))
}

// StartOfWeek returns the most recent day on or before d whose weekday is
// wkst.
func StartOfWeek(cal Calendar, d Date, wkst Weekday) (Date, error) {
	back := (int(d.Weekday(cal)) - int(wkst) + 7) % 7
	return AddDays(cal, d, -back)
}
