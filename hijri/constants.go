package hijri

// EpochDayNumber is the chronological Julian Day Number of 1 Muharram 1 AH
// (the integer day for JDN 1948439.5).
const EpochDayNumber = 1948440

// CycleYears is the length of the arithmetic leap cycle in years and
// CycleDays its total length in days.
const (
	CycleYears = 30
	CycleDays  = 10631
)

const (
	commonYearDays = 354
	leapYearDays   = 355
)

// leapYearIndex marks the leap years of the 30-year cycle, 1-indexed.
var leapYearIndex = [CycleYears + 1]bool{
	2: true, 5: true, 7: true, 10: true, 13: true, 16: true,
	18: true, 21: true, 24: true, 26: true, 29: true,
}

// daysBeforeMonth returns the number of days preceding month m in a common
// year: odd months have 30 days, even months 29.
func daysBeforeMonth(m int) int {
	return 29*(m-1) + m/2
}
