package rrule

import (
	"sort"

	"github.com/samber/mo"

	"github.com/maktabah/hijrule/hijri"
)

// Iterator is a pull-based stream of occurrences, strictly ascending and
// duplicate-free at day granularity. It is not safe for concurrent use.
type Iterator struct {
	opts      *ParsedOptions
	cursor    hijri.Date
	buf       []hijri.Date
	bufPos    int
	emitted   int
	periods   int
	ceiling   int
	pastLimit bool
	done      bool
	last      mo.Option[hijri.Date]
}

const defaultIterationCeiling = 100_000

func newIterator(opts *ParsedOptions) *Iterator {
	it := &Iterator{
		opts:    opts,
		cursor:  opts.Dtstart,
		ceiling: defaultIterationCeiling,
	}
	if n, ok := opts.Count.Get(); ok {
		if n == 0 {
			it.done = true
		}
		if 100*n > it.ceiling {
			it.ceiling = 100 * n
		}
	}
	return it
}

// Next returns the next occurrence, or None when the stream has ended.
func (it *Iterator) Next() mo.Option[hijri.Date] {
	for !it.done {
		for it.bufPos < len(it.buf) {
			c := it.buf[it.bufPos]
			it.bufPos++
			if c.Before(it.opts.Dtstart) {
				continue
			}
			if last, ok := it.last.Get(); ok && !c.After(last) {
				continue
			}
			if u, ok := it.opts.Until.Get(); ok && c.After(u) {
				// Candidates are monotonic across periods, so the first
				// one past the limit ends the stream.
				it.done = true
				break
			}
			it.last = mo.Some(c)
			it.emitted++
			if n, ok := it.opts.Count.Get(); ok && it.emitted >= n {
				it.done = true
			}
			return mo.Some(c)
		}
		if it.done {
			break
		}
		if !it.advance() {
			it.done = true
		}
	}
	return mo.None[hijri.Date]()
}

// advance generates the candidate buffer for the period anchored at the
// cursor and moves the cursor one interval ahead.
func (it *Iterator) advance() bool {
	it.periods++
	if it.periods > it.ceiling {
		return false
	}
	if u, ok := it.opts.Until.Get(); ok && it.cursor.After(u) {
		// The cursor has gone past the limit. Run one catch-up period:
		// with month filters the period anchored beyond UNTIL can still
		// hold candidates that are in range.
		if it.pastLimit {
			return false
		}
		it.pastLimit = true
	}
	it.buf = it.generatePeriod(it.cursor)
	it.bufPos = 0
	it.cursor = it.advanceCursor(it.cursor)
	return true
}

func (it *Iterator) advanceCursor(cursor hijri.Date) hijri.Date {
	o := it.opts
	switch o.Freq {
	case Yearly:
		if next, ok := must(hijri.AddYears(o.Calendar, cursor, o.Interval, true)).Get(); ok {
			return next
		}
	case Monthly:
		if next, ok := must(hijri.AddMonths(o.Calendar, cursor, o.Interval, true)).Get(); ok {
			return next
		}
	case Weekly:
		if next, err := hijri.AddDays(o.Calendar, cursor, 7*o.Interval); err == nil {
			return next
		}
	default:
		if next, err := hijri.AddDays(o.Calendar, cursor, o.Interval); err == nil {
			return next
		}
	}
	return cursor
}

func must[T any](v mo.Option[T], err error) mo.Option[T] {
	if err != nil {
		return mo.None[T]()
	}
	return v
}

// generatePeriod builds the sorted, de-duplicated candidate list for one
// period, with BYSETPOS applied.
func (it *Iterator) generatePeriod(anchor hijri.Date) []hijri.Date {
	var cands []hijri.Date
	switch it.opts.Freq {
	case Yearly:
		cands = it.yearlyCandidates(anchor)
	case Monthly:
		cands = it.monthlyCandidates(anchor)
	case Weekly:
		cands = it.weeklyCandidates(anchor)
	default:
		// DAILY, and the sub-day frequencies the engine treats at day
		// granularity.
		cands = it.dailyCandidates(anchor)
	}
	cands = sortDedup(cands)
	if len(it.opts.BySetPos) > 0 {
		cands = sortDedup(applySetPos(cands, it.opts.BySetPos))
	}
	return cands
}

func (it *Iterator) yearlyCandidates(anchor hijri.Date) []hijri.Date {
	o := it.opts
	y := anchor.Year()
	var out []hijri.Date

	switch {
	case len(o.ByMonth) > 0:
		for _, m := range o.ByMonth {
			out = append(out, it.monthSuite(y, m, o.Dtstart.Day())...)
		}
		return out
	case len(o.ByMonthDay) > 0 || len(o.ByNMonthDay) > 0:
		out = it.monthDayCandidates(y, anchor.Month())
	case len(o.ByYearDay) > 0:
		out = it.yearDayCandidates(y)
	default:
		if c, ok := it.mk(y, anchor.Month(), clampDay(anchor.Day(), o.Calendar.MonthLength(y, anchor.Month()))); ok {
			out = append(out, c)
		}
	}
	return it.filterSimpleWeekday(out)
}

func (it *Iterator) monthlyCandidates(anchor hijri.Date) []hijri.Date {
	o := it.opts
	if len(o.ByMonth) > 0 && !containsInt(o.ByMonth, anchor.Month()) {
		return nil
	}
	out := it.monthSuite(anchor.Year(), anchor.Month(), anchor.Day())
	if len(o.ByMonthDay) > 0 || len(o.ByNMonthDay) > 0 {
		out = it.filterSimpleWeekday(out)
	}
	return out
}

func (it *Iterator) weeklyCandidates(anchor hijri.Date) []hijri.Date {
	o := it.opts
	if len(o.ByWeekday) == 0 {
		return []hijri.Date{anchor}
	}
	var out []hijri.Date
	day := anchor
	for i := 0; i < 7; i++ {
		if containsWeekday(o.ByWeekday, day.Weekday(o.Calendar)) {
			out = append(out, day)
		}
		next, err := hijri.AddDays(o.Calendar, day, 1)
		if err != nil {
			break
		}
		day = next
	}
	return out
}

func (it *Iterator) dailyCandidates(anchor hijri.Date) []hijri.Date {
	o := it.opts
	if len(o.ByMonth) > 0 && !containsInt(o.ByMonth, anchor.Month()) {
		return nil
	}
	length := o.Calendar.MonthLength(anchor.Year(), anchor.Month())
	if len(o.ByMonthDay) > 0 || len(o.ByNMonthDay) > 0 {
		match := containsInt(o.ByMonthDay, anchor.Day())
		for _, n := range o.ByNMonthDay {
			if anchor.Day() == length+n+1 {
				match = true
			}
		}
		if !match {
			return nil
		}
	}
	if len(o.ByWeekday) > 0 && !containsWeekday(o.ByWeekday, anchor.Weekday(o.Calendar)) {
		return nil
	}
	return []hijri.Date{anchor}
}

// monthSuite generates candidates for one month: positive month days
// (subject to SKIP), else negative month days, else nth weekdays, else
// simple weekday scan, else the single default day clamped to the month
// length.
func (it *Iterator) monthSuite(y, m, defaultDay int) []hijri.Date {
	o := it.opts
	length := o.Calendar.MonthLength(y, m)
	var out []hijri.Date
	switch {
	case len(o.ByMonthDay) > 0 || len(o.ByNMonthDay) > 0:
		out = it.monthDayCandidates(y, m)
	case len(o.ByNWeekday) > 0:
		for _, spec := range o.ByNWeekday {
			if d, ok := hijri.NthWeekdayOfMonth(o.Calendar, y, m, spec.Weekday, spec.N.MustGet()).Get(); ok {
				if c, okc := it.mk(y, m, d.Day()); okc {
					out = append(out, c)
				}
			}
		}
	case len(o.ByWeekday) > 0:
		for d := 1; d <= length; d++ {
			if c, ok := it.mk(y, m, d); ok && containsWeekday(o.ByWeekday, c.Weekday(o.Calendar)) {
				out = append(out, c)
			}
		}
	default:
		if c, ok := it.mk(y, m, clampDay(defaultDay, length)); ok {
			out = append(out, c)
		}
	}
	return out
}

// monthDayCandidates applies the BYMONTHDAY rule to one month: the
// positive list under the SKIP policy, or failing that the negative list
// counted back from the month's end.
func (it *Iterator) monthDayCandidates(y, m int) []hijri.Date {
	o := it.opts
	length := o.Calendar.MonthLength(y, m)
	var out []hijri.Date
	if len(o.ByMonthDay) > 0 {
		for _, d := range o.ByMonthDay {
			out = append(out, it.skipAdjusted(y, m, d, length)...)
		}
		return out
	}
	for _, n := range o.ByNMonthDay {
		d := length + n + 1
		if d < 1 {
			continue
		}
		if c, ok := it.mk(y, m, d); ok {
			out = append(out, c)
		}
	}
	return out
}

// skipAdjusted resolves a positive month day against the actual month
// length under the SKIP policy.
func (it *Iterator) skipAdjusted(y, m, d, length int) []hijri.Date {
	if d < 1 {
		return nil
	}
	if d <= length {
		if c, ok := it.mk(y, m, d); ok {
			return []hijri.Date{c}
		}
		return nil
	}
	switch it.opts.Skip {
	case SkipBackward:
		if c, ok := it.mk(y, m, length); ok {
			return []hijri.Date{c}
		}
	case SkipForward:
		ny, nm := y, m+1
		if nm > 12 {
			ny, nm = y+1, 1
		}
		if c, ok := it.mk(ny, nm, 1); ok {
			return []hijri.Date{c}
		}
	}
	return nil
}

func (it *Iterator) yearDayCandidates(y int) []hijri.Date {
	o := it.opts
	yearLen := o.Calendar.YearLength(y)
	var out []hijri.Date
	for _, k := range o.ByYearDay {
		doy := k
		if k < 0 {
			doy = yearLen + k + 1
		}
		if doy < 1 || doy > yearLen {
			continue
		}
		m, d := 1, doy
		for d > o.Calendar.MonthLength(y, m) {
			d -= o.Calendar.MonthLength(y, m)
			m++
		}
		if c, ok := it.mk(y, m, d); ok {
			out = append(out, c)
		}
	}
	return out
}

// filterSimpleWeekday narrows candidates to the simple BYDAY weekdays
// when that filter is present.
func (it *Iterator) filterSimpleWeekday(cands []hijri.Date) []hijri.Date {
	o := it.opts
	if len(o.ByWeekday) == 0 {
		return cands
	}
	out := cands[:0]
	for _, c := range cands {
		if containsWeekday(o.ByWeekday, c.Weekday(o.Calendar)) {
			out = append(out, c)
		}
	}
	return out
}

// mk builds a candidate carrying the anchor's clock fields, dropping
// combinations the calendar rejects.
func (it *Iterator) mk(y, m, d int) (hijri.Date, bool) {
	h, mi, s := it.opts.Dtstart.Clock()
	date, err := hijri.NewDateTimeIn(it.opts.Calendar, y, m, d, h, mi, s)
	return date, err == nil
}

func applySetPos(cands []hijri.Date, positions []int) []hijri.Date {
	k := len(cands)
	var out []hijri.Date
	for _, p := range positions {
		switch {
		case p > 0 && p <= k:
			out = append(out, cands[p-1])
		case p < 0 && -p <= k:
			out = append(out, cands[k+p])
		}
	}
	return out
}

func sortDedup(cands []hijri.Date) []hijri.Date {
	if len(cands) < 2 {
		return cands
	}
	sort.Slice(cands, func(i, j int) bool {
		return cands[i].Key() < cands[j].Key()
	})
	out := cands[:1]
	for _, c := range cands[1:] {
		if c.Key() != out[len(out)-1].Key() {
			out = append(out, c)
		}
	}
	return out
}

func clampDay(d, length int) int {
	if d < 1 {
		return 1
	}
	if d > length {
		return length
	}
	return d
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func containsWeekday(values []hijri.Weekday, w hijri.Weekday) bool {
	for _, x := range values {
		if x == w {
			return true
		}
	}
	return false
}
