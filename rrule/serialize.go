package rrule

import (
	"strconv"
	"strings"

	"github.com/maktabah/hijrule/hijri"
)

// String renders the rule in its textual form: a DTSTART line carrying
// the CALENDAR parameter when an anchor was given, then the RRULE line
// with properties in canonical order. Defaults are omitted.
func (r *Rule) String() string {
	var lines []string
	if r.orig.Dtstart.IsPresent() || r.orig.DtstartTime.IsPresent() {
		lines = append(lines, r.dtstartLine())
	}
	lines = append(lines, "RRULE:"+r.ruleContent())
	return strings.Join(lines, "\n")
}

func (r *Rule) dtstartLine() string {
	var b strings.Builder
	b.WriteString("DTSTART;CALENDAR=")
	b.WriteString(r.parsed.Calendar.Name())
	if r.parsed.Tzid != "" {
		b.WriteString(";TZID=")
		b.WriteString(r.parsed.Tzid)
	}
	b.WriteString(":")
	b.WriteString(r.parsed.Dtstart.Token())
	return b.String()
}

func (r *Rule) ruleContent() string {
	p := r.parsed
	props := []string{"FREQ=" + p.Freq.String()}
	if p.Interval != 1 {
		props = append(props, "INTERVAL="+strconv.Itoa(p.Interval))
	}
	if p.Wkst != hijri.Sunday {
		props = append(props, "WKST="+p.Wkst.String())
	}
	if n, ok := p.Count.Get(); ok {
		props = append(props, "COUNT="+strconv.Itoa(n))
	}
	if u, ok := p.Until.Get(); ok {
		props = append(props, "UNTIL="+u.Token())
	}
	props = appendIntList(props, "BYSETPOS", p.BySetPos)
	props = appendIntList(props, "BYMONTH", p.ByMonth)
	props = appendIntList(props, "BYMONTHDAY", r.orig.ByMonthDay)
	props = appendIntList(props, "BYYEARDAY", p.ByYearDay)
	props = appendIntList(props, "BYWEEKNO", p.ByWeekNo)
	if len(r.orig.ByWeekday) > 0 {
		days := make([]string, 0, len(r.orig.ByWeekday))
		for _, spec := range r.orig.ByWeekday {
			days = append(days, spec.RRuleString())
		}
		props = append(props, "BYDAY="+strings.Join(days, ","))
	}
	props = appendIntList(props, "BYHOUR", p.ByHour)
	props = appendIntList(props, "BYMINUTE", p.ByMinute)
	props = appendIntList(props, "BYSECOND", p.BySecond)
	if p.Skip != SkipOmit {
		props = append(props, "SKIP="+p.Skip.String())
	}
	if p.Tzid != "" {
		props = append(props, "TZID="+p.Tzid)
	}
	return strings.Join(props, ";")
}

func appendIntList(props []string, name string, values []int) []string {
	if len(values) == 0 {
		return props
	}
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return append(props, name+"="+strings.Join(parts, ","))
}
