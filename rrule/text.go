package rrule

import (
	"strconv"
	"strings"

	"github.com/samber/mo"

	"github.com/maktabah/hijrule/hijri"
)

// Parse builds a rule from the textual form: an optional DTSTART line
// (with the CALENDAR parameter naming the Hijri back-end) followed by an
// RRULE line. Property names are case-insensitive; unknown property
// names are ignored.
func Parse(text string) (*Rule, error) {
	opts, err := parseOptionsText(text)
	if err != nil {
		return nil, err
	}
	return NewRule(opts)
}

func parseOptionsText(text string) (Options, error) {
	var opts Options
	var ruleContent []string

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "DTSTART"):
			if err := parseDtstartLine(line, &opts); err != nil {
				return Options{}, err
			}
		case strings.HasPrefix(upper, "RRULE:"):
			ruleContent = append(ruleContent, line[len("RRULE:"):])
		case !strings.Contains(line, ":") && strings.Contains(line, "="):
			// A bare property list is accepted as the RRULE content.
			ruleContent = append(ruleContent, line)
		default:
			return Options{}, hijri.InvalidInput("unrecognized line %q", line)
		}
	}

	cal := opts.Calendar
	if cal == nil {
		cal = hijri.Default()
	}
	for _, content := range ruleContent {
		if err := parseRuleContent(content, cal, &opts); err != nil {
			return Options{}, err
		}
	}
	if opts.Freq == 0 {
		return Options{}, hijri.InvalidInput("FREQ is required")
	}
	return opts, nil
}

func parseDtstartLine(line string, opts *Options) error {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return hijri.InvalidInput("malformed DTSTART line %q", line)
	}
	header, value := line[:idx], line[idx+1:]

	cal := hijri.Default()
	for _, param := range strings.Split(header, ";")[1:] {
		kv := strings.SplitN(param, "=", 2)
		if len(kv) != 2 {
			return hijri.InvalidInput("malformed DTSTART parameter %q", param)
		}
		switch strings.ToUpper(strings.TrimSpace(kv[0])) {
		case "CALENDAR":
			named, err := hijri.ByName(kv[1])
			if err != nil {
				return err
			}
			cal = named
		case "TZID":
			opts.Tzid = kv[1]
		}
	}
	opts.Calendar = cal

	d, err := hijri.ParseToken(cal, value)
	if err != nil {
		return err
	}
	opts.Dtstart = mo.Some(d)
	return nil
}

func parseRuleContent(content string, cal hijri.Calendar, opts *Options) error {
	for _, part := range strings.Split(content, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return hijri.InvalidInput("malformed RRULE property %q", part)
		}
		name := strings.ToUpper(strings.TrimSpace(kv[0]))
		value := strings.TrimSpace(kv[1])

		var err error
		switch name {
		case "FREQ":
			opts.Freq, err = ParseFrequency(value)
		case "INTERVAL":
			var n int
			n, err = parseInt(name, value)
			opts.Interval = n
		case "WKST":
			var w hijri.Weekday
			w, err = hijri.ParseWeekday(strings.ToUpper(value))
			opts.Wkst = mo.Some(w)
		case "COUNT":
			var n int
			n, err = parseInt(name, value)
			opts.Count = mo.Some(n)
		case "UNTIL":
			var d hijri.Date
			d, err = hijri.ParseToken(cal, value)
			opts.Until = mo.Some(d)
		case "TZID":
			opts.Tzid = value
		case "BYSETPOS":
			opts.BySetPos, err = parseIntList(name, value)
		case "BYMONTH":
			opts.ByMonth, err = parseIntList(name, value)
		case "BYMONTHDAY":
			opts.ByMonthDay, err = parseIntList(name, value)
		case "BYYEARDAY":
			opts.ByYearDay, err = parseIntList(name, value)
		case "BYWEEKNO":
			opts.ByWeekNo, err = parseIntList(name, value)
		case "BYDAY", "BYWEEKDAY":
			opts.ByWeekday, err = parseWeekdayList(value)
		case "BYHOUR":
			opts.ByHour, err = parseIntList(name, value)
		case "BYMINUTE":
			opts.ByMinute, err = parseIntList(name, value)
		case "BYSECOND":
			opts.BySecond, err = parseIntList(name, value)
		case "SKIP":
			opts.Skip, err = ParseSkip(value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func parseInt(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, hijri.InvalidInput("%s value %q is not an integer", name, value)
	}
	return n, nil
}

func parseIntList(name, value string) ([]int, error) {
	parts := strings.Split(value, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := parseInt(name, part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func parseWeekdayList(value string) ([]hijri.WeekdaySpec, error) {
	parts := strings.Split(value, ",")
	out := make([]hijri.WeekdaySpec, 0, len(parts))
	for _, part := range parts {
		spec, err := hijri.ParseWeekdaySpec(strings.ToUpper(strings.TrimSpace(part)))
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}
