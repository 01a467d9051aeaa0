package rrule

import (
	"strings"

	"github.com/emersion/go-ical"
	"github.com/samber/mo"

	"github.com/maktabah/hijrule/hijri"
)

// RuleSetFromComponent builds a rule set from a component's DTSTART,
// RRULE, RDATE and EXDATE properties. Date values are Hijri tokens; the
// back-end is named by the CALENDAR parameter on DTSTART and may be
// overridden per date property. A missing CALENDAR parameter means the
// process default.
func RuleSetFromComponent(comp *ical.Component) (*RuleSet, error) {
	set := NewRuleSet()

	cal := hijri.Default()
	dtstart := mo.None[hijri.Date]()
	if prop := comp.Props.Get(ical.PropDateTimeStart); prop != nil && prop.Value != "" {
		if name := prop.Params.Get("CALENDAR"); name != "" {
			named, err := hijri.ByName(name)
			if err != nil {
				return nil, err
			}
			cal = named
		}
		if tzid := prop.Params.Get("TZID"); tzid != "" {
			set.SetTzid(tzid)
		}
		d, err := hijri.ParseToken(cal, prop.Value)
		if err != nil {
			return nil, err
		}
		dtstart = mo.Some(d)
	}

	for _, prop := range comp.Props.Values(ical.PropRecurrenceRule) {
		opts := Options{Calendar: cal, Dtstart: dtstart, Tzid: set.Tzid()}
		if err := parseRuleContent(prop.Value, cal, &opts); err != nil {
			return nil, err
		}
		r, err := NewRule(opts)
		if err != nil {
			return nil, err
		}
		set.RRule(r)
	}

	rdates, err := parsePropDates(cal, comp.Props.Values(ical.PropRecurrenceDates))
	if err != nil {
		return nil, err
	}
	for _, d := range rdates {
		set.RDate(d)
	}

	exdates, err := parsePropDates(cal, comp.Props.Values(ical.PropExceptionDates))
	if err != nil {
		return nil, err
	}
	for _, d := range exdates {
		set.ExDate(d)
	}

	return set, nil
}

// parsePropDates reads the comma-separated Hijri tokens of RDATE or
// EXDATE properties. A CALENDAR parameter on the property overrides the
// inherited back-end for its own values.
func parsePropDates(cal hijri.Calendar, props []ical.Prop) ([]hijri.Date, error) {
	var out []hijri.Date
	for _, prop := range props {
		propCal := cal
		if name := prop.Params.Get("CALENDAR"); name != "" {
			named, err := hijri.ByName(name)
			if err != nil {
				return nil, err
			}
			propCal = named
		}
		for _, token := range strings.Split(prop.Value, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			d, err := hijri.ParseToken(propCal, token)
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		}
	}
	return out, nil
}

// ApplyToComponent writes the rule's DTSTART and RRULE properties onto a
// component, replacing any existing values.
func (r *Rule) ApplyToComponent(comp *ical.Component) {
	p := r.parsed

	dtstart := ical.NewProp(ical.PropDateTimeStart)
	dtstart.Params.Set("CALENDAR", p.Calendar.Name())
	if p.Tzid != "" {
		dtstart.Params.Set("TZID", p.Tzid)
	}
	dtstart.Value = p.Dtstart.Token()
	comp.Props.Set(dtstart)

	rrule := ical.NewProp(ical.PropRecurrenceRule)
	rrule.Value = r.ruleContent()
	comp.Props.Set(rrule)
}
