package rrule

import (
	"log/slog"
	"sort"

	"github.com/samber/mo"

	"github.com/maktabah/hijrule/hijri"
)

// RuleSet composes recurrence rules and explicit dates: the union of the
// inclusion rules and RDATE entries minus the union of the exclusion
// rules and EXDATE entries, keyed at day granularity. Mutators clear the
// memoized results.
type RuleSet struct {
	rrules  []*Rule
	rdates  []hijri.Date
	exrules []*Rule
	exdates []hijri.Date
	tzid    string
	logger  *slog.Logger
	cache   *resultCache
}

// NewRuleSet returns an empty rule set with the default cache
// configuration.
func NewRuleSet() *RuleSet {
	return &RuleSet{cache: newResultCache(DefaultCacheConfig)}
}

// SetLogger attaches a logger for materialization diagnostics.
func (s *RuleSet) SetLogger(l *slog.Logger) {
	s.logger = l
}

// SetTzid sets the shared timezone id carried by the set.
func (s *RuleSet) SetTzid(tzid string) {
	s.tzid = tzid
	s.cache.clear()
}

// Tzid returns the shared timezone id.
func (s *RuleSet) Tzid() string { return s.tzid }

// RRule adds an inclusion rule.
func (s *RuleSet) RRule(r *Rule) {
	s.rrules = append(s.rrules, r)
	s.cache.clear()
}

// RDate adds an explicit inclusion date.
func (s *RuleSet) RDate(d hijri.Date) {
	s.rdates = append(s.rdates, d)
	s.cache.clear()
}

// ExRule adds an exclusion rule.
func (s *RuleSet) ExRule(r *Rule) {
	s.exrules = append(s.exrules, r)
	s.cache.clear()
}

// ExDate adds an explicit exclusion date.
func (s *RuleSet) ExDate(d hijri.Date) {
	s.exdates = append(s.exdates, d)
	s.cache.clear()
}

// materialize computes the sorted inclusion-minus-exclusion sequence.
func (s *RuleSet) materialize() []hijri.Date {
	included := make(map[int]hijri.Date)
	for _, r := range s.rrules {
		for _, d := range r.All() {
			included[d.Key()] = d
		}
	}
	for _, d := range s.rdates {
		included[d.Key()] = d
	}

	excluded := make(map[int]struct{})
	for _, r := range s.exrules {
		for _, d := range r.All() {
			excluded[d.Key()] = struct{}{}
		}
	}
	for _, d := range s.exdates {
		excluded[d.Key()] = struct{}{}
	}

	out := make([]hijri.Date, 0, len(included))
	for key, d := range included {
		if _, ok := excluded[key]; !ok {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key() < out[j].Key()
	})
	if s.logger != nil {
		s.logger.Debug("rule set materialized",
			"included", len(included), "excluded", len(excluded), "result", len(out))
	}
	return out
}

// All returns the set's occurrences in ascending order. Memoized.
func (s *RuleSet) All() []hijri.Date {
	key := sequenceKey("all")
	if dates, ok := s.cache.getDates(key); ok {
		return dates
	}
	dates := s.materialize()
	s.cache.setDates(key, dates)
	return dates
}

// Iterator returns a pull stream over the set's occurrences.
func (s *RuleSet) Iterator() *SetIterator {
	return &SetIterator{dates: s.All()}
}

// SetIterator yields a rule set's occurrences in ascending order.
type SetIterator struct {
	dates []hijri.Date
	pos   int
}

// Next returns the next occurrence, or None when the set is exhausted.
func (it *SetIterator) Next() mo.Option[hijri.Date] {
	if it.pos >= len(it.dates) {
		return mo.None[hijri.Date]()
	}
	d := it.dates[it.pos]
	it.pos++
	return mo.Some(d)
}

// AllFunc walks the occurrences through the callback, stopping when it
// returns false. Not memoized.
func (s *RuleSet) AllFunc(fn func(hijri.Date) bool) []hijri.Date {
	var out []hijri.Date
	for _, d := range s.materialize() {
		if fn != nil && !fn(d) {
			return out
		}
		out = append(out, d)
	}
	return out
}

// Between returns the occurrences between a and b under the inclusive
// flag. Memoized.
func (s *RuleSet) Between(a, b hijri.Date, inclusive bool) []hijri.Date {
	key := sequenceKey("between", dateKey(a), dateKey(b), boolKey(inclusive))
	if dates, ok := s.cache.getDates(key); ok {
		return dates
	}
	var out []hijri.Date
	for _, d := range s.All() {
		if d.Before(a) || (!inclusive && d.Equal(a)) {
			continue
		}
		if d.After(b) || (!inclusive && d.Equal(b)) {
			break
		}
		out = append(out, d)
	}
	s.cache.setDates(key, out)
	return out
}

// After returns the first occurrence after d, or on d when inclusive.
func (s *RuleSet) After(d hijri.Date, inclusive bool) mo.Option[hijri.Date] {
	key := sequenceKey("after", dateKey(d), boolKey(inclusive))
	if res, ok := s.cache.getSingle(key); ok {
		return res
	}
	res := mo.None[hijri.Date]()
	for _, c := range s.All() {
		if c.After(d) || (inclusive && c.Equal(d)) {
			res = mo.Some(c)
			break
		}
	}
	s.cache.setSingle(key, res)
	return res
}

// Before returns the last occurrence before d, or on d when inclusive.
func (s *RuleSet) Before(d hijri.Date, inclusive bool) mo.Option[hijri.Date] {
	key := sequenceKey("before", dateKey(d), boolKey(inclusive))
	if res, ok := s.cache.getSingle(key); ok {
		return res
	}
	res := mo.None[hijri.Date]()
	for _, c := range s.All() {
		if c.Before(d) || (inclusive && c.Equal(d)) {
			res = mo.Some(c)
			continue
		}
		break
	}
	s.cache.setSingle(key, res)
	return res
}
