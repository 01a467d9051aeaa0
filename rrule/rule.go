package rrule

import (
	"github.com/samber/mo"

	"github.com/maktabah/hijrule/hijri"
)

// Rule is an immutable recurrence rule. Its query results are memoized;
// the callback variants bypass the cache.
type Rule struct {
	orig   Options
	parsed *ParsedOptions
	cache  *resultCache
}

// NewRule validates and normalizes the options into a rule with the
// default cache configuration.
func NewRule(opts Options) (*Rule, error) {
	return NewRuleWithCache(opts, DefaultCacheConfig)
}

// NewRuleWithCache builds a rule with an explicit cache configuration.
func NewRuleWithCache(opts Options, cache CacheConfig) (*Rule, error) {
	parsed, err := ParseOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Rule{orig: opts, parsed: parsed, cache: newResultCache(cache)}, nil
}

// Options returns the normalized options, for consumers such as text
// renderers.
func (r *Rule) Options() ParsedOptions {
	return *r.parsed
}

// Iterator returns a fresh occurrence stream.
func (r *Rule) Iterator() *Iterator {
	return newIterator(r.parsed)
}

// All returns every occurrence of the rule. The result is memoized.
func (r *Rule) All() []hijri.Date {
	key := sequenceKey("all")
	if dates, ok := r.cache.getDates(key); ok {
		return dates
	}
	dates := drain(r.Iterator(), nil)
	r.cache.setDates(key, dates)
	return dates
}

// AllFunc drains the stream through the callback, stopping when it
// returns false. Results are not memoized.
func (r *Rule) AllFunc(fn func(hijri.Date) bool) []hijri.Date {
	return drain(r.Iterator(), fn)
}

// Between returns the occurrences between a and b. The inclusive flag
// governs both endpoints. The result is memoized.
func (r *Rule) Between(a, b hijri.Date, inclusive bool) []hijri.Date {
	key := sequenceKey("between", dateKey(a), dateKey(b), boolKey(inclusive))
	if dates, ok := r.cache.getDates(key); ok {
		return dates
	}
	dates := between(r.Iterator(), a, b, inclusive, nil)
	r.cache.setDates(key, dates)
	return dates
}

// BetweenFunc is Between with a short-circuiting callback and no
// memoization.
func (r *Rule) BetweenFunc(a, b hijri.Date, inclusive bool, fn func(hijri.Date) bool) []hijri.Date {
	return between(r.Iterator(), a, b, inclusive, fn)
}

// After returns the first occurrence after d, or on d when inclusive.
func (r *Rule) After(d hijri.Date, inclusive bool) mo.Option[hijri.Date] {
	key := sequenceKey("after", dateKey(d), boolKey(inclusive))
	if res, ok := r.cache.getSingle(key); ok {
		return res
	}
	res := after(r.Iterator(), d, inclusive)
	r.cache.setSingle(key, res)
	return res
}

// Before returns the last occurrence before d, or on d when inclusive.
func (r *Rule) Before(d hijri.Date, inclusive bool) mo.Option[hijri.Date] {
	key := sequenceKey("before", dateKey(d), boolKey(inclusive))
	if res, ok := r.cache.getSingle(key); ok {
		return res
	}
	res := before(r.Iterator(), d, inclusive)
	r.cache.setSingle(key, res)
	return res
}

// drain pulls the stream to exhaustion, short-circuiting when fn returns
// false.
func drain(it *Iterator, fn func(hijri.Date) bool) []hijri.Date {
	var out []hijri.Date
	for {
		d, ok := it.Next().Get()
		if !ok {
			return out
		}
		if fn != nil && !fn(d) {
			return out
		}
		out = append(out, d)
	}
}

func between(it *Iterator, a, b hijri.Date, inclusive bool, fn func(hijri.Date) bool) []hijri.Date {
	var out []hijri.Date
	for {
		d, ok := it.Next().Get()
		if !ok {
			return out
		}
		if d.Before(a) || (!inclusive && d.Equal(a)) {
			continue
		}
		if d.After(b) || (!inclusive && d.Equal(b)) {
			return out
		}
		if fn != nil && !fn(d) {
			return out
		}
		out = append(out, d)
	}
}

func after(it *Iterator, d hijri.Date, inclusive bool) mo.Option[hijri.Date] {
	for {
		c, ok := it.Next().Get()
		if !ok {
			return mo.None[hijri.Date]()
		}
		if c.After(d) || (inclusive && c.Equal(d)) {
			return mo.Some(c)
		}
	}
}

func before(it *Iterator, d hijri.Date, inclusive bool) mo.Option[hijri.Date] {
	res := mo.None[hijri.Date]()
	for {
		c, ok := it.Next().Get()
		if !ok {
			return res
		}
		if c.Before(d) || (inclusive && c.Equal(d)) {
			res = mo.Some(c)
			continue
		}
		return res
	}
}
