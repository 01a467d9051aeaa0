package rrule

import (
	"errors"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maktabah/hijrule/hijri"
)

func tabDate(t *testing.T, y, m, d int) hijri.Date {
	t.Helper()
	date, err := hijri.NewDateIn(hijri.Tabular(), y, m, d)
	require.NoError(t, err)
	return date
}

func TestParseOptionsDefaults(t *testing.T) {
	parsed, err := ParseOptions(Options{
		Freq:     Monthly,
		Dtstart:  mo.Some(tabDate(t, 1446, 1, 1)),
		Calendar: hijri.Tabular(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, parsed.Interval)
	assert.Equal(t, hijri.Sunday, parsed.Wkst)
	assert.Equal(t, SkipOmit, parsed.Skip)
	assert.Equal(t, hijri.CalendarTabular, parsed.Calendar.Name())
	assert.True(t, parsed.Count.IsAbsent())
	assert.True(t, parsed.Until.IsAbsent())
}

func TestParseOptionsDefaultCalendar(t *testing.T) {
	parsed, err := ParseOptions(Options{
		Freq:    Daily,
		Dtstart: mo.Some(tabDate(t, 1446, 1, 1)),
	})
	require.NoError(t, err)
	assert.Equal(t, hijri.Default().Name(), parsed.Calendar.Name())
}

func TestParseOptionsFreqRequired(t *testing.T) {
	_, err := ParseOptions(Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, hijri.ErrInvalidInput))
	assert.Contains(t, err.Error(), "FREQ is required")
}

func TestParseOptionsSplitsMonthDays(t *testing.T) {
	parsed, err := ParseOptions(Options{
		Freq:       Monthly,
		Dtstart:    mo.Some(tabDate(t, 1446, 1, 1)),
		ByMonthDay: []int{1, -1, 15, -3},
		Calendar:   hijri.Tabular(),
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 15}, parsed.ByMonthDay)
	assert.Equal(t, []int{-1, -3}, parsed.ByNMonthDay)
}

func TestParseOptionsSplitsWeekdays(t *testing.T) {
	parsed, err := ParseOptions(Options{
		Freq:      Monthly,
		Dtstart:   mo.Some(tabDate(t, 1446, 1, 1)),
		ByWeekday: []hijri.WeekdaySpec{hijri.Friday.Spec(), hijri.Monday.Nth(-1)},
		Calendar:  hijri.Tabular(),
	})
	require.NoError(t, err)
	assert.Equal(t, []hijri.Weekday{hijri.Friday}, parsed.ByWeekday)
	assert.Equal(t, []hijri.WeekdaySpec{hijri.Monday.Nth(-1)}, parsed.ByNWeekday)
}

func TestParseOptionsValidation(t *testing.T) {
	base := func() Options {
		return Options{
			Freq:     Monthly,
			Dtstart:  mo.Some(tabDate(t, 1446, 1, 1)),
			Calendar: hijri.Tabular(),
		}
	}
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"zero month day", func(o *Options) { o.ByMonthDay = []int{0} }},
		{"month day too large", func(o *Options) { o.ByMonthDay = []int{31} }},
		{"month day too small", func(o *Options) { o.ByMonthDay = []int{-31} }},
		{"month out of range", func(o *Options) { o.ByMonth = []int{13} }},
		{"month zero", func(o *Options) { o.ByMonth = []int{0} }},
		{"year day zero", func(o *Options) { o.ByYearDay = []int{0} }},
		{"year day too large", func(o *Options) { o.ByYearDay = []int{356} }},
		{"setpos zero", func(o *Options) { o.BySetPos = []int{0} }},
		{"week number zero", func(o *Options) { o.ByWeekNo = []int{0} }},
		{"hour out of range", func(o *Options) { o.ByHour = []int{24} }},
		{"minute out of range", func(o *Options) { o.ByMinute = []int{60} }},
		{"second out of range", func(o *Options) { o.BySecond = []int{60} }},
		{"negative interval", func(o *Options) { o.Interval = -1 }},
		{"negative count", func(o *Options) { o.Count = mo.Some(-1) }},
		{"zero byday ordinal", func(o *Options) { o.ByWeekday = []hijri.WeekdaySpec{hijri.Friday.Nth(0)} }},
		{"unknown freq", func(o *Options) { o.Freq = Frequency(99) }},
		{"unknown skip", func(o *Options) { o.Skip = Skip(99) }},
		{"unknown wkst", func(o *Options) { o.Wkst = mo.Some(hijri.Weekday(9)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := base()
			tt.mutate(&opts)
			_, err := ParseOptions(opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, hijri.ErrInvalidInput))
		})
	}
}

func TestParseOptionsCivilDtstart(t *testing.T) {
	cal := hijri.Tabular()
	civil := tabDate(t, 1446, 9, 1).TimeIn(cal, nil)
	parsed, err := ParseOptions(Options{
		Freq:        Daily,
		DtstartTime: mo.Some(civil),
		Calendar:    cal,
	})
	require.NoError(t, err)
	assert.True(t, tabDate(t, 1446, 9, 1).Equal(parsed.Dtstart))
}

func TestFrequencyNames(t *testing.T) {
	for _, f := range []Frequency{Yearly, Monthly, Weekly, Daily, Hourly, Minutely, Secondly} {
		parsed, err := ParseFrequency(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}
	_, err := ParseFrequency("FORTNIGHTLY")
	assert.Error(t, err)
	assert.Equal(t, "UNKNOWN", Frequency(0).String())
}

func TestSkipNames(t *testing.T) {
	for _, s := range []Skip{SkipOmit, SkipBackward, SkipForward} {
		parsed, err := ParseSkip(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := ParseSkip("SIDEWAYS")
	assert.Error(t, err)
}
