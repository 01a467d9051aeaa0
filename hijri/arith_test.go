package hijri

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, cal Calendar, y, m, d int) Date {
	t.Helper()
	date, err := NewDateIn(cal, y, m, d)
	require.NoError(t, err)
	return date
}

func TestAddDays(t *testing.T) {
	cal := Tabular()

	got, err := AddDays(cal, mustDate(t, cal, 1446, 1, 1), 30)
	require.NoError(t, err)
	assert.True(t, mustDate(t, cal, 1446, 2, 1).Equal(got))

	got, err = AddDays(cal, mustDate(t, cal, 1446, 12, 29), 1)
	require.NoError(t, err)
	assert.True(t, mustDate(t, cal, 1447, 1, 1).Equal(got))

	got, err = AddDays(cal, mustDate(t, cal, 1446, 2, 1), -30)
	require.NoError(t, err)
	assert.True(t, mustDate(t, cal, 1446, 1, 1).Equal(got))
}

func TestAddDaysBeforeEpoch(t *testing.T) {
	cal := Tabular()
	_, err := AddDays(cal, mustDate(t, cal, 1, 1, 1), -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfEpoch))
}

func TestAddDaysKeepsClock(t *testing.T) {
	cal := Tabular()
	d, err := NewDateTimeIn(cal, 1446, 1, 1, 6, 15, 0)
	require.NoError(t, err)
	got, err := AddDays(cal, d, 1)
	require.NoError(t, err)
	h, m, _ := got.Clock()
	assert.Equal(t, 6, h)
	assert.Equal(t, 15, m)
}

func TestAddMonths(t *testing.T) {
	cal := Tabular()

	got, err := AddMonths(cal, mustDate(t, cal, 1446, 1, 15), 1, false)
	require.NoError(t, err)
	assert.True(t, mustDate(t, cal, 1446, 2, 15).Equal(got.MustGet()))

	// Month 2 has 29 days, so the 30th clamps or vanishes.
	got, err = AddMonths(cal, mustDate(t, cal, 1446, 1, 30), 1, true)
	require.NoError(t, err)
	assert.True(t, mustDate(t, cal, 1446, 2, 29).Equal(got.MustGet()))

	got, err = AddMonths(cal, mustDate(t, cal, 1446, 1, 30), 1, false)
	require.NoError(t, err)
	assert.True(t, got.IsAbsent())

	got, err = AddMonths(cal, mustDate(t, cal, 1446, 11, 1), 2, false)
	require.NoError(t, err)
	assert.True(t, mustDate(t, cal, 1447, 1, 1).Equal(got.MustGet()))

	_, err = AddMonths(cal, mustDate(t, cal, 1, 1, 1), -1, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfEpoch))
}

func TestAddYears(t *testing.T) {
	cal := Tabular()

	got, err := AddYears(cal, mustDate(t, cal, 1446, 9, 1), 1, false)
	require.NoError(t, err)
	assert.True(t, mustDate(t, cal, 1447, 9, 1).Equal(got.MustGet()))

	// 30 Dhu al-Hijjah of a leap year has no counterpart in a common year.
	got, err = AddYears(cal, mustDate(t, cal, 1445, 12, 30), 1, true)
	require.NoError(t, err)
	assert.True(t, mustDate(t, cal, 1446, 12, 29).Equal(got.MustGet()))

	got, err = AddYears(cal, mustDate(t, cal, 1445, 12, 30), 1, false)
	require.NoError(t, err)
	assert.True(t, got.IsAbsent())

	_, err = AddYears(cal, mustDate(t, cal, 1446, 1, 1), -1446, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfEpoch))
}

func TestNthWeekdayOfMonth(t *testing.T) {
	cal := Tabular()
	// Muharram 1446 opens on a Monday and has 30 days, so its Fridays are
	// the 5th, 12th, 19th and 26th.
	tests := []struct {
		name    string
		w       Weekday
		n       int
		wantDay int
		absent  bool
	}{
		{"first friday", Friday, 1, 5, false},
		{"second friday", Friday, 2, 12, false},
		{"last friday", Friday, -1, 26, false},
		{"second to last friday", Friday, -2, 19, false},
		{"fifth friday", Friday, 5, 0, true},
		{"first monday", Monday, 1, 1, false},
		{"fifth monday", Monday, 5, 29, false},
		{"zero n", Friday, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NthWeekdayOfMonth(cal, 1446, 1, tt.w, tt.n)
			if tt.absent {
				assert.True(t, got.IsAbsent())
				return
			}
			d, ok := got.Get()
			require.True(t, ok)
			assert.Equal(t, tt.wantDay, d.Day())
			assert.Equal(t, tt.w, d.Weekday(cal))
		})
	}
}

func TestPeriodBoundaries(t *testing.T) {
	cal := Tabular()
	d := mustDate(t, cal, 1446, 9, 17)

	assert.Equal(t, 1, StartOfMonth(d).Day())
	assert.Equal(t, 30, EndOfMonth(cal, d).Day())
	assert.Equal(t, 1, StartOfYear(d).Month())
	assert.Equal(t, 1, StartOfYear(d).Day())
	assert.Equal(t, 12, EndOfYear(cal, d).Month())
	assert.Equal(t, 29, EndOfYear(cal, d).Day())
	assert.Equal(t, 30, EndOfYear(cal, mustDate(t, cal, 1445, 1, 1)).Day())
}

func TestStartOfWeek(t *testing.T) {
	cal := Tabular()
	monday := mustDate(t, cal, 1446, 1, 1)
	require.Equal(t, Monday, monday.Weekday(cal))

	got, err := StartOfWeek(cal, monday, Monday)
	require.NoError(t, err)
	assert.True(t, monday.Equal(got))

	got, err = StartOfWeek(cal, monday, Sunday)
	require.NoError(t, err)
	assert.True(t, mustDate(t, cal, 1445, 12, 30).Equal(got))
	assert.Equal(t, Sunday, got.Weekday(cal))
}
