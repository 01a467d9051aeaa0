package julian

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCivil(t *testing.T) {
	tests := []struct {
		name    string
		y, m, d int
		want    int
	}{
		{"unix epoch", 1970, 1, 1, 2440588},
		{"j2000", 2000, 1, 1, 2451545},
		{"gregorian reform day", 1582, 10, 15, 2299161},
		{"islamic epoch", 622, 7, 19, 1948440},
		{"leap day", 2024, 2, 29, 2460370},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromCivil(tt.y, tt.m, tt.d))
		})
	}
}

func TestToCivil(t *testing.T) {
	y, m, d := ToCivil(2440588)
	assert.Equal(t, 1970, y)
	assert.Equal(t, 1, m)
	assert.Equal(t, 1, d)

	y, m, d = ToCivil(1948440)
	assert.Equal(t, 622, y)
	assert.Equal(t, 7, m)
	assert.Equal(t, 19, d)
}

func TestRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("civil conversion round-trips on the day-number line", prop.ForAll(
		func(dn int) bool {
			y, m, d := ToCivil(dn)
			return FromCivil(y, m, d) == dn
		},
		gen.IntRange(1948440, 2600000),
	))

	properties.TestingRun(t)
}

func TestFromTime(t *testing.T) {
	loc, err := time.LoadLocation("UTC")
	require.NoError(t, err)
	assert.Equal(t, 2440588, FromTime(time.Date(1970, 1, 1, 23, 59, 59, 0, loc)))
}

func TestToTime(t *testing.T) {
	got := ToTime(2451545, 12, 30, 45, time.UTC)
	assert.Equal(t, time.Date(2000, 1, 1, 12, 30, 45, 0, time.UTC), got)

	// A nil location means local time.
	got = ToTime(2451545, 0, 0, 0, nil)
	assert.Equal(t, 2000, got.Year())
}
