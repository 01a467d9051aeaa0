package hijri

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"HIJRI-UM-AL-QURA", CalendarUmmAlQura},
		{"hijri-um-al-qura", CalendarUmmAlQura},
		{"umm-al-qura", CalendarUmmAlQura},
		{"UMALQURA", CalendarUmmAlQura},
		{"islamic-umalqura", CalendarUmmAlQura},
		{"HIJRI-TABULAR", CalendarTabular},
		{"tabular", CalendarTabular},
		{"TBLA", CalendarTabular},
		{"islamic-tbla", CalendarTabular},
		{" tabular ", CalendarTabular},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal, err := ByName(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cal.Name())
		})
	}
}

func TestByNameUnknown(t *testing.T) {
	_, err := ByName("gregorian")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestDefaultCalendar(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	assert.Equal(t, CalendarUmmAlQura, orig.Name())

	SetDefault(Tabular())
	assert.Equal(t, CalendarTabular, Default().Name())
}

func TestFallbackLogsWarning(t *testing.T) {
	var buf strings.Builder
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	UmmAlQura().MonthLength(1200, 1)
	assert.Contains(t, buf.String(), "falling back to tabular arithmetic")
	assert.Contains(t, buf.String(), "year=1200")
}
