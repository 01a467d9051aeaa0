package hijri

import "strings"

// Canonical CALENDAR parameter values.
const (
	CalendarUmmAlQura = "HIJRI-UM-AL-QURA"
	CalendarTabular   = "HIJRI-TABULAR"
)

var calendarAliases = map[string]string{
	"hijri-um-al-qura": CalendarUmmAlQura,
	"umm-al-qura":      CalendarUmmAlQura,
	"umalqura":         CalendarUmmAlQura,
	"islamic-umalqura": CalendarUmmAlQura,
	"hijri-tabular":    CalendarTabular,
	"tabular":          CalendarTabular,
	"tbla":             CalendarTabular,
	"islamic-tbla":     CalendarTabular,
}

// ByName resolves a CALENDAR parameter value (or one of its documented
// aliases, case-insensitively) to a calendar instance.
func ByName(name string) (Calendar, error) {
	canonical, ok := calendarAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, InvalidInput("unknown calendar %q", name)
	}
	switch canonical {
	case CalendarUmmAlQura:
		return UmmAlQura(), nil
	default:
		return Tabular(), nil
	}
}
