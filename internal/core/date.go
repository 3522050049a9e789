package core

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// dateLayouts are tried in order against trimmed input. Numeric layouts are
// day-first: exports from the CRM write 21/09/2025, never the US order.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2/1/2006 15:04",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2.1.2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006 15:04",
}

// ordinalDateRegex matches our own output format, "21st September", with an
// optional year. Re-cleaning a cleaned cell must parse.
var ordinalDateRegex = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)\s+([A-Za-z]+)(?:\s+(\d{4}))?$`)

// ParseDate parses the free-form date strings found in export cells.
// Time-of-day components are accepted and discarded by the caller.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || isNAToken(s) {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if m := ordinalDateRegex.FindStringSubmatch(s); m != nil {
		year := m[3]
		if year == "" {
			year = "0000"
		}
		if t, err := time.Parse("2 January 2006", m[1]+" "+m[2]+" "+year); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a date in the report style: "21st September".
func FormatDate(t time.Time) string {
	day := t.Day()
	return fmt.Sprintf("%d%s %s", day, ordinalSuffix(day), t.Month().String())
}

// CleanDate parses and reformats a date cell. NA-like input comes back empty
// with no reason; anything else that fails to parse is reported.
func CleanDate(raw string) (cleaned, reason string) {
	s := strings.TrimSpace(raw)
	if isNAToken(s) {
		return "", ""
	}
	t, ok := ParseDate(s)
	if !ok {
		return "", ReasonUnparseableDate
	}
	return FormatDate(t), ""
}

func ordinalSuffix(day int) string {
	// 11th, 12th, 13th before the mod-10 rule.
	if v := day % 100; v >= 11 && v <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
