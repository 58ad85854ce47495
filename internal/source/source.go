// Package source normalizes each city's raw crime table into the canonical
// record shape. Every city publishes a different schema; the loaders share
// only the macro-category lookup and the tolerant date handling — malformed
// dates and unmapped labels become nil fields, never errors.
package source

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// dateLayouts are the calendar-date forms the combined date-time columns use.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"2006/01/02",
}

// parseDateToken parses the calendar-date portion of a combined date-time
// string: split on whitespace, first token parsed as a date. Returns nil on
// any parse failure.
func parseDateToken(s string) *time.Time {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, fields[0]); err == nil {
			return &t
		}
	}
	return nil
}

// parseDayMonthYear reconstructs a date from a "day/month" string and a year
// string. A blank day/month defaults to "01/01", dating the record to
// January 1st of the year rather than discarding it.
func parseDayMonthYear(dayMonth, year string) *time.Time {
	dayMonth = strings.TrimSpace(dayMonth)
	if dayMonth == "" {
		dayMonth = "01/01"
	}
	t, err := time.Parse("2/1/2006", dayMonth+"/"+strings.TrimSpace(year))
	if err != nil {
		return nil
	}
	return &t
}

// macroFor looks up the macro category for a crime label. Unmapped labels
// yield nil; that is a recorded data-quality gap, not an error.
func macroFor(macros map[string]string, crime string) *string {
	if m, ok := macros[crime]; ok {
		return &m
	}
	return nil
}

// titleCase normalizes a raw crime label to title case before macro lookup.
func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ToLower(s))
}

// optional returns nil for a blank string.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func logSkippedRows(city string, skipped int) {
	if skipped > 0 {
		zap.L().Debug("source: skipped rows with no crime label",
			zap.String("city", city),
			zap.Int("skipped", skipped),
		)
	}
}
