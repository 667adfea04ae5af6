// Package datetime provides date utilities for weekly and monthly cost
// bucketing. All three anchors in the reporting model live here: labor weeks
// end on Sunday, trend weeks start on Monday, and monthly buckets key on
// YYYY-MM.
package datetime

import (
	"time"

	"github.com/clachance14/CostTrak-sub001/pkg/constants"
)

const (
	// WorkDateLayout is the format expected for work dates in record
	// snapshots and is also the output date format.
	WorkDateLayout = constants.WorkDateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// WeekEndingSunday returns the Sunday on or after the given date. A work day
// belongs to the week that closes on the following Sunday; a Sunday is its
// own week ending.
func WeekEndingSunday(date time.Time) time.Time {
	daysToSunday := (7 - int(date.Weekday())) % 7
	return date.AddDate(0, 0, daysToSunday)
}

// WeekStartMonday returns the Monday on or before the given date, the anchor
// used for weekly trend keys. A Sunday anchors to the Monday six days prior.
func WeekStartMonday(date time.Time) time.Time {
	offset := int(date.Weekday()) - 1
	if offset < 0 {
		offset = 6
	}
	return date.AddDate(0, 0, -offset)
}

// MonthKey returns the YYYY-MM bucket key for the given date.
func MonthKey(date time.Time) string {
	return date.Format(constants.MonthKeyLayout)
}

// SameDay reports whether two timestamps fall on the same calendar day,
// ignoring the time-of-day component carried by some record sources.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// TruncateToDay drops the time-of-day component.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
