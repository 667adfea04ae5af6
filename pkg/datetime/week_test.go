package datetime

import (
	"testing"
	"time"
)

func TestWeekEndingSunday(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		expected string
	}{
		{name: "Monday", date: "2025-03-03", expected: "2025-03-09"},
		{name: "Wednesday", date: "2025-03-05", expected: "2025-03-09"},
		{name: "Saturday", date: "2025-03-08", expected: "2025-03-09"},
		{name: "Sunday is its own week ending", date: "2025-03-09", expected: "2025-03-09"},
		{name: "Month boundary", date: "2025-03-31", expected: "2025-04-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WeekEndingSunday(MustParseTime(WorkDateLayout, tt.date))
			if result.Format(WorkDateLayout) != tt.expected {
				t.Errorf("WeekEndingSunday(%s) = %s, expected %s", tt.date, result.Format(WorkDateLayout), tt.expected)
			}
		})
	}
}

func TestWeekStartMonday(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		expected string
	}{
		{name: "Monday anchors to itself", date: "2025-03-03", expected: "2025-03-03"},
		{name: "Wednesday", date: "2025-03-05", expected: "2025-03-03"},
		{name: "Sunday anchors to the prior Monday", date: "2025-03-09", expected: "2025-03-03"},
		{name: "Month boundary", date: "2025-04-01", expected: "2025-03-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WeekStartMonday(MustParseTime(WorkDateLayout, tt.date))
			if result.Format(WorkDateLayout) != tt.expected {
				t.Errorf("WeekStartMonday(%s) = %s, expected %s", tt.date, result.Format(WorkDateLayout), tt.expected)
			}
		})
	}
}

func TestMonthKey(t *testing.T) {
	if key := MonthKey(MustParseTime(WorkDateLayout, "2025-03-12")); key != "2025-03" {
		t.Errorf("MonthKey() = %q, expected 2025-03", key)
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 12, 20, 30, 0, 0, time.UTC)
	nextDay := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)

	if !SameDay(morning, evening) {
		t.Errorf("SameDay() = false for two times on the same day")
	}
	if SameDay(evening, nextDay) {
		t.Errorf("SameDay() = true across midnight")
	}
}

func TestTruncateToDay(t *testing.T) {
	stamped := time.Date(2025, 3, 12, 14, 45, 30, 123, time.UTC)
	truncated := TruncateToDay(stamped)
	if truncated.Hour() != 0 || truncated.Minute() != 0 || truncated.Second() != 0 || truncated.Nanosecond() != 0 {
		t.Errorf("TruncateToDay() left a time-of-day component: %v", truncated)
	}
	if !SameDay(stamped, truncated) {
		t.Errorf("TruncateToDay() changed the calendar day")
	}
}
