package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecurrenceRuleValidate(t *testing.T) {
	start := MustDate("2025-01-01")

	valid := []struct {
		name string
		rule RecurrenceRule
	}{
		{"daily", RecurrenceRule{Frequency: FrequencyDaily, Interval: 1, StartDate: start}},
		{"every third day", RecurrenceRule{Frequency: FrequencyDaily, Interval: 3, StartDate: start}},
		{"weekly with weekdays", RecurrenceRule{Frequency: FrequencyWeekly, Interval: 1, WeekDays: []Weekday{Monday, Friday}, StartDate: start}},
		{"monthly day of month", RecurrenceRule{Frequency: FrequencyMonthly, Interval: 1, DayOfMonth: 31, StartDate: start}},
		{"monthly nth weekday", RecurrenceRule{Frequency: FrequencyMonthly, Interval: 1, NthWeekday: 2, WeekdayForNth: Tuesday, StartDate: start}},
		{"monthly last weekday", RecurrenceRule{Frequency: FrequencyMonthly, Interval: 1, NthWeekday: NthLast, WeekdayForNth: Friday, StartDate: start}},
		{"yearly bounded", RecurrenceRule{Frequency: FrequencyYearly, Interval: 1, StartDate: start, EndDate: MustDate("2030-01-01")}},
	}
	for _, tc := range valid {
		t.Run("valid "+tc.name, func(t *testing.T) {
			assert.NoError(t, tc.rule.Validate())
		})
	}

	invalid := []struct {
		name string
		rule RecurrenceRule
	}{
		{"zero interval", RecurrenceRule{Frequency: FrequencyDaily, Interval: 0, StartDate: start}},
		{"negative interval", RecurrenceRule{Frequency: FrequencyDaily, Interval: -2, StartDate: start}},
		{"missing start date", RecurrenceRule{Frequency: FrequencyDaily, Interval: 1}},
		{"end before start", RecurrenceRule{Frequency: FrequencyDaily, Interval: 1, StartDate: start, EndDate: MustDate("2024-12-31")}},
		{"weekly without weekdays", RecurrenceRule{Frequency: FrequencyWeekly, Interval: 1, StartDate: start}},
		{"monthly without selector", RecurrenceRule{Frequency: FrequencyMonthly, Interval: 1, StartDate: start}},
		{"monthly with both selectors", RecurrenceRule{Frequency: FrequencyMonthly, Interval: 1, DayOfMonth: 15, NthWeekday: 2, WeekdayForNth: Tuesday, StartDate: start}},
		{"day of month out of range", RecurrenceRule{Frequency: FrequencyMonthly, Interval: 1, DayOfMonth: 32, StartDate: start}},
		{"nth weekday out of range", RecurrenceRule{Frequency: FrequencyMonthly, Interval: 1, NthWeekday: 6, WeekdayForNth: Tuesday, StartDate: start}},
		{"nth weekday missing weekday", RecurrenceRule{Frequency: FrequencyMonthly, Interval: 1, NthWeekday: 2, StartDate: start}},
		{"daily with weekday selector", RecurrenceRule{Frequency: FrequencyDaily, Interval: 1, WeekDays: []Weekday{Monday}, StartDate: start}},
		{"yearly with day of month", RecurrenceRule{Frequency: FrequencyYearly, Interval: 1, DayOfMonth: 15, StartDate: start}},
	}
	for _, tc := range invalid {
		t.Run("invalid "+tc.name, func(t *testing.T) {
			require.Error(t, tc.rule.Validate())
		})
	}
}

func TestHasNthWeekday(t *testing.T) {
	rule := RecurrenceRule{NthWeekday: NthLast}
	assert.True(t, rule.HasNthWeekday())
	assert.False(t, (&RecurrenceRule{DayOfMonth: 15}).HasNthWeekday())
}
