package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleSpecRendering(t *testing.T) {
	cases := []struct {
		name string
		rule RecurrenceRule
		want string
	}{
		{
			"daily",
			RecurrenceRule{Frequency: FrequencyDaily, Interval: 1, StartDate: MustDate("2025-01-01")},
			"daily from 2025-01-01",
		},
		{
			"bi-weekly with weekdays and end",
			RecurrenceRule{
				Frequency: FrequencyWeekly, Interval: 2,
				WeekDays:  []Weekday{Friday, Monday},
				StartDate: MustDate("2025-01-06"), EndDate: MustDate("2025-12-31"),
			},
			"every 2 weeks on mon,fri from 2025-01-06 until 2025-12-31",
		},
		{
			"monthly day of month",
			RecurrenceRule{Frequency: FrequencyMonthly, Interval: 1, DayOfMonth: 15, StartDate: MustDate("2025-01-01")},
			"monthly on 15 from 2025-01-01",
		},
		{
			"monthly second tuesday",
			RecurrenceRule{Frequency: FrequencyMonthly, Interval: 1, NthWeekday: 2, WeekdayForNth: Tuesday, StartDate: MustDate("2025-01-01")},
			"monthly on 2nd tue from 2025-01-01",
		},
		{
			"monthly last friday",
			RecurrenceRule{Frequency: FrequencyMonthly, Interval: 1, NthWeekday: NthLast, WeekdayForNth: Friday, StartDate: MustDate("2025-01-01")},
			"monthly on last fri from 2025-01-01",
		},
		{
			"every three years",
			RecurrenceRule{Frequency: FrequencyYearly, Interval: 3, StartDate: MustDate("2024-02-29")},
			"every 3 years from 2024-02-29",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.rule.Spec())
		})
	}
}

func TestParseRuleSpecRoundTrip(t *testing.T) {
	specs := []string{
		"daily from 2025-01-01",
		"every 3 days from 2025-01-01",
		"weekly on mon from 2025-01-06",
		"every 2 weeks on mon,fri from 2025-01-06 until 2025-12-31",
		"monthly on 31 from 2025-01-01",
		"monthly on 1st sun from 2025-01-01",
		"monthly on last fri from 2025-01-01",
		"yearly from 2024-02-29",
	}

	for _, spec := range specs {
		t.Run(spec, func(t *testing.T) {
			rule, err := ParseRuleSpec(spec)
			require.NoError(t, err)
			assert.Equal(t, spec, rule.Spec())
		})
	}
}

func TestParseRuleSpecNormalizes(t *testing.T) {
	rule, err := ParseRuleSpec("  Weekly on FRI,mon from 2025-01-06  ")
	require.NoError(t, err)
	assert.Equal(t, []Weekday{Monday, Friday}, rule.WeekDays)
	assert.Equal(t, "weekly on mon,fri from 2025-01-06", rule.Spec())
}

func TestParseRuleSpecErrors(t *testing.T) {
	bad := []string{
		"",
		"hourly from 2025-01-01",
		"every zero days from 2025-01-01",
		"every 0 days from 2025-01-01",
		"weekly from 2025-01-01",
		"weekly on from 2025-01-01",
		"weekly on mon,funday from 2025-01-01",
		"daily on mon from 2025-01-01",
		"monthly on 2nd from 2025-01-01",
		"monthly on 15",
		"daily",
		"daily from yesterday",
		"daily from 2025-01-01 until",
		"daily from 2025-01-01 extra words",
		"monthly on 6th tue from 2025-01-01",
	}

	for _, spec := range bad {
		t.Run("rejects "+spec, func(t *testing.T) {
			_, err := ParseRuleSpec(spec)
			require.Error(t, err)
		})
	}
}
