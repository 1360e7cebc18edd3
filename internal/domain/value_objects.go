package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// NewFrequency validates and creates a Frequency.
func NewFrequency(s string) (Frequency, error) {
	freq := Frequency(strings.ToLower(s))

	switch freq {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return freq, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidFrequency, s)
	}
}

// NewPriority validates and creates a Priority.
// The empty string maps to PriorityNone.
func NewPriority(s string) (Priority, error) {
	if s == "" {
		return PriorityNone, nil
	}

	priority := Priority(strings.ToLower(s))

	switch priority {
	case PriorityNone, PriorityLow, PriorityNormal, PriorityHigh:
		return priority, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidPriority, s)
	}
}

// NewStatus validates and creates a Status.
// The empty string maps to StatusOpen.
func NewStatus(s string) (Status, error) {
	if s == "" {
		return StatusOpen, nil
	}

	status := Status(strings.ToLower(s))

	switch status {
	case StatusOpen, StatusDone:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidStatus, s)
	}
}

// NewWeekday validates and creates a Weekday from a three-letter tag.
func NewWeekday(s string) (Weekday, error) {
	day := Weekday(strings.ToLower(s))

	if _, ok := weekdayOrder[day]; !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidWeekday, s)
	}
	return day, nil
}

// WeekdayOf converts a time.Weekday to its tag.
func WeekdayOf(w time.Weekday) Weekday {
	switch w {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// Time returns the time.Weekday for the tag.
func (w Weekday) Time() time.Weekday {
	switch w {
	case Monday:
		return time.Monday
	case Tuesday:
		return time.Tuesday
	case Wednesday:
		return time.Wednesday
	case Thursday:
		return time.Thursday
	case Friday:
		return time.Friday
	case Saturday:
		return time.Saturday
	default:
		return time.Sunday
	}
}

// SortWeekdays orders a weekday set in canonical mon-first order, in place.
func SortWeekdays(days []Weekday) {
	slices.SortFunc(days, func(a, b Weekday) int {
		return weekdayOrder[a] - weekdayOrder[b]
	})
}
