package domain

import "fmt"

// Nth-weekday selector bounds. -1 selects the last occurrence of the weekday
// in the month.
const (
	NthFirst = 1
	NthLast  = -1
	nthMax   = 5
)

// RecurrenceRule is a declarative description of a repeating pattern.
// Immutable value: mutating a rule on a live task record is undefined;
// replace the whole rule instead.
//
// Exactly one of DayOfMonth or the NthWeekday/WeekdayForNth pair may be set,
// and only for monthly rules. WeekDays applies only to weekly rules.
type RecurrenceRule struct {
	Frequency Frequency
	Interval  int // every Nth cycle, >= 1

	WeekDays []Weekday // weekly: which weekdays fire inside an eligible week

	DayOfMonth    int     // monthly, day-of-month mode: 1-31
	NthWeekday    int     // monthly, nth-weekday mode: 1-5 or NthLast
	WeekdayForNth Weekday // monthly, nth-weekday mode: which weekday

	StartDate Date // inclusive; the rule produces nothing before this
	EndDate   Date // optional inclusive bound; zero means unbounded
}

// HasNthWeekday reports whether the rule is in monthly nth-weekday mode.
func (r *RecurrenceRule) HasNthWeekday() bool {
	return r.NthWeekday != 0
}

// Validate checks the rule invariants. A rule that fails validation is a
// rule evaluation error: the occurrence generator rejects it for that task
// only, without affecting other tasks.
func (r *RecurrenceRule) Validate() error {
	if r.Interval < 1 {
		return fmt.Errorf("%w: interval must be >= 1, got %d", ErrInvalidRule, r.Interval)
	}
	if _, err := NewFrequency(string(r.Frequency)); err != nil {
		return err
	}
	if !r.StartDate.Valid() {
		return fmt.Errorf("%w: start date %q", ErrInvalidRule, r.StartDate)
	}
	if !r.EndDate.IsZero() {
		if !r.EndDate.Valid() {
			return fmt.Errorf("%w: end date %q", ErrInvalidRule, r.EndDate)
		}
		if r.EndDate < r.StartDate {
			return fmt.Errorf("%w: end date %s before start date %s", ErrInvalidRule, r.EndDate, r.StartDate)
		}
	}

	switch r.Frequency {
	case FrequencyWeekly:
		if len(r.WeekDays) == 0 {
			return fmt.Errorf("%w: weekly rule needs at least one weekday", ErrInvalidRule)
		}
		for _, d := range r.WeekDays {
			if _, err := NewWeekday(string(d)); err != nil {
				return err
			}
		}
	case FrequencyMonthly:
		hasDay := r.DayOfMonth != 0
		if hasDay == r.HasNthWeekday() {
			return fmt.Errorf("%w: monthly rule needs exactly one of day-of-month or nth-weekday", ErrInvalidRule)
		}
		if hasDay && (r.DayOfMonth < 1 || r.DayOfMonth > 31) {
			return fmt.Errorf("%w: day of month %d out of range", ErrInvalidRule, r.DayOfMonth)
		}
		if r.HasNthWeekday() {
			if r.NthWeekday != NthLast && (r.NthWeekday < NthFirst || r.NthWeekday > nthMax) {
				return fmt.Errorf("%w: nth weekday %d out of range", ErrInvalidRule, r.NthWeekday)
			}
			if _, err := NewWeekday(string(r.WeekdayForNth)); err != nil {
				return err
			}
		}
	default:
		if len(r.WeekDays) != 0 || r.DayOfMonth != 0 || r.HasNthWeekday() {
			return fmt.Errorf("%w: %s rule carries selectors for another frequency", ErrInvalidRule, r.Frequency)
		}
	}

	return nil
}
