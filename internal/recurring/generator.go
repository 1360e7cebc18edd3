// Package recurring turns declarative recurrence rules into concrete
// calendar occurrences and keeps task instance ledgers in sync with them.
package recurring

import (
	"time"

	"daylight/internal/domain"
)

// maxIterations bounds every generation walk so a misconfigured rule can
// never spin unbounded. Windows are always small, so the cap is never hit
// by a valid rule.
const maxIterations = 5000

// pattern produces candidate occurrences for one frequency. lo and hi are
// the effective inclusive bounds, already clamped to the rule's range.
type pattern interface {
	occurrences(rule *domain.RecurrenceRule, lo, hi time.Time) []domain.Date
}

func patternFor(freq domain.Frequency) pattern {
	switch freq {
	case domain.FrequencyDaily:
		return dailyPattern{}
	case domain.FrequencyWeekly:
		return weeklyPattern{}
	case domain.FrequencyMonthly:
		return monthlyPattern{}
	case domain.FrequencyYearly:
		return yearlyPattern{}
	default:
		return nil
	}
}

// Generate returns the ordered, duplicate-free list of occurrence dates the
// rule implies inside [windowStart, windowEnd], both ends inclusive. The
// effective range is further clamped to [rule.StartDate, rule.EndDate]. A
// window that does not intersect the rule's range yields an empty result;
// that is not an error. Only a rule that fails validation errors out.
func Generate(rule *domain.RecurrenceRule, windowStart, windowEnd domain.Date) ([]domain.Date, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	lo := windowStart
	if rule.StartDate > lo {
		lo = rule.StartDate
	}
	hi := windowEnd
	if !rule.EndDate.IsZero() && rule.EndDate < hi {
		hi = rule.EndDate
	}
	if hi < lo {
		return nil, nil
	}

	return patternFor(rule.Frequency).occurrences(rule, lo.Time(), hi.Time()), nil
}

// dailyPattern steps from the rule's start date in whole-interval strides.
type dailyPattern struct{}

func (dailyPattern) occurrences(rule *domain.RecurrenceRule, lo, hi time.Time) []domain.Date {
	start := rule.StartDate.Time()

	// Fast-forward to the first stride-aligned candidate >= lo.
	cur := start
	if diff := daysBetween(start, lo); diff > 0 {
		steps := (diff + rule.Interval - 1) / rule.Interval
		cur = start.AddDate(0, 0, steps*rule.Interval)
	}

	var out []domain.Date
	for n := 0; n < maxIterations && !cur.After(hi); n++ {
		out = append(out, domain.DateOf(cur))
		cur = cur.AddDate(0, 0, rule.Interval)
	}
	return out
}

// weeklyPattern emits every matching weekday inside each eligible week.
// Week eligibility is anchored on the Monday of the start date's week: a
// week is eligible when its index from that anchor is a multiple of the
// interval, which is what makes bi-weekly rules stay phase-locked.
type weeklyPattern struct{}

func (weeklyPattern) occurrences(rule *domain.RecurrenceRule, lo, hi time.Time) []domain.Date {
	days := make(map[domain.Weekday]bool, len(rule.WeekDays))
	for _, d := range rule.WeekDays {
		days[d] = true
	}

	anchor := mondayOf(rule.StartDate.Time())
	start := rule.StartDate.Time()

	var out []domain.Date
	cur := lo
	for n := 0; n < maxIterations && !cur.After(hi); n++ {
		if !cur.Before(start) && days[domain.WeekdayOf(cur.Weekday())] {
			week := daysBetween(anchor, mondayOf(cur)) / 7
			if week%rule.Interval == 0 {
				out = append(out, domain.DateOf(cur))
			}
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return out
}

// monthlyPattern walks months from the start date's month in interval
// strides. In day-of-month mode a month shorter than the wanted day is
// skipped entirely, never clamped to its last day. In nth-weekday mode each
// eligible month yields the nth (or last) occurrence of the weekday; a month
// without an nth occurrence is likewise skipped.
type monthlyPattern struct{}

func (monthlyPattern) occurrences(rule *domain.RecurrenceRule, lo, hi time.Time) []domain.Date {
	start := rule.StartDate.Time()
	year, month := start.Year(), start.Month()

	var out []domain.Date
	for n := 0; n < maxIterations; n++ {
		var cand time.Time
		var ok bool
		if rule.HasNthWeekday() {
			cand, ok = nthWeekdayInMonth(year, month, rule.NthWeekday, rule.WeekdayForNth.Time())
		} else {
			cand, ok = dayInMonth(year, month, rule.DayOfMonth)
		}

		if ok && cand.After(hi) {
			break
		}
		if ok && !cand.Before(lo) && !cand.Before(start) {
			out = append(out, domain.DateOf(cand))
		}
		// Even a skipped month can precede in-window ones, so only an
		// over-the-horizon candidate terminates the walk.
		if !ok && firstOfMonth(year, month).After(hi) {
			break
		}

		month += time.Month(rule.Interval)
		for month > 12 {
			month -= 12
			year++
		}
	}
	return out
}

// yearlyPattern repeats the start date's month and day every interval years.
// A Feb 29 start only fires in leap years; other years are skipped, not
// shifted to Feb 28 or Mar 1.
type yearlyPattern struct{}

func (yearlyPattern) occurrences(rule *domain.RecurrenceRule, lo, hi time.Time) []domain.Date {
	start := rule.StartDate.Time()
	month, day := start.Month(), start.Day()

	var out []domain.Date
	for n, year := 0, start.Year(); n < maxIterations; n++ {
		if time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).After(hi) {
			break
		}
		if cand, ok := dayInMonth(year, month, day); ok {
			if cand.After(hi) {
				break
			}
			if !cand.Before(lo) {
				out = append(out, domain.DateOf(cand))
			}
		}
		year += rule.Interval
	}
	return out
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return t.AddDate(0, 0, -offset)
}

func firstOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return firstOfMonth(year, month).AddDate(0, 1, -1).Day()
}

// dayInMonth returns the civil date (year, month, day) when that day exists
// in the month, and ok=false when the month is too short.
func dayInMonth(year int, month time.Month, day int) (time.Time, bool) {
	if day > daysInMonth(year, month) {
		return time.Time{}, false
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

// nthWeekdayInMonth resolves the nth (1-5, or domain.NthLast for the final)
// occurrence of weekday in the month. ok=false when the month has no nth
// occurrence.
func nthWeekdayInMonth(year int, month time.Month, nth int, weekday time.Weekday) (time.Time, bool) {
	first := firstOfMonth(year, month)
	firstMatch := 1 + (int(weekday)-int(first.Weekday())+7)%7

	if nth == domain.NthLast {
		day := firstMatch
		for day+7 <= daysInMonth(year, month) {
			day += 7
		}
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
	}

	day := firstMatch + (nth-1)*7
	if day > daysInMonth(year, month) {
		return time.Time{}, false
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}
