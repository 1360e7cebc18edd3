package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Rule specs are the compact textual form recurrence rules take in task
// frontmatter and in the SQL store. The grammar:
//
//	daily | weekly on mon,fri | monthly on 15 | monthly on 2nd tue |
//	monthly on last fri | yearly
//	every N days | every N weeks on ... | every N months on ... | every N years
//	... from YYYY-MM-DD [until YYYY-MM-DD]
//
// ParseRuleSpec(r.Spec()) always reproduces a rule equal to r.

var ordinals = [...]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 5: "5th"}

// Spec renders the rule in its canonical textual form. Weekday sets are
// emitted in mon-first order regardless of how the rule was built.
func (r *RecurrenceRule) Spec() string {
	var b strings.Builder

	unit := map[Frequency]string{
		FrequencyDaily:   "days",
		FrequencyWeekly:  "weeks",
		FrequencyMonthly: "months",
		FrequencyYearly:  "years",
	}[r.Frequency]

	if r.Interval == 1 {
		b.WriteString(string(r.Frequency))
	} else {
		fmt.Fprintf(&b, "every %d %s", r.Interval, unit)
	}

	switch r.Frequency {
	case FrequencyWeekly:
		days := slices.Clone(r.WeekDays)
		SortWeekdays(days)
		tags := make([]string, len(days))
		for i, d := range days {
			tags[i] = string(d)
		}
		b.WriteString(" on " + strings.Join(tags, ","))
	case FrequencyMonthly:
		if r.HasNthWeekday() {
			ord := "last"
			if r.NthWeekday != NthLast {
				ord = ordinals[r.NthWeekday]
			}
			fmt.Fprintf(&b, " on %s %s", ord, r.WeekdayForNth)
		} else {
			fmt.Fprintf(&b, " on %d", r.DayOfMonth)
		}
	}

	fmt.Fprintf(&b, " from %s", r.StartDate)
	if !r.EndDate.IsZero() {
		fmt.Fprintf(&b, " until %s", r.EndDate)
	}

	return b.String()
}

// ParseRuleSpec parses the canonical textual form back into a rule. The
// returned rule has been validated.
func ParseRuleSpec(spec string) (*RecurrenceRule, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(spec)))
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty spec", ErrInvalidRuleSpec)
	}

	rule := &RecurrenceRule{Interval: 1}
	i := 0

	// Head: "<frequency>" or "every N <unit>".
	if fields[i] == "every" {
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRuleSpec, spec)
		}
		n, err := strconv.Atoi(fields[i+1])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: bad interval %q", ErrInvalidRuleSpec, fields[i+1])
		}
		rule.Interval = n
		freq, ok := map[string]Frequency{
			"days":   FrequencyDaily,
			"weeks":  FrequencyWeekly,
			"months": FrequencyMonthly,
			"years":  FrequencyYearly,
		}[fields[i+2]]
		if !ok {
			return nil, fmt.Errorf("%w: bad unit %q", ErrInvalidRuleSpec, fields[i+2])
		}
		rule.Frequency = freq
		i += 3
	} else {
		freq, err := NewFrequency(fields[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRuleSpec, fields[i])
		}
		rule.Frequency = freq
		i++
	}

	// Optional selector: "on ...".
	if i < len(fields) && fields[i] == "on" {
		i++
		if i >= len(fields) {
			return nil, fmt.Errorf("%w: dangling 'on'", ErrInvalidRuleSpec)
		}
		switch rule.Frequency {
		case FrequencyWeekly:
			for _, tag := range strings.Split(fields[i], ",") {
				day, err := NewWeekday(tag)
				if err != nil {
					return nil, fmt.Errorf("%w: %q", ErrInvalidRuleSpec, tag)
				}
				rule.WeekDays = append(rule.WeekDays, day)
			}
			SortWeekdays(rule.WeekDays)
			i++
		case FrequencyMonthly:
			if nth, ok := parseOrdinal(fields[i]); ok {
				if i+1 >= len(fields) {
					return nil, fmt.Errorf("%w: %q needs a weekday", ErrInvalidRuleSpec, fields[i])
				}
				day, err := NewWeekday(fields[i+1])
				if err != nil {
					return nil, fmt.Errorf("%w: %q", ErrInvalidRuleSpec, fields[i+1])
				}
				rule.NthWeekday = nth
				rule.WeekdayForNth = day
				i += 2
			} else {
				dom, err := strconv.Atoi(fields[i])
				if err != nil {
					return nil, fmt.Errorf("%w: bad day %q", ErrInvalidRuleSpec, fields[i])
				}
				rule.DayOfMonth = dom
				i++
			}
		default:
			return nil, fmt.Errorf("%w: %s rule takes no 'on' selector", ErrInvalidRuleSpec, rule.Frequency)
		}
	}

	// Bounds: "from D" required, "until D" optional.
	if i+1 >= len(fields) || fields[i] != "from" {
		return nil, fmt.Errorf("%w: missing 'from' date", ErrInvalidRuleSpec)
	}
	start, err := NewDate(fields[i+1])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRuleSpec, fields[i+1])
	}
	rule.StartDate = start
	i += 2

	if i < len(fields) {
		if fields[i] != "until" || i+1 >= len(fields) {
			return nil, fmt.Errorf("%w: trailing %q", ErrInvalidRuleSpec, strings.Join(fields[i:], " "))
		}
		end, err := NewDate(fields[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRuleSpec, fields[i+1])
		}
		rule.EndDate = end
		i += 2
		if i != len(fields) {
			return nil, fmt.Errorf("%w: trailing %q", ErrInvalidRuleSpec, strings.Join(fields[i:], " "))
		}
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}
	return rule, nil
}

func parseOrdinal(s string) (int, bool) {
	if s == "last" {
		return NthLast, true
	}
	for n, ord := range ordinals {
		if s == ord {
			return n, true
		}
	}
	return 0, false
}
