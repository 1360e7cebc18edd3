package domain

import (
	"fmt"
	"time"
)

// Date is a civil calendar date in canonical YYYY-MM-DD form. There is no
// time-of-day or timezone component. The canonical form makes lexicographic
// order equal chronological order, so Date values compare with < directly
// and serialize as-is.
type Date string

const dateLayout = "2006-01-02"

// NewDate validates a date string and returns it in canonical form.
func NewDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	// time.Parse accepts some non-canonical spellings of valid instants,
	// so re-format to guarantee exact round-tripping.
	return Date(t.Format(dateLayout)), nil
}

// DateOf formats the civil date of t in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// MustDate is NewDate for literals in tests and fixtures; it panics on error.
func MustDate(s string) Date {
	d, err := NewDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Valid reports whether d is a canonical calendar date.
func (d Date) Valid() bool {
	_, err := time.Parse(dateLayout, string(d))
	return err == nil
}

// IsZero reports whether d is unset.
func (d Date) IsZero() bool {
	return d == ""
}

// Time returns midnight UTC of the date. The zero time is returned for
// invalid or unset dates.
func (d Date) Time() time.Time {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Weekday returns the weekday tag of the date.
func (d Date) Weekday() Weekday {
	return WeekdayOf(d.Time().Weekday())
}

// DaysBetween returns the number of civil days from a to b; negative when b
// precedes a. Both dates are treated as midnight UTC, so the result is exact.
func DaysBetween(a, b Date) int {
	return int(b.Time().Sub(a.Time()).Hours() / 24)
}
