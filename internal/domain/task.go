package domain

import (
	"slices"
	"time"
)

// TimeEntry is one logged block of work on a task.
type TimeEntry struct {
	Date    Date
	Minutes int
	Note    string
}

// TaskRecord is the unit the engine operates on: one task file from the
// vault, held in memory. A record with a non-nil Recurrence is a series
// template; its per-occurrence state lives in the instance ledger fields.
//
// The engine mutates records in place and hands them back to the caller for
// persistence; it performs no I/O itself.
type TaskRecord struct {
	// Key is the stable filename/key identifying the record.
	Key string

	Title string

	// Recurrence marks the record as a series template when non-nil.
	Recurrence *RecurrenceRule

	// Scheduled and Due are single-occurrence dates, meaningful mainly for
	// non-recurring tasks. Scheduled on a template expresses "series starts
	// no earlier than this date".
	Scheduled Date
	Due       Date

	Priority Priority
	Status   Status

	// CompletedAt is set when a non-recurring task is marked done.
	CompletedAt *time.Time

	// Instance ledger, meaningful only when Recurrence is non-nil.
	//
	// ActiveInstances is the ordered-ascending set of occurrence dates the
	// processor has materialized as due. CompleteInstances and
	// SkippedInstances record resolution; a date never sits in both at once.
	// RescheduledInstances remaps an original occurrence date to an
	// overriding effective date.
	ActiveInstances      []Date
	CompleteInstances    []Date
	SkippedInstances     []Date
	RescheduledInstances map[Date]Date

	// Organization metadata read by the view layer. Matching is
	// case-insensitive.
	Tags     []string
	Projects []string
	Contexts []string

	// Time-box fields: minutes from midnight and duration in minutes.
	// StartMinutes nil means the task is not time-boxed.
	StartMinutes    *int
	DurationMinutes int

	// TimeEntries is read by the view layer for reporting; the engine never
	// mutates it.
	TimeEntries []TimeEntry
}

// IsRecurring reports whether the record is a series template.
func (t *TaskRecord) IsRecurring() bool {
	return t.Recurrence != nil
}

// IsDone reports whether a non-recurring task has been completed.
func (t *TaskRecord) IsDone() bool {
	return t.Status == StatusDone
}

// EffectiveDate resolves an occurrence date through the reschedule map.
// Downstream grouping and sorting always go through this resolution.
func (t *TaskRecord) EffectiveDate(date Date) Date {
	if moved, ok := t.RescheduledInstances[date]; ok {
		return moved
	}
	return date
}

// HasActiveInstance reports whether date has been materialized.
func (t *TaskRecord) HasActiveInstance(date Date) bool {
	return slices.Contains(t.ActiveInstances, date)
}

// InstanceCompleted reports whether the occurrence on date is marked done.
func (t *TaskRecord) InstanceCompleted(date Date) bool {
	return slices.Contains(t.CompleteInstances, date)
}

// InstanceSkipped reports whether the occurrence on date was skipped.
func (t *TaskRecord) InstanceSkipped(date Date) bool {
	return slices.Contains(t.SkippedInstances, date)
}

// CompleteInstance marks the occurrence on date as done. The date must be a
// materialized active instance that is not already complete; otherwise this
// is a no-op returning false. Completing clears any skip on the same date.
func (t *TaskRecord) CompleteInstance(date Date) bool {
	if !t.HasActiveInstance(date) || t.InstanceCompleted(date) {
		return false
	}
	t.SkippedInstances = removeDate(t.SkippedInstances, date)
	t.CompleteInstances = append(t.CompleteInstances, date)
	slices.Sort(t.CompleteInstances)
	return true
}

// SkipInstance marks the occurrence on date as explicitly skipped. Mirror of
// CompleteInstance against the skipped set.
func (t *TaskRecord) SkipInstance(date Date) bool {
	if !t.HasActiveInstance(date) || t.InstanceSkipped(date) {
		return false
	}
	t.CompleteInstances = removeDate(t.CompleteInstances, date)
	t.SkippedInstances = append(t.SkippedInstances, date)
	slices.Sort(t.SkippedInstances)
	return true
}

// UncompleteInstance removes date from the complete set. It does not restore
// a prior skip. No-op returning false when date is not complete.
func (t *TaskRecord) UncompleteInstance(date Date) bool {
	if !t.InstanceCompleted(date) {
		return false
	}
	t.CompleteInstances = removeDate(t.CompleteInstances, date)
	return true
}

// RescheduleInstance overrides the effective date of a materialized
// occurrence. An instance can only be rescheduled after the processor has
// materialized it; otherwise this is a no-op returning false.
func (t *TaskRecord) RescheduleInstance(date, newDate Date) bool {
	if !t.HasActiveInstance(date) || !newDate.Valid() {
		return false
	}
	if t.RescheduledInstances == nil {
		t.RescheduledInstances = make(map[Date]Date)
	}
	t.RescheduledInstances[date] = newDate
	return true
}

func removeDate(dates []Date, date Date) []Date {
	if i := slices.Index(dates, date); i >= 0 {
		return slices.Delete(dates, i, i+1)
	}
	return dates
}
