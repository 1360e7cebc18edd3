// Package agenda derives the presentation model from a live task set: the
// temporal bucket each task belongs to, its urgency rank, and the expanded
// per-occurrence view rows the UI renders.
package agenda

import "daylight/internal/domain"

// Classify maps a task to its temporal bucket for today. Nothing is stored;
// the bucket is recomputed on every read.
//
// For recurring tasks a single unresolved overdue occurrence dominates: the
// whole task classifies as Past until each missed day is completed, skipped
// or rescheduled. An open non-recurring task with neither a scheduled nor a
// due date lands in Wrapped, not Upcoming - that bucket doubles as the
// backlog by deliberate product policy.
func Classify(task *domain.TaskRecord, today domain.Date) domain.Bucket {
	if task.IsRecurring() {
		return classifyRecurring(task, today)
	}

	if task.IsDone() {
		return domain.BucketWrapped
	}

	date := task.Scheduled
	if date.IsZero() {
		date = task.Due
	}
	switch {
	case date.IsZero():
		return domain.BucketWrapped
	case date == today:
		return domain.BucketNow
	case date < today:
		return domain.BucketPast
	default:
		return domain.BucketUpcoming
	}
}

func classifyRecurring(task *domain.TaskRecord, today domain.Date) domain.Bucket {
	dueToday := false
	for _, date := range task.ActiveInstances {
		if task.InstanceCompleted(date) || task.InstanceSkipped(date) {
			continue
		}
		effective := task.EffectiveDate(date)
		if effective < today {
			return domain.BucketPast
		}
		if effective == today {
			dueToday = true
		}
	}
	if dueToday {
		return domain.BucketNow
	}
	if task.InstanceCompleted(today) {
		return domain.BucketWrapped
	}
	return domain.BucketUpcoming
}
