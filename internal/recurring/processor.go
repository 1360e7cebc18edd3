package recurring

import (
	"slices"

	"daylight/internal/domain"
)

// Result reports one processor run. Keys absent from both UpdatedKeys and
// Errors were inspected and needed nothing.
type Result struct {
	// UpdatedKeys lists the tasks whose active instance set grew, sorted.
	UpdatedKeys []string

	// Errors maps a task key to the message of its rule evaluation error.
	// One bad rule never blocks processing of the rest of the set.
	Errors map[string]string
}

// UpdatedCount returns the number of tasks that changed.
func (r Result) UpdatedCount() int {
	return len(r.UpdatedKeys)
}

// Updated reports whether any task changed.
func (r Result) Updated() bool {
	return len(r.UpdatedKeys) > 0
}

// Process materializes due occurrences for every series template in tasks.
//
// For each task with a non-nil recurrence it generates occurrences over
// [today-lookBehindDays, today+lookAheadDays] and appends every date not yet
// in the task's active set, keeping the set sorted ascending. The operation
// is idempotent: a second run with the same today and window reports zero
// updates. It never removes entries; occurrences that have scrolled out of
// the window stay in the ledger so completion and skip history survives.
func Process(tasks map[string]*domain.TaskRecord, today domain.Date, lookBehindDays, lookAheadDays int) Result {
	result := Result{Errors: make(map[string]string)}

	windowStart := today.AddDays(-lookBehindDays)
	windowEnd := today.AddDays(lookAheadDays)

	// Deterministic order keeps runs reproducible and logs stable.
	keys := make([]string, 0, len(tasks))
	for key := range tasks {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		task := tasks[key]
		if !task.IsRecurring() {
			continue
		}

		dates, err := Generate(task.Recurrence, windowStart, windowEnd)
		if err != nil {
			result.Errors[key] = err.Error()
			continue
		}

		updated := false
		for _, date := range dates {
			if !task.HasActiveInstance(date) {
				task.ActiveInstances = append(task.ActiveInstances, date)
				updated = true
			}
		}
		if updated {
			slices.Sort(task.ActiveInstances)
			result.UpdatedKeys = append(result.UpdatedKeys, key)
		}
	}

	return result
}
