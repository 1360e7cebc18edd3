package domain

import "errors"

// Domain errors. Rule errors surface per task from the instance processor;
// the rest indicate caller bugs and are returned eagerly by constructors.

var (
	// ErrInvalidDate indicates a date string is not canonical YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidFrequency indicates an unknown recurrence frequency.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrInvalidPriority indicates an unknown task priority.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidStatus indicates an unknown task status.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidWeekday indicates an unknown weekday tag.
	ErrInvalidWeekday = errors.New("invalid weekday")

	// ErrInvalidRule indicates a recurrence rule that violates its invariants,
	// e.g. interval < 1 or a monthly rule with no day selector.
	ErrInvalidRule = errors.New("invalid recurrence rule")

	// ErrInvalidRuleSpec indicates a rule spec string that cannot be parsed.
	ErrInvalidRuleSpec = errors.New("invalid rule spec")

	// ErrNotFound indicates the requested task record does not exist.
	ErrNotFound = errors.New("task not found")

	// ErrAlreadyExists indicates a task record with the same key exists.
	ErrAlreadyExists = errors.New("task already exists")
)
