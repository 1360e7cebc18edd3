package domain

// Frequency is the base cycle of a recurrence rule.
// Value object - immutable string enum.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Priority represents the priority level of a task.
// Value object - immutable string enum.
type Priority string

const (
	PriorityNone   Priority = "none"
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Status represents the lifecycle state of a non-recurring task.
// Recurring tasks track state per occurrence in the instance ledger instead.
type Status string

const (
	StatusOpen Status = "open"
	StatusDone Status = "done"
)

// Bucket is the temporal group a task is presented under.
//
// BucketWrapped carries a double meaning inherited from the product: it holds
// both completed tasks and open non-recurring tasks with no date at all (the
// backlog). Callers must not split or rename the bucket; existing vaults
// depend on the combined semantics.
type Bucket string

const (
	BucketPast     Bucket = "past"
	BucketNow      Bucket = "now"
	BucketUpcoming Bucket = "upcoming"
	BucketWrapped  Bucket = "wrapped"
)

// Weekday is a lowercase three-letter weekday tag as written in rule specs.
// Value object - immutable string enum.
type Weekday string

const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
	Sunday    Weekday = "sun"
)

// weekdayOrder is the canonical mon-first ordering used when sorting weekday
// sets and when emitting occurrences within a week.
var weekdayOrder = map[Weekday]int{
	Monday:    0,
	Tuesday:   1,
	Wednesday: 2,
	Thursday:  3,
	Friday:    4,
	Saturday:  5,
	Sunday:    6,
}
