package agenda

import (
	"slices"
	"sort"
	"strings"

	"daylight/internal/domain"
)

// ViewRow is one renderable line of the agenda. A non-recurring task yields
// exactly one row. A recurring task yields one row per outstanding
// occurrence whose effective date is today or earlier - a habitually missed
// daily task shows up once per missed day, on purpose - or a single
// placeholder row when nothing is outstanding.
type ViewRow struct {
	Key  string
	Task *domain.TaskRecord

	Bucket domain.Bucket
	Score  int

	// Date is the effective date keying calendar and weekly-grid placement.
	// Zero for rows with no date at all (backlog, dateless placeholders).
	Date domain.Date

	// InstanceDate is the original occurrence date for instance rows; it is
	// the handle ledger mutations take. Zero for non-instance rows.
	InstanceDate domain.Date
	IsInstance   bool

	// Time logged against the task, total and for today only.
	TotalMinutes int
	TodayMinutes int
}

// BuildViewRows expands the task set into view rows for today, applying the
// classifier and scorer per row. Rows come out grouped by task in key order;
// display order is a separate SortByScore pass per bucket.
func BuildViewRows(tasks map[string]*domain.TaskRecord, today domain.Date) []ViewRow {
	keys := make([]string, 0, len(tasks))
	for key := range tasks {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var rows []ViewRow
	for _, key := range keys {
		task := tasks[key]
		total, todayMin := loggedMinutes(task, today)

		if !task.IsRecurring() {
			date := task.Scheduled
			if date.IsZero() {
				date = task.Due
			}
			rows = append(rows, ViewRow{
				Key:          key,
				Task:         task,
				Bucket:       Classify(task, today),
				Score:        Score(task, today),
				Date:         date,
				TotalMinutes: total,
				TodayMinutes: todayMin,
			})
			continue
		}

		rows = append(rows, recurringRows(key, task, today, total, todayMin)...)
	}
	return rows
}

func recurringRows(key string, task *domain.TaskRecord, today domain.Date, total, todayMin int) []ViewRow {
	var rows []ViewRow
	for _, date := range task.ActiveInstances {
		if task.InstanceCompleted(date) || task.InstanceSkipped(date) {
			continue
		}
		effective := task.EffectiveDate(date)
		if effective > today {
			continue
		}

		bucket := domain.BucketNow
		if effective < today {
			bucket = domain.BucketPast
		}
		rows = append(rows, ViewRow{
			Key:          key,
			Task:         task,
			Bucket:       bucket,
			Score:        InstanceScore(task, effective, today),
			Date:         effective,
			InstanceDate: date,
			IsInstance:   true,
			TotalMinutes: total,
			TodayMinutes: todayMin,
		})
	}

	if len(rows) > 0 {
		return rows
	}

	// Nothing outstanding: one placeholder row with the whole-task bucket,
	// keyed to the next upcoming occurrence when there is one.
	var next domain.Date
	for _, date := range task.ActiveInstances {
		if task.InstanceCompleted(date) || task.InstanceSkipped(date) {
			continue
		}
		if eff := task.EffectiveDate(date); next.IsZero() || eff < next {
			next = eff
		}
	}
	return []ViewRow{{
		Key:          key,
		Task:         task,
		Bucket:       Classify(task, today),
		Score:        Score(task, today),
		Date:         next,
		TotalMinutes: total,
		TodayMinutes: todayMin,
	}}
}

func loggedMinutes(task *domain.TaskRecord, today domain.Date) (total, todayMinutes int) {
	for _, entry := range task.TimeEntries {
		total += entry.Minutes
		if entry.Date == today {
			todayMinutes += entry.Minutes
		}
	}
	return total, todayMinutes
}

// GroupByBucket splits rows into their buckets, preserving order.
func GroupByBucket(rows []ViewRow) map[domain.Bucket][]ViewRow {
	groups := make(map[domain.Bucket][]ViewRow)
	for _, row := range rows {
		groups[row.Bucket] = append(groups[row.Bucket], row)
	}
	return groups
}

// SortByScore orders rows descending by score, in place. The sort is stable;
// ties keep their existing relative order.
func SortByScore(rows []ViewRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})
}

// FilterByTag keeps rows whose task carries the tag, case-insensitively.
func FilterByTag(rows []ViewRow, tag string) []ViewRow {
	return filterByMembership(rows, tag, func(t *domain.TaskRecord) []string { return t.Tags })
}

// FilterByProject keeps rows whose task belongs to the project.
func FilterByProject(rows []ViewRow, project string) []ViewRow {
	return filterByMembership(rows, project, func(t *domain.TaskRecord) []string { return t.Projects })
}

// FilterByContext keeps rows whose task carries the context.
func FilterByContext(rows []ViewRow, context string) []ViewRow {
	return filterByMembership(rows, context, func(t *domain.TaskRecord) []string { return t.Contexts })
}

func filterByMembership(rows []ViewRow, want string, field func(*domain.TaskRecord) []string) []ViewRow {
	var out []ViewRow
	for _, row := range rows {
		for _, have := range field(row.Task) {
			if strings.EqualFold(have, want) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// RowsByDate buckets dated rows falling inside [from, to] by their effective
// date, for week and month grid placement. Dateless rows are dropped.
func RowsByDate(rows []ViewRow, from, to domain.Date) map[domain.Date][]ViewRow {
	grid := make(map[domain.Date][]ViewRow)
	for _, row := range rows {
		if row.Date.IsZero() || row.Date < from || row.Date > to {
			continue
		}
		grid[row.Date] = append(grid[row.Date], row)
	}
	return grid
}

// Overlaps reports whether two time-boxed rows collide: same date and
// intersecting [start, start+duration) minute intervals. Rows without a
// start time never collide.
func Overlaps(a, b ViewRow) bool {
	if a.Date.IsZero() || a.Date != b.Date {
		return false
	}
	if a.Task.StartMinutes == nil || b.Task.StartMinutes == nil {
		return false
	}
	aStart, bStart := *a.Task.StartMinutes, *b.Task.StartMinutes
	aEnd := aStart + a.Task.DurationMinutes
	bEnd := bStart + b.Task.DurationMinutes
	return aStart < bEnd && bStart < aEnd
}

// MinutesByProject aggregates logged minutes per project over [from, to].
// A task filed under several projects splits each entry's minutes evenly
// between them. Project names are folded to lower case.
func MinutesByProject(tasks map[string]*domain.TaskRecord, from, to domain.Date) map[string]float64 {
	return minutesBy(tasks, from, to, func(t *domain.TaskRecord) []string { return t.Projects })
}

// MinutesByTag aggregates logged minutes per tag over [from, to], splitting
// evenly across a task's tags. Tag names are folded to lower case.
func MinutesByTag(tasks map[string]*domain.TaskRecord, from, to domain.Date) map[string]float64 {
	return minutesBy(tasks, from, to, func(t *domain.TaskRecord) []string { return t.Tags })
}

func minutesBy(tasks map[string]*domain.TaskRecord, from, to domain.Date, field func(*domain.TaskRecord) []string) map[string]float64 {
	totals := make(map[string]float64)
	for _, task := range tasks {
		names := field(task)
		if len(names) == 0 {
			continue
		}
		share := 1.0 / float64(len(names))
		for _, entry := range task.TimeEntries {
			if entry.Date < from || entry.Date > to {
				continue
			}
			for _, name := range names {
				totals[strings.ToLower(name)] += float64(entry.Minutes) * share
			}
		}
	}
	return totals
}
