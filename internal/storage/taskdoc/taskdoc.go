// Package taskdoc encodes task records as markdown documents with YAML
// frontmatter - the vault file format. The filesystem and GCS stores share
// this codec so a vault can be mirrored byte-for-byte between them.
package taskdoc

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"daylight/internal/domain"
)

const delimiter = "---\n"

// frontmatter is the YAML shape of a task file. The recurrence rule travels
// as its compact spec string; ParseRuleSpec(rule.Spec()) round-trips to an
// equal rule, so the file format never sees the rule's internals.
type frontmatter struct {
	Title       string            `yaml:"title,omitempty"`
	Repeat      string            `yaml:"repeat,omitempty"`
	Scheduled   string            `yaml:"scheduled,omitempty"`
	Due         string            `yaml:"due,omitempty"`
	Priority    string            `yaml:"priority,omitempty"`
	Status      string            `yaml:"status,omitempty"`
	CompletedAt *time.Time        `yaml:"completed_at,omitempty"`
	Active      []string          `yaml:"active_instances,omitempty"`
	Complete    []string          `yaml:"complete_instances,omitempty"`
	Skipped     []string          `yaml:"skipped_instances,omitempty"`
	Rescheduled map[string]string `yaml:"rescheduled_instances,omitempty"`
	Tags        []string          `yaml:"tags,omitempty"`
	Projects    []string          `yaml:"projects,omitempty"`
	Contexts    []string          `yaml:"contexts,omitempty"`
	Start       *int              `yaml:"start_minutes,omitempty"`
	Duration    int               `yaml:"duration_minutes,omitempty"`
	TimeEntries []timeEntry       `yaml:"time_entries,omitempty"`
}

type timeEntry struct {
	Date    string `yaml:"date"`
	Minutes int    `yaml:"minutes"`
	Note    string `yaml:"note,omitempty"`
}

// Marshal renders a task record as a frontmatter document. The markdown body
// is empty; notes live outside the engine's model and survive untouched only
// when callers merge them back themselves.
func Marshal(task *domain.TaskRecord) ([]byte, error) {
	fm := frontmatter{
		Title:       task.Title,
		Scheduled:   string(task.Scheduled),
		Due:         string(task.Due),
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		CompletedAt: task.CompletedAt,
		Active:      dateStrings(task.ActiveInstances),
		Complete:    dateStrings(task.CompleteInstances),
		Skipped:     dateStrings(task.SkippedInstances),
		Tags:        task.Tags,
		Projects:    task.Projects,
		Contexts:    task.Contexts,
		Start:       task.StartMinutes,
		Duration:    task.DurationMinutes,
	}
	if task.Recurrence != nil {
		fm.Repeat = task.Recurrence.Spec()
	}
	if len(task.RescheduledInstances) > 0 {
		fm.Rescheduled = make(map[string]string, len(task.RescheduledInstances))
		for from, to := range task.RescheduledInstances {
			fm.Rescheduled[string(from)] = string(to)
		}
	}
	for _, entry := range task.TimeEntries {
		fm.TimeEntries = append(fm.TimeEntries, timeEntry{
			Date:    string(entry.Date),
			Minutes: entry.Minutes,
			Note:    entry.Note,
		})
	}

	var buf bytes.Buffer
	buf.WriteString(delimiter)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&fm); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish frontmatter: %w", err)
	}
	buf.WriteString(delimiter)
	return buf.Bytes(), nil
}

// Unmarshal parses a frontmatter document into a task record. key becomes
// the record's identity.
func Unmarshal(key string, data []byte) (*domain.TaskRecord, error) {
	text := string(data)
	if !strings.HasPrefix(text, delimiter) {
		return nil, fmt.Errorf("task %s: missing frontmatter", key)
	}
	rest := text[len(delimiter):]
	end := strings.Index(rest, delimiter)
	if end < 0 {
		return nil, fmt.Errorf("task %s: unterminated frontmatter", key)
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return nil, fmt.Errorf("task %s: %w", key, err)
	}

	priority, err := domain.NewPriority(fm.Priority)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", key, err)
	}
	status, err := domain.NewStatus(fm.Status)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", key, err)
	}

	task := &domain.TaskRecord{
		Key:               key,
		Title:             fm.Title,
		Scheduled:         domain.Date(fm.Scheduled),
		Due:               domain.Date(fm.Due),
		Priority:          priority,
		Status:            status,
		CompletedAt:       fm.CompletedAt,
		ActiveInstances:   dates(fm.Active),
		CompleteInstances: dates(fm.Complete),
		SkippedInstances:  dates(fm.Skipped),
		Tags:              fm.Tags,
		Projects:          fm.Projects,
		Contexts:          fm.Contexts,
		StartMinutes:      fm.Start,
		DurationMinutes:   fm.Duration,
	}
	if fm.Repeat != "" {
		rule, err := domain.ParseRuleSpec(fm.Repeat)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", key, err)
		}
		task.Recurrence = rule
	}
	if len(fm.Rescheduled) > 0 {
		task.RescheduledInstances = make(map[domain.Date]domain.Date, len(fm.Rescheduled))
		for from, to := range fm.Rescheduled {
			task.RescheduledInstances[domain.Date(from)] = domain.Date(to)
		}
	}
	for _, entry := range fm.TimeEntries {
		task.TimeEntries = append(task.TimeEntries, domain.TimeEntry{
			Date:    domain.Date(entry.Date),
			Minutes: entry.Minutes,
			Note:    entry.Note,
		})
	}

	return task, nil
}

func dateStrings(dates []domain.Date) []string {
	if len(dates) == 0 {
		return nil
	}
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = string(d)
	}
	return out
}

func dates(strs []string) []domain.Date {
	if len(strs) == 0 {
		return nil
	}
	out := make([]domain.Date, len(strs))
	for i, s := range strs {
		out[i] = domain.Date(s)
	}
	return out
}
