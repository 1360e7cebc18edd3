// Package repository implements the task store against a relational
// database. Ledger sets and other list-shaped fields travel as JSON text
// columns; dates stay in their canonical string form so SQL comparisons
// order chronologically.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"daylight/internal/domain"
)

// Store implements storage.Store on a *sql.DB opened by the parent package.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open, migrated database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

const taskColumns = `key, title, repeat_spec, scheduled, due, priority, status,
	completed_at, active_instances, complete_instances, skipped_instances,
	rescheduled_instances, tags, projects, contexts, start_minutes,
	duration_minutes, time_entries`

// Create inserts a new record, assigning a UUIDv7 key when none is set.
func (s *Store) Create(ctx context.Context, task *domain.TaskRecord) error {
	if task.Key == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate task key: %w", err)
		}
		task.Key = id.String()
	}

	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE key = $1`, task.Key).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check task existence: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, task.Key)
	}

	args, err := taskArgs(task)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		args...)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// Get returns one record or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (*domain.TaskRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE key = $1`, key)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, key)
	}
	return task, err
}

// Save overwrites an existing record.
func (s *Store) Save(ctx context.Context, task *domain.TaskRecord) error {
	args, err := taskArgs(task)
	if err != nil {
		return err
	}
	// Placeholders must appear in argument order for sqlite's $N binding, so
	// the key moves from the front of args to the end.
	args = append(args[1:], args[0])
	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET
		title = $1, repeat_spec = $2, scheduled = $3, due = $4, priority = $5,
		status = $6, completed_at = $7, active_instances = $8,
		complete_instances = $9, skipped_instances = $10,
		rescheduled_instances = $11, tags = $12, projects = $13,
		contexts = $14, start_minutes = $15, duration_minutes = $16,
		time_entries = $17
		WHERE key = $18`, args...)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, task.Key)
	}
	return nil
}

// Delete removes a record and its ledger history.
func (s *Store) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, key)
	}
	return nil
}

// LoadAll returns the whole task set keyed by record key.
func (s *Store) LoadAll(ctx context.Context) (map[string]*domain.TaskRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := make(map[string]*domain.TaskRecord)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks[task.Key] = task
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

func taskArgs(task *domain.TaskRecord) ([]any, error) {
	repeat := ""
	if task.Recurrence != nil {
		if err := task.Recurrence.Validate(); err != nil {
			return nil, err
		}
		repeat = task.Recurrence.Spec()
	}

	active, err := jsonText(task.ActiveInstances, "[]")
	if err != nil {
		return nil, err
	}
	complete, err := jsonText(task.CompleteInstances, "[]")
	if err != nil {
		return nil, err
	}
	skipped, err := jsonText(task.SkippedInstances, "[]")
	if err != nil {
		return nil, err
	}
	rescheduled, err := jsonText(task.RescheduledInstances, "{}")
	if err != nil {
		return nil, err
	}
	tags, err := jsonText(task.Tags, "[]")
	if err != nil {
		return nil, err
	}
	projects, err := jsonText(task.Projects, "[]")
	if err != nil {
		return nil, err
	}
	contexts, err := jsonText(task.Contexts, "[]")
	if err != nil {
		return nil, err
	}
	entries, err := jsonText(task.TimeEntries, "[]")
	if err != nil {
		return nil, err
	}

	var completedAt any
	if task.CompletedAt != nil {
		completedAt = task.CompletedAt.UTC().Format(time.RFC3339Nano)
	}

	return []any{
		task.Key, task.Title, repeat,
		string(task.Scheduled), string(task.Due),
		string(task.Priority), string(task.Status),
		completedAt,
		active, complete, skipped, rescheduled,
		tags, projects, contexts,
		task.StartMinutes, task.DurationMinutes, entries,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.TaskRecord, error) {
	var (
		task        domain.TaskRecord
		repeat      string
		scheduled   string
		due         string
		priority    string
		status      string
		completedAt sql.NullString
		active      string
		complete    string
		skipped     string
		rescheduled string
		tags        string
		projects    string
		contexts    string
		start       sql.NullInt64
		entries     string
	)

	err := row.Scan(&task.Key, &task.Title, &repeat, &scheduled, &due,
		&priority, &status, &completedAt, &active, &complete, &skipped,
		&rescheduled, &tags, &projects, &contexts, &start,
		&task.DurationMinutes, &entries)
	if err != nil {
		return nil, err
	}

	task.Scheduled = domain.Date(scheduled)
	task.Due = domain.Date(due)

	if task.Priority, err = domain.NewPriority(priority); err != nil {
		return nil, fmt.Errorf("task %s: %w", task.Key, err)
	}
	if task.Status, err = domain.NewStatus(status); err != nil {
		return nil, fmt.Errorf("task %s: %w", task.Key, err)
	}

	if repeat != "" {
		if task.Recurrence, err = domain.ParseRuleSpec(repeat); err != nil {
			return nil, fmt.Errorf("task %s: %w", task.Key, err)
		}
	}
	if completedAt.Valid {
		t, err := time.Parse(time.RFC3339Nano, completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("task %s: bad completed_at: %w", task.Key, err)
		}
		task.CompletedAt = &t
	}
	if start.Valid {
		v := int(start.Int64)
		task.StartMinutes = &v
	}

	jsonCols := []struct {
		text string
		dst  any
	}{
		{active, &task.ActiveInstances},
		{complete, &task.CompleteInstances},
		{skipped, &task.SkippedInstances},
		{rescheduled, &task.RescheduledInstances},
		{tags, &task.Tags},
		{projects, &task.Projects},
		{contexts, &task.Contexts},
		{entries, &task.TimeEntries},
	}
	for _, col := range jsonCols {
		if err := json.Unmarshal([]byte(col.text), col.dst); err != nil {
			return nil, fmt.Errorf("task %s: %w", task.Key, err)
		}
	}

	// Empty collections load as nil so a round-trip reproduces the record
	// exactly as it was written.
	if len(task.ActiveInstances) == 0 {
		task.ActiveInstances = nil
	}
	if len(task.CompleteInstances) == 0 {
		task.CompleteInstances = nil
	}
	if len(task.SkippedInstances) == 0 {
		task.SkippedInstances = nil
	}
	if len(task.RescheduledInstances) == 0 {
		task.RescheduledInstances = nil
	}
	if len(task.Tags) == 0 {
		task.Tags = nil
	}
	if len(task.Projects) == 0 {
		task.Projects = nil
	}
	if len(task.Contexts) == 0 {
		task.Contexts = nil
	}
	if len(task.TimeEntries) == 0 {
		task.TimeEntries = nil
	}

	return &task, nil
}

func jsonText(v any, empty string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode column: %w", err)
	}
	text := string(data)
	if text == "null" {
		return empty, nil
	}
	return text, nil
}
