// Package fs is the vault store: one markdown file with YAML frontmatter
// per task record, in a flat directory.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"daylight/internal/domain"
	"daylight/internal/storage/taskdoc"
)

const taskExt = ".md"

// Store is a filesystem-backed task vault.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// NewStore opens (creating if needed) a vault directory.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create vault directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+taskExt)
}

// Create writes a new task file. An empty key gets a fresh UUIDv7.
func (s *Store) Create(ctx context.Context, task *domain.TaskRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task.Key == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate task key: %w", err)
		}
		task.Key = id.String()
	}

	path := s.path(task.Key)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, task.Key)
	}

	return s.write(path, task)
}

// Get reads one task file.
func (s *Store) Get(ctx context.Context, key string) (*domain.TaskRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}
	return taskdoc.Unmarshal(key, data)
}

// Save overwrites an existing task file.
func (s *Store) Save(ctx context.Context, task *domain.TaskRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(task.Key)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, task.Key)
	}
	return s.write(path, task)
}

// Delete removes a task file and with it the task's entire ledger history.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, key)
		}
		return fmt.Errorf("failed to delete task file: %w", err)
	}
	return nil
}

// LoadAll scans the vault and parses task files in parallel. Unparseable
// files are skipped rather than failing the whole load; a sync tool leaving
// a conflict artifact behind should not take the app down.
func (s *Store) LoadAll(ctx context.Context) (map[string]*domain.TaskRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault directory: %w", err)
	}

	var mu sync.Mutex
	tasks := make(map[string]*domain.TaskRecord)
	var wg sync.WaitGroup

	// Bounded fan-out keeps large vaults from exhausting file handles.
	const maxConcurrency = 20
	semaphore := make(chan struct{}, maxConcurrency)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), taskExt) {
			continue
		}
		key := strings.TrimSuffix(entry.Name(), taskExt)

		wg.Add(1)
		semaphore <- struct{}{}
		go func(key string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			data, err := os.ReadFile(s.path(key))
			if err != nil {
				return
			}
			task, err := taskdoc.Unmarshal(key, data)
			if err != nil {
				return
			}
			mu.Lock()
			tasks[key] = task
			mu.Unlock()
		}(key)
	}

	wg.Wait()
	return tasks, nil
}

func (s *Store) write(path string, task *domain.TaskRecord) error {
	data, err := taskdoc.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write task file: %w", err)
	}
	return nil
}
