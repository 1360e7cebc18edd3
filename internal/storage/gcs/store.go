// Package gcs mirrors the vault into a Cloud Storage bucket, one markdown
// object per task, for off-device backup. The object format is identical to
// the filesystem vault so either side can seed the other.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"daylight/internal/domain"
	"daylight/internal/storage/taskdoc"
)

const taskExt = ".md"

// Store is a GCS-backed task vault.
type Store struct {
	client *storage.Client
	bucket string
}

// NewStore creates a GCS store. The client authenticates through the usual
// application-default credential chain.
func NewStore(ctx context.Context, bucketName string) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &Store{client: client, bucket: bucketName}, nil
}

func (s *Store) objectName(key string) string {
	return key + taskExt
}

// Create writes a new task object. An empty key gets a fresh UUIDv7.
func (s *Store) Create(ctx context.Context, task *domain.TaskRecord) error {
	if task.Key == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate task key: %w", err)
		}
		task.Key = id.String()
	}

	obj := s.client.Bucket(s.bucket).Object(s.objectName(task.Key))
	if _, err := obj.Attrs(ctx); err == nil {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, task.Key)
	} else if !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to check object existence: %w", err)
	}

	return s.write(ctx, obj, task)
}

// Get reads one task object.
func (s *Store) Get(ctx context.Context, key string) (*domain.TaskRecord, error) {
	obj := s.client.Bucket(s.bucket).Object(s.objectName(key))
	r, err := obj.NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return taskdoc.Unmarshal(key, data)
}

// Save overwrites an existing task object.
func (s *Store) Save(ctx context.Context, task *domain.TaskRecord) error {
	obj := s.client.Bucket(s.bucket).Object(s.objectName(task.Key))
	if _, err := obj.Attrs(ctx); errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, task.Key)
	} else if err != nil {
		return fmt.Errorf("failed to check object existence: %w", err)
	}
	return s.write(ctx, obj, task)
}

// Delete removes a task object.
func (s *Store) Delete(ctx context.Context, key string) error {
	obj := s.client.Bucket(s.bucket).Object(s.objectName(key))
	if err := obj.Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, key)
		}
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// LoadAll lists the bucket and fetches task objects in parallel.
func (s *Store) LoadAll(ctx context.Context) (map[string]*domain.TaskRecord, error) {
	it := s.client.Bucket(s.bucket).Objects(ctx, nil)

	var keys []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		if strings.HasSuffix(attrs.Name, taskExt) {
			keys = append(keys, strings.TrimSuffix(attrs.Name, taskExt))
		}
	}

	var mu sync.Mutex
	tasks := make(map[string]*domain.TaskRecord)
	var wg sync.WaitGroup

	// Conservative fan-out; GCS copes with more but the gain is marginal.
	const maxConcurrency = 20
	semaphore := make(chan struct{}, maxConcurrency)

	for _, key := range keys {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(key string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			task, err := s.Get(ctx, key)
			if err != nil {
				// Skip unreadable or malformed objects; a backup mirror
				// must not fail wholesale over one bad document.
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

func (s *Store) write(ctx context.Context, obj *storage.ObjectHandle, task *domain.TaskRecord) error {
	data, err := taskdoc.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	w := obj.NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("failed to write object: %w", err)
	}
	return w.Close()
}
