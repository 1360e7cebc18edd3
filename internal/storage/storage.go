// Package storage defines the persistence contract the engine's callers
// hand task records to. The engine itself never touches a store: it mutates
// records in memory and the composition root persists what changed.
package storage

import (
	"context"

	"daylight/internal/domain"
)

// Store persists task records keyed by their stable filename/key.
type Store interface {
	// LoadAll returns every record in the store, keyed.
	LoadAll(ctx context.Context) (map[string]*domain.TaskRecord, error)

	// Get returns one record or domain.ErrNotFound.
	Get(ctx context.Context, key string) (*domain.TaskRecord, error)

	// Create stores a new record under task.Key, assigning a fresh key when
	// task.Key is empty. Returns domain.ErrAlreadyExists on key collision.
	Create(ctx context.Context, task *domain.TaskRecord) error

	// Save overwrites an existing record. Returns domain.ErrNotFound when
	// the key has never been created.
	Save(ctx context.Context, task *domain.TaskRecord) error

	// Delete removes a record and its entire ledger history. This is the
	// only way history is ever destroyed.
	Delete(ctx context.Context, key string) error
}
