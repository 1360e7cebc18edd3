// Package compliance holds the store contract tests every backend must
// pass. Backend test files call RunStoreComplianceTest with a setup that
// yields a fresh, empty store.
package compliance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daylight/internal/domain"
	"daylight/internal/storage"
)

func sampleTask(key string) *domain.TaskRecord {
	start := 9 * 60
	return &domain.TaskRecord{
		Key:   key,
		Title: "Water the plants",
		Recurrence: &domain.RecurrenceRule{
			Frequency: domain.FrequencyWeekly,
			Interval:  2,
			WeekDays:  []domain.Weekday{domain.Monday, domain.Friday},
			StartDate: domain.MustDate("2025-01-06"),
			EndDate:   domain.MustDate("2025-12-31"),
		},
		Priority: domain.PriorityNormal,
		Status:   domain.StatusOpen,
		ActiveInstances: []domain.Date{
			domain.MustDate("2025-01-06"),
			domain.MustDate("2025-01-10"),
		},
		CompleteInstances: []domain.Date{domain.MustDate("2025-01-06")},
		RescheduledInstances: map[domain.Date]domain.Date{
			domain.MustDate("2025-01-10"): domain.MustDate("2025-01-11"),
		},
		Tags:            []string{"home", "Plants"},
		Projects:        []string{"household"},
		StartMinutes:    &start,
		DurationMinutes: 30,
		TimeEntries: []domain.TimeEntry{
			{Date: domain.MustDate("2025-01-06"), Minutes: 25, Note: "repotted the fern"},
		},
	}
}

// RunStoreComplianceTest runs the shared contract tests against a backend.
// setup returns a fresh empty store plus its teardown.
func RunStoreComplianceTest(t *testing.T, setup func(t *testing.T) (storage.Store, func())) {
	t.Run("create and get round-trips the full record", func(t *testing.T) {
		store, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		task := sampleTask("water-plants")
		require.NoError(t, store.Create(ctx, task))

		fetched, err := store.Get(ctx, "water-plants")
		require.NoError(t, err)
		assert.Equal(t, task, fetched)
	})

	t.Run("create assigns a key when none is given", func(t *testing.T) {
		store, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		task := sampleTask("")
		require.NoError(t, store.Create(ctx, task))
		require.NotEmpty(t, task.Key)

		fetched, err := store.Get(ctx, task.Key)
		require.NoError(t, err)
		assert.Equal(t, task.Key, fetched.Key)
	})

	t.Run("create rejects duplicate keys", func(t *testing.T) {
		store, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		require.NoError(t, store.Create(ctx, sampleTask("dup")))
		err := store.Create(ctx, sampleTask("dup"))
		require.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("save persists ledger mutations", func(t *testing.T) {
		store, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		task := sampleTask("mutate")
		require.NoError(t, store.Create(ctx, task))

		require.True(t, task.SkipInstance(domain.MustDate("2025-01-10")))
		require.NoError(t, store.Save(ctx, task))

		fetched, err := store.Get(ctx, "mutate")
		require.NoError(t, err)
		assert.True(t, fetched.InstanceSkipped(domain.MustDate("2025-01-10")))
	})

	t.Run("save of an unknown key reports not found", func(t *testing.T) {
		store, teardown := setup(t)
		defer teardown()

		err := store.Save(context.Background(), sampleTask("ghost"))
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("get of an unknown key reports not found", func(t *testing.T) {
		store, teardown := setup(t)
		defer teardown()

		_, err := store.Get(context.Background(), "ghost")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("delete destroys the record and its history", func(t *testing.T) {
		store, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		require.NoError(t, store.Create(ctx, sampleTask("doomed")))
		require.NoError(t, store.Delete(ctx, "doomed"))

		_, err := store.Get(ctx, "doomed")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.ErrorIs(t, store.Delete(ctx, "doomed"), domain.ErrNotFound)
	})

	t.Run("load all returns every record keyed", func(t *testing.T) {
		store, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		require.NoError(t, store.Create(ctx, sampleTask("one")))
		plain := &domain.TaskRecord{
			Key:      "two",
			Title:    "File taxes",
			Priority: domain.PriorityHigh,
			Status:   domain.StatusOpen,
			Due:      domain.MustDate("2025-04-30"),
		}
		require.NoError(t, store.Create(ctx, plain))

		tasks, err := store.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "Water the plants", tasks["one"].Title)
		assert.Equal(t, plain, tasks["two"])
	})
}
