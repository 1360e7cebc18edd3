package agenda

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"daylight/internal/domain"
)

func TestClassifyNonRecurring(t *testing.T) {
	today := domain.MustDate("2025-06-15")

	cases := []struct {
		name string
		task domain.TaskRecord
		want domain.Bucket
	}{
		{"scheduled today", domain.TaskRecord{Scheduled: domain.MustDate("2025-06-15")}, domain.BucketNow},
		{"scheduled yesterday", domain.TaskRecord{Scheduled: domain.MustDate("2025-06-14")}, domain.BucketPast},
		{"scheduled tomorrow", domain.TaskRecord{Scheduled: domain.MustDate("2025-06-16")}, domain.BucketUpcoming},
		{"due date used when unscheduled", domain.TaskRecord{Due: domain.MustDate("2025-06-15")}, domain.BucketNow},
		{"scheduled wins over due", domain.TaskRecord{Scheduled: domain.MustDate("2025-06-20"), Due: domain.MustDate("2025-06-14")}, domain.BucketUpcoming},
		{"done lands in wrapped", domain.TaskRecord{Scheduled: domain.MustDate("2025-06-14"), Status: domain.StatusDone}, domain.BucketWrapped},
		// Open and dateless is the backlog, which shares the wrapped bucket.
		{"dateless open is backlog", domain.TaskRecord{}, domain.BucketWrapped},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(&tc.task, today))
		})
	}
}

func TestClassifyRecurring(t *testing.T) {
	today := domain.MustDate("2026-01-25")

	newTask := func(active ...string) *domain.TaskRecord {
		task := &domain.TaskRecord{
			Recurrence: &domain.RecurrenceRule{
				Frequency: domain.FrequencyDaily,
				Interval:  1,
				StartDate: domain.MustDate("2026-01-01"),
			},
		}
		for _, d := range active {
			task.ActiveInstances = append(task.ActiveInstances, domain.MustDate(d))
		}
		return task
	}

	t.Run("one unresolved overdue instance dominates", func(t *testing.T) {
		task := newTask("2026-01-24", "2026-01-25")
		assert.Equal(t, domain.BucketPast, Classify(task, today))
	})

	t.Run("resolving the overdue day surfaces today", func(t *testing.T) {
		task := newTask("2026-01-24", "2026-01-25")
		task.SkipInstance(domain.MustDate("2026-01-24"))
		assert.Equal(t, domain.BucketNow, Classify(task, today))
	})

	t.Run("everything done today is wrapped", func(t *testing.T) {
		task := newTask("2026-01-25")
		task.CompleteInstance(domain.MustDate("2026-01-25"))
		assert.Equal(t, domain.BucketWrapped, Classify(task, today))
	})

	t.Run("only future instances is upcoming", func(t *testing.T) {
		task := newTask("2026-01-26", "2026-01-27")
		assert.Equal(t, domain.BucketUpcoming, Classify(task, today))
	})

	t.Run("reschedule resolves an overdue day", func(t *testing.T) {
		task := newTask("2026-01-24")
		task.RescheduleInstance(domain.MustDate("2026-01-24"), domain.MustDate("2026-01-28"))
		assert.Equal(t, domain.BucketUpcoming, Classify(task, today))
	})

	t.Run("reschedule onto today makes it due now", func(t *testing.T) {
		task := newTask("2026-01-24")
		task.RescheduleInstance(domain.MustDate("2026-01-24"), today)
		assert.Equal(t, domain.BucketNow, Classify(task, today))
	})

	t.Run("no instances at all is upcoming", func(t *testing.T) {
		assert.Equal(t, domain.BucketUpcoming, Classify(newTask(), today))
	})
}
