package agenda

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"daylight/internal/domain"
)

func TestScore(t *testing.T) {
	today := domain.MustDate("2025-06-15")

	cases := []struct {
		name string
		task domain.TaskRecord
		want int
	}{
		{"none priority due today", domain.TaskRecord{Priority: domain.PriorityNone, Due: today}, 10},
		{"high priority due today", domain.TaskRecord{Priority: domain.PriorityHigh, Due: today}, 13},
		{"normal priority far out", domain.TaskRecord{Priority: domain.PriorityNormal, Due: domain.MustDate("2025-07-20")}, 2},
		{"low priority in three days", domain.TaskRecord{Priority: domain.PriorityLow, Due: domain.MustDate("2025-06-18")}, 8},
		{"dateless scores bare weight", domain.TaskRecord{Priority: domain.PriorityHigh}, 3},
		{"nearest qualifying date wins", domain.TaskRecord{Priority: domain.PriorityNone, Scheduled: domain.MustDate("2025-06-20"), Due: domain.MustDate("2025-06-16")}, 9},
		// A past date contributes nothing; overdue weighting is per instance.
		{"past date ignored", domain.TaskRecord{Priority: domain.PriorityNormal, Due: domain.MustDate("2025-06-01")}, 2},
		{"exactly at the horizon", domain.TaskRecord{Priority: domain.PriorityNone, Due: domain.MustDate("2025-06-25")}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Score(&tc.task, today))
		})
	}

	t.Run("unknown priority sorts last", func(t *testing.T) {
		task := domain.TaskRecord{Priority: domain.Priority("critical"), Due: today}
		assert.Less(t, Score(&task, today), unknownPriorityScore/2)
	})
}

func TestInstanceScore(t *testing.T) {
	today := domain.MustDate("2025-06-15")
	task := &domain.TaskRecord{Priority: domain.PriorityNone}

	t.Run("due today", func(t *testing.T) {
		assert.Equal(t, 10, InstanceScore(task, today, today))
	})

	t.Run("overdue instances grow with age", func(t *testing.T) {
		oneDay := InstanceScore(task, domain.MustDate("2025-06-14"), today)
		fiveDays := InstanceScore(task, domain.MustDate("2025-06-10"), today)

		assert.Equal(t, 11, oneDay)
		assert.Equal(t, 15, fiveDays)
		assert.Greater(t, fiveDays, oneDay)
	})

	t.Run("overdue outranks anything upcoming", func(t *testing.T) {
		overdue := InstanceScore(task, domain.MustDate("2025-06-14"), today)
		tomorrow := InstanceScore(task, domain.MustDate("2025-06-16"), today)
		assert.Greater(t, overdue, tomorrow)
	})

	t.Run("priority still contributes", func(t *testing.T) {
		high := &domain.TaskRecord{Priority: domain.PriorityHigh}
		assert.Equal(t, 14, InstanceScore(high, domain.MustDate("2025-06-14"), today))
	})
}
