package taskdoc

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daylight/internal/domain"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	start := 14 * 60
	completedAt := time.Date(2025, 1, 6, 18, 30, 0, 0, time.UTC)
	task := &domain.TaskRecord{
		Key:   "review-notes",
		Title: "Review weekly notes",
		Recurrence: &domain.RecurrenceRule{
			Frequency: domain.FrequencyWeekly,
			Interval:  1,
			WeekDays:  []domain.Weekday{domain.Friday},
			StartDate: domain.MustDate("2025-01-03"),
		},
		Priority:          domain.PriorityHigh,
		Status:            domain.StatusOpen,
		CompletedAt:       &completedAt,
		ActiveInstances:   []domain.Date{domain.MustDate("2025-01-03"), domain.MustDate("2025-01-10")},
		CompleteInstances: []domain.Date{domain.MustDate("2025-01-03")},
		SkippedInstances:  []domain.Date{domain.MustDate("2025-01-10")},
		RescheduledInstances: map[domain.Date]domain.Date{
			domain.MustDate("2025-01-10"): domain.MustDate("2025-01-12"),
		},
		Tags:            []string{"review"},
		Projects:        []string{"notes"},
		Contexts:        []string{"desk"},
		StartMinutes:    &start,
		DurationMinutes: 45,
		TimeEntries: []domain.TimeEntry{
			{Date: domain.MustDate("2025-01-03"), Minutes: 40, Note: "caught up"},
		},
	}

	data, err := Marshal(task)
	require.NoError(t, err)

	got, err := Unmarshal("review-notes", data)
	require.NoError(t, err)
	assert.Equal(t, task, got)
}

func TestMarshalOmitsEmptyFields(t *testing.T) {
	data, err := Marshal(&domain.TaskRecord{Key: "bare", Title: "Bare task"})
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "title: Bare task")
	assert.NotContains(t, text, "active_instances")
	assert.NotContains(t, text, "repeat")
	assert.NotContains(t, text, "completed_at")
}

func TestUnmarshalDefaults(t *testing.T) {
	doc := "---\ntitle: Minimal\n---\n"
	task, err := Unmarshal("minimal", []byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "minimal", task.Key)
	assert.Equal(t, domain.PriorityNone, task.Priority)
	assert.Equal(t, domain.StatusOpen, task.Status)
	assert.Nil(t, task.Recurrence)
}

func TestUnmarshalIgnoresMarkdownBody(t *testing.T) {
	doc := "---\ntitle: With notes\n---\n\n# Notes\n\nFree-form text lives below the frontmatter.\n"
	task, err := Unmarshal("notes", []byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "With notes", task.Title)
}

func TestUnmarshalErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"missing frontmatter", "title: nope\n"},
		{"unterminated frontmatter", "---\ntitle: nope\n"},
		{"bad yaml", "---\ntitle: [\n---\n"},
		{"bad priority", "---\npriority: urgent\n---\n"},
		{"bad status", "---\nstatus: paused\n---\n"},
		{"bad rule spec", "---\nrepeat: sometimes\n---\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Unmarshal("bad", []byte(tc.doc))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), "bad"))
		})
	}
}
