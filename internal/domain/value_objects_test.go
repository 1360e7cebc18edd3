package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrequency(t *testing.T) {
	t.Run("accepts known frequencies case-insensitively", func(t *testing.T) {
		f, err := NewFrequency("Weekly")
		require.NoError(t, err)
		assert.Equal(t, FrequencyWeekly, f)
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := NewFrequency("fortnightly")
		require.ErrorIs(t, err, ErrInvalidFrequency)
	})
}

func TestNewPriority(t *testing.T) {
	t.Run("empty string means none", func(t *testing.T) {
		p, err := NewPriority("")
		require.NoError(t, err)
		assert.Equal(t, PriorityNone, p)
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := NewPriority("urgent")
		require.ErrorIs(t, err, ErrInvalidPriority)
	})
}

func TestNewStatus(t *testing.T) {
	t.Run("empty string means open", func(t *testing.T) {
		s, err := NewStatus("")
		require.NoError(t, err)
		assert.Equal(t, StatusOpen, s)
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := NewStatus("paused")
		require.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestNewWeekday(t *testing.T) {
	day, err := NewWeekday("FRI")
	require.NoError(t, err)
	assert.Equal(t, Friday, day)

	_, err = NewWeekday("friday")
	require.ErrorIs(t, err, ErrInvalidWeekday)
}

func TestWeekdayConversions(t *testing.T) {
	for _, day := range []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday} {
		assert.Equal(t, day, WeekdayOf(day.Time()))
	}
	assert.Equal(t, time.Monday, Monday.Time())
	assert.Equal(t, Sunday, WeekdayOf(time.Sunday))
}

func TestSortWeekdays(t *testing.T) {
	days := []Weekday{Sunday, Wednesday, Monday, Friday}
	SortWeekdays(days)
	assert.Equal(t, []Weekday{Monday, Wednesday, Friday, Sunday}, days)
}
