package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTask_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		task     Task
		expected bool
	}{
		{
			name:     "valid task with title",
			task:     Task{ID: "1", Title: "Buy milk"},
			expected: true,
		},
		{
			name:     "invalid task with empty title",
			task:     Task{ID: "1", Title: ""},
			expected: false,
		},
		{
			name:     "valid task without id",
			task:     Task{Title: "Buy milk"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.IsValid())
		})
	}
}

func TestTask_Status(t *testing.T) {
	assert.Equal(t, "Pending", Task{Title: "a"}.Status())
	assert.Equal(t, "Completed", Task{Title: "a", Completed: true}.Status())
}

func TestTask_String(t *testing.T) {
	assert.Equal(t, "Buy milk", Task{Title: "Buy milk"}.String())
}

func TestTaskPatch_IsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		patch    TaskPatch
		expected bool
	}{
		{name: "no fields", patch: TaskPatch{}, expected: true},
		{name: "title only", patch: TaskPatch{Title: StringPtr("x")}, expected: false},
		{name: "description cleared", patch: TaskPatch{Description: StringPtr("")}, expected: false},
		{name: "completed false", patch: TaskPatch{Completed: BoolPtr(false)}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.patch.IsEmpty())
		})
	}
}

func TestTaskPatch_Apply(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	later := created.Add(time.Hour)
	base := Task{
		ID:          "abc",
		Title:       "Write report",
		Description: "quarterly",
		Completed:   false,
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	t.Run("completed only changes completed and updatedAt", func(t *testing.T) {
		got := TaskPatch{Completed: BoolPtr(true)}.Apply(base, later)

		want := base
		want.Completed = true
		want.UpdatedAt = later
		assert.Equal(t, want, got)
	})

	t.Run("all fields", func(t *testing.T) {
		got := TaskPatch{
			Title:       StringPtr("Write summary"),
			Description: StringPtr(""),
			Completed:   BoolPtr(true),
		}.Apply(base, later)

		assert.Equal(t, "abc", got.ID)
		assert.Equal(t, "Write summary", got.Title)
		assert.Empty(t, got.Description)
		assert.True(t, got.Completed)
		assert.Equal(t, created, got.CreatedAt)
		assert.Equal(t, later, got.UpdatedAt)
	})

	t.Run("empty patch refreshes updatedAt", func(t *testing.T) {
		got := TaskPatch{}.Apply(base, later)
		assert.Equal(t, base.Title, got.Title)
		assert.Equal(t, later, got.UpdatedAt)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		_ = TaskPatch{Title: StringPtr("other")}.Apply(base, later)
		assert.Equal(t, "Write report", base.Title)
	})
}

func TestTimestamp(t *testing.T) {
	loc := time.FixedZone("X", 3600)
	in := time.Date(2024, 5, 6, 7, 8, 9, 123456789, loc)

	got := Timestamp(in)

	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 123000000, got.Nanosecond())
	assert.True(t, got.Equal(in.Truncate(time.Millisecond)))
}
