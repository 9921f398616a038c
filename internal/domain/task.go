package domain

import (
	"time"
)

// Task represents a to-do item in the domain model.
// This is a pure domain model without storage-specific concerns.
type Task struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Completed   bool      `json:"completed" yaml:"completed"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// NewTask holds the fields a client supplies when creating a task.
type NewTask struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// TaskPatch is a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return t.Title != ""
}

// Status returns the display status of the task.
func (t Task) Status() string {
	if t.Completed {
		return "Completed"
	}
	return "Pending"
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// IsEmpty reports whether the patch sets no fields.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}

// Apply returns a copy of task with the patch applied and UpdatedAt set to now.
// ID and CreatedAt are never modified.
func (p TaskPatch) Apply(task Task, now time.Time) Task {
	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	if p.Completed != nil {
		task.Completed = *p.Completed
	}
	task.UpdatedAt = now
	return task
}

// StringPtr returns a pointer to s. Handy when building patches.
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// Timestamp normalises t to the precision tasks are stored with.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
