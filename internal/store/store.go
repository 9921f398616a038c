// Package store defines the persistence contract for tasks.
package store

import (
	"context"
	"strings"
	"time"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// Store is a durable collection of tasks addressable by id.
type Store interface {
	// List returns all tasks, newest first.
	List(ctx context.Context) ([]domain.Task, error)
	// Create persists a new task with completed=false and both timestamps set to now.
	Create(ctx context.Context, task domain.NewTask) (domain.Task, error)
	Get(ctx context.Context, id string) (domain.Task, error)
	// Update applies the patch and refreshes UpdatedAt.
	Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error)
	Delete(ctx context.Context, id string) error

	Ping(ctx context.Context) error
	Close() error
}

// Clock returns the current time. Stores take one so tests can pin timestamps.
type Clock func() time.Time

// Now returns c() normalised to storage precision, or the wall clock when c is nil.
func (c Clock) Now() time.Time {
	if c == nil {
		return domain.Timestamp(time.Now())
	}
	return domain.Timestamp(c())
}

// ResourceTask is the resource name used in not found errors.
const ResourceTask = "task"

// RequireTitle enforces the one schema rule every backend shares.
func RequireTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.NewValidationError("title is required", nil).WithContext("field", "title")
	}
	return nil
}

// CheckPatch rejects patches that would clear the title.
func CheckPatch(patch domain.TaskPatch) error {
	if patch.Title != nil {
		return RequireTitle(*patch.Title)
	}
	return nil
}
