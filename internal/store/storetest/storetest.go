// Package storetest holds the behaviour every store.Store backend must share.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/store"
)

// FakeClock is a manually advanced clock.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock creates a clock stopped at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Harness wires a backend into the suite.
type Harness struct {
	// New returns an empty store using clock for timestamps.
	New func(t *testing.T, clock store.Clock) store.Store
	// MissingID returns a well-formed id that no task has.
	MissingID func() string
}

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// Run executes the conformance suite against h.
func Run(t *testing.T, h Harness) {
	t.Run("create sets defaults", func(t *testing.T) { testCreateDefaults(t, h) })
	t.Run("create rejects empty title", func(t *testing.T) { testCreateEmptyTitle(t, h) })
	t.Run("list empty", func(t *testing.T) { testListEmpty(t, h) })
	t.Run("list newest first", func(t *testing.T) { testListOrder(t, h) })
	t.Run("list same timestamp keeps insertion order", func(t *testing.T) { testListSameTimestamp(t, h) })
	t.Run("round trip", func(t *testing.T) { testRoundTrip(t, h) })
	t.Run("get", func(t *testing.T) { testGet(t, h) })
	t.Run("update completed only", func(t *testing.T) { testUpdateCompleted(t, h) })
	t.Run("update all fields", func(t *testing.T) { testUpdateAllFields(t, h) })
	t.Run("update empty patch", func(t *testing.T) { testUpdateEmptyPatch(t, h) })
	t.Run("update rejects empty title", func(t *testing.T) { testUpdateEmptyTitle(t, h) })
	t.Run("update missing", func(t *testing.T) { testUpdateMissing(t, h) })
	t.Run("delete", func(t *testing.T) { testDelete(t, h) })
	t.Run("delete missing", func(t *testing.T) { testDeleteMissing(t, h) })
	t.Run("ping", func(t *testing.T) { testPing(t, h) })
}

func testCreateDefaults(t *testing.T, h Harness) {
	clock := NewFakeClock(epoch)
	s := h.New(t, clock.Now)
	ctx := context.Background()

	task, err := s.Create(ctx, domain.NewTask{Title: "Write docs", Description: "README first"})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Write docs", task.Title)
	assert.Equal(t, "README first", task.Description)
	assert.False(t, task.Completed)
	assert.True(t, task.CreatedAt.Equal(epoch), "createdAt = %v", task.CreatedAt)
	assert.True(t, task.CreatedAt.Equal(task.UpdatedAt))
}

func testCreateEmptyTitle(t *testing.T, h Harness) {
	s := h.New(t, nil)
	ctx := context.Background()

	for _, title := range []string{"", "   "} {
		_, err := s.Create(ctx, domain.NewTask{Title: title})
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation), "got %v", err)
	}

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func testListEmpty(t *testing.T, h Harness) {
	s := h.New(t, nil)

	tasks, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Len(t, tasks, 0)
}

func testListOrder(t *testing.T, h Harness) {
	clock := NewFakeClock(epoch)
	s := h.New(t, clock.Now)
	ctx := context.Background()

	titles := []string{"first", "second", "third", "fourth"}
	for _, title := range titles {
		_, err := s.Create(ctx, domain.NewTask{Title: title})
		require.NoError(t, err)
		clock.Advance(time.Second)
	}

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, len(titles))

	for i, task := range tasks {
		assert.Equal(t, titles[len(titles)-1-i], task.Title)
		if i > 0 {
			assert.False(t, task.CreatedAt.After(tasks[i-1].CreatedAt), "list must be createdAt descending")
		}
	}
}

func testListSameTimestamp(t *testing.T, h Harness) {
	clock := NewFakeClock(epoch)
	s := h.New(t, clock.Now)
	ctx := context.Background()

	for _, title := range []string{"a", "b", "c"} {
		_, err := s.Create(ctx, domain.NewTask{Title: title})
		require.NoError(t, err)
	}

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []string{"c", "b", "a"}, titlesOf(tasks))
}

func testRoundTrip(t *testing.T, h Harness) {
	s := h.New(t, nil)
	ctx := context.Background()

	created, err := s.Create(ctx, domain.NewTask{Title: "Buy milk"})
	require.NoError(t, err)

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, created.ID, tasks[0].ID)
	assert.Equal(t, "Buy milk", tasks[0].Title)
	assert.False(t, tasks[0].Completed)
	assert.Empty(t, tasks[0].Description)
}

func testGet(t *testing.T, h Harness) {
	s := h.New(t, nil)
	ctx := context.Background()

	created, err := s.Create(ctx, domain.NewTask{Title: "Call plumber"})
	require.NoError(t, err)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Title, got.Title)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

	_, err = s.Get(ctx, h.MissingID())
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err), "got %v", err)
}

func testUpdateCompleted(t *testing.T, h Harness) {
	clock := NewFakeClock(epoch)
	s := h.New(t, clock.Now)
	ctx := context.Background()

	created, err := s.Create(ctx, domain.NewTask{Title: "Pay rent", Description: "by Friday"})
	require.NoError(t, err)

	clock.Advance(time.Minute)
	updated, err := s.Update(ctx, created.ID, domain.TaskPatch{Completed: domain.BoolPtr(true)})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.True(t, updated.Completed)
	assert.True(t, updated.UpdatedAt.Equal(epoch.Add(time.Minute)), "updatedAt = %v", updated.UpdatedAt)

	stored, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, stored.Completed)
	assert.True(t, stored.UpdatedAt.Equal(updated.UpdatedAt))
}

func testUpdateAllFields(t *testing.T, h Harness) {
	clock := NewFakeClock(epoch)
	s := h.New(t, clock.Now)
	ctx := context.Background()

	created, err := s.Create(ctx, domain.NewTask{Title: "Draft", Description: "old"})
	require.NoError(t, err)

	clock.Advance(time.Hour)
	updated, err := s.Update(ctx, created.ID, domain.TaskPatch{
		Title:       domain.StringPtr("Final"),
		Description: domain.StringPtr(""),
		Completed:   domain.BoolPtr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, "Final", updated.Title)
	assert.Empty(t, updated.Description)
	assert.True(t, updated.Completed)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
}

func testUpdateEmptyPatch(t *testing.T, h Harness) {
	clock := NewFakeClock(epoch)
	s := h.New(t, clock.Now)
	ctx := context.Background()

	created, err := s.Create(ctx, domain.NewTask{Title: "Idle"})
	require.NoError(t, err)

	clock.Advance(time.Second)
	updated, err := s.Update(ctx, created.ID, domain.TaskPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Idle", updated.Title)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func testUpdateEmptyTitle(t *testing.T, h Harness) {
	s := h.New(t, nil)
	ctx := context.Background()

	created, err := s.Create(ctx, domain.NewTask{Title: "Keep me"})
	require.NoError(t, err)

	_, err = s.Update(ctx, created.ID, domain.TaskPatch{Title: domain.StringPtr("")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation), "got %v", err)

	stored, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keep me", stored.Title)
}

func testUpdateMissing(t *testing.T, h Harness) {
	s := h.New(t, nil)

	_, err := s.Update(context.Background(), h.MissingID(), domain.TaskPatch{Completed: domain.BoolPtr(true)})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err), "got %v", err)
}

func testDelete(t *testing.T, h Harness) {
	s := h.New(t, nil)
	ctx := context.Background()

	keep, err := s.Create(ctx, domain.NewTask{Title: "keep"})
	require.NoError(t, err)
	drop, err := s.Create(ctx, domain.NewTask{Title: "drop"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, drop.ID))

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, keep.ID, tasks[0].ID)

	_, err = s.Get(ctx, drop.ID)
	assert.True(t, errors.IsNotFound(err), "got %v", err)
}

func testDeleteMissing(t *testing.T, h Harness) {
	s := h.New(t, nil)

	err := s.Delete(context.Background(), h.MissingID())
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err), "got %v", err)
}

func testPing(t *testing.T, h Harness) {
	s := h.New(t, nil)
	assert.NoError(t, s.Ping(context.Background()))
}

func titlesOf(tasks []domain.Task) []string {
	titles := make([]string, len(tasks))
	for i, task := range tasks {
		titles[i] = task.Title
	}
	return titles
}
