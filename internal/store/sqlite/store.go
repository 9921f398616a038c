package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/store"
	"task-manager/internal/store/sqlite/migrations"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store implements store.Store on an embedded SQLite database
type Store struct {
	db    *sql.DB
	clock store.Clock
	newID func() string
}

var _ store.Store = (*Store)(nil)

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for timestamps
func WithClock(clock store.Clock) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithIDGenerator overrides how task ids are allocated
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// New opens the database at dbPath and runs pending migrations
func New(ctx context.Context, dbPath string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStoreError("open database", err)
	}
	// One connection: ":memory:" databases are per connection and SQLite
	// serialises writers anyway.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.NewStoreError("connect", err)
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewStoreError("run migrations", err)
	}

	s := &Store{
		db:    db,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return HandleStoreError("ping", err)
	}
	return nil
}

// List retrieves all tasks, newest first
func (s *Store) List(ctx context.Context) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC, seq DESC`

	rows, err := QueryMultiple(ctx, s.db, query, ScanTasks, "tasks")
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, len(rows))
	for i, task := range rows {
		tasks[i] = *task
	}
	return tasks, nil
}

// Create inserts a new task
func (s *Store) Create(ctx context.Context, newTask domain.NewTask) (domain.Task, error) {
	if err := store.RequireTitle(newTask.Title); err != nil {
		return domain.Task{}, err
	}

	now := s.clock.Now()
	task := domain.Task{
		ID:          s.newID(),
		Title:       newTask.Title,
		Description: newTask.Description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	query := `
	INSERT INTO tasks (id, title, description, completed, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.Completed,
		FormatTimeForDB(task.CreatedAt), FormatTimeForDB(task.UpdatedAt))
	if err != nil {
		return domain.Task{}, HandleStoreError("create task", err)
	}

	return task, nil
}

// Get retrieves a task by id
func (s *Store) Get(ctx context.Context, id string) (domain.Task, error) {
	task, err := s.get(ctx, s.db, id)
	if err != nil {
		return domain.Task{}, err
	}
	return *task, nil
}

func (s *Store) get(ctx context.Context, q querier, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return QuerySingle(ctx, q, query, ScanTask, store.ResourceTask, id, id)
}

// Update applies patch to an existing task inside a transaction
func (s *Store) Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	if err := store.CheckPatch(patch); err != nil {
		return domain.Task{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Task{}, HandleStoreError("begin transaction", err)
	}
	defer tx.Rollback()

	current, err := s.get(ctx, tx, id)
	if err != nil {
		return domain.Task{}, err
	}

	updated := patch.Apply(*current, s.clock.Now())
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		updated.UpdatedAt = updated.CreatedAt
	}

	sets, args := updateAssignments(patch, updated)
	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	args = append(args, id)

	if err := ExecuteWithRowsAffected(ctx, tx, query, store.ResourceTask, id, args...); err != nil {
		return domain.Task{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Task{}, HandleStoreError("commit update", err)
	}

	return updated, nil
}

// updateAssignments builds the SET clause for the fields present in patch.
func updateAssignments(patch domain.TaskPatch, updated domain.Task) ([]string, []interface{}) {
	var sets []string
	var args []interface{}

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, updated.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, updated.Description)
	}
	if patch.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, updated.Completed)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, FormatTimeForDB(updated.UpdatedAt))

	return sets, args
}

// Delete deletes a task by id
func (s *Store) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, s.db, query, store.ResourceTask, id, id)
}

// String describes the store for logs
func (s *Store) String() string {
	return fmt.Sprintf("sqlite(%p)", s.db)
}
