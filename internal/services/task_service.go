package services

import (
	"context"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/store"
	"task-manager/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	store         store.Store
	taskValidator *validation.TaskValidator
	log           *logging.Logger
}

// Option configures the task service
type Option func(*taskServiceImpl)

// WithValidator replaces the default task validator
func WithValidator(v *validation.TaskValidator) Option {
	return func(s *taskServiceImpl) {
		s.taskValidator = v
	}
}

// WithLogger sets the logger used for system errors
func WithLogger(log *logging.Logger) Option {
	return func(s *taskServiceImpl) {
		s.log = log
	}
}

// NewTaskService creates a new TaskService instance
func NewTaskService(s store.Store, opts ...Option) TaskService {
	svc := &taskServiceImpl{
		store:         s,
		taskValidator: validation.NewTaskValidator(),
		log:           logging.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// validationFailed converts field errors into an AppError carrying the user-facing message
func validationFailed(err error) error {
	if ve, ok := err.(*validation.ValidationError); ok {
		return errors.NewValidationError(ve.GetUserFriendlyMessage(), ve)
	}
	return errors.NewValidationError("invalid task", err)
}

// logIfSystemError logs errors that are not caused by the caller
func (t *taskServiceImpl) logIfSystemError(operation string, err error) error {
	if err != nil && errors.ShouldLogError(err) {
		t.log.Errorf("%s: %v", operation, err)
	}
	return err
}

func (t *taskServiceImpl) validateID(id string) error {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return validationFailed(err)
	}
	return nil
}

// ListTasks returns all tasks, newest first
func (t *taskServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := t.store.List(ctx)
	if err != nil {
		return nil, t.logIfSystemError("list tasks", err)
	}
	t.log.Debugf("listed %d tasks", len(tasks))
	return tasks, nil
}

// CreateTask validates and persists a new task
func (t *taskServiceImpl) CreateTask(ctx context.Context, newTask domain.NewTask) (domain.Task, error) {
	cleaned, err := t.taskValidator.ValidateNewTask(newTask)
	if err != nil {
		return domain.Task{}, validationFailed(err)
	}

	task, err := t.store.Create(ctx, cleaned)
	if err != nil {
		return domain.Task{}, t.logIfSystemError("create task", err)
	}
	t.log.Debugf("created task %s", task.ID)
	return task, nil
}

// GetTask retrieves a task by its ID
func (t *taskServiceImpl) GetTask(ctx context.Context, id string) (domain.Task, error) {
	if err := t.validateID(id); err != nil {
		return domain.Task{}, err
	}

	task, err := t.store.Get(ctx, id)
	if err != nil {
		return domain.Task{}, t.logIfSystemError("get task", err)
	}
	return task, nil
}

// UpdateTask applies the provided fields of patch to a task
func (t *taskServiceImpl) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	if err := t.validateID(id); err != nil {
		return domain.Task{}, err
	}

	cleaned, err := t.taskValidator.ValidatePatch(patch)
	if err != nil {
		return domain.Task{}, validationFailed(err)
	}

	task, err := t.store.Update(ctx, id, cleaned)
	if err != nil {
		return domain.Task{}, t.logIfSystemError("update task", err)
	}
	t.log.Debugf("updated task %s", task.ID)
	return task, nil
}

// DeleteTask removes a task
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	if err := t.validateID(id); err != nil {
		return err
	}

	if err := t.store.Delete(ctx, id); err != nil {
		return t.logIfSystemError("delete task", err)
	}
	t.log.Debugf("deleted task %s", id)
	return nil
}

// Ready pings the store
func (t *taskServiceImpl) Ready(ctx context.Context) error {
	return t.logIfSystemError("ping store", t.store.Ping(ctx))
}
