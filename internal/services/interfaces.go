package services

import (
	"context"

	"task-manager/internal/domain"
)

// TaskService is the business layer between the transport and the store
type TaskService interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, task domain.NewTask) (domain.Task, error)
	GetTask(ctx context.Context, id string) (domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	// Ready reports whether the store answers a ping
	Ready(ctx context.Context) error
}
