package cli

import (
	"context"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// StatusCommand marks tasks completed or pending
type StatusCommand struct {
	app       *App
	completed bool
}

// NewStatusCommand creates a handler that sets completed on each task
func NewStatusCommand(app *App, completed bool) *StatusCommand {
	return &StatusCommand{app: app, completed: completed}
}

// Execute updates every task id given in args
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("id", "", "at least one task id is required")
	}

	patch := domain.TaskPatch{Completed: domain.BoolPtr(c.completed)}
	for _, id := range args {
		if err := c.app.validator.ValidateTaskID(id); err != nil {
			return c.app.errorHandler.Handle("update task status", err)
		}
		task, err := c.app.client.UpdateTask(ctx, id, patch)
		if err != nil {
			return c.app.errorHandler.Handle("update task status", err)
		}
		c.app.printf("Marked task %s as %s: %s\n", task.ID, task.Status(), task.Title)
	}
	return nil
}
