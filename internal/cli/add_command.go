package cli

import (
	"context"
	"strings"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// AddCommand creates a task
type AddCommand struct {
	app         *App
	description string
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App, description string) *AddCommand {
	return &AddCommand{app: app, description: description}
}

// Execute creates a task titled by the joined arguments
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("title", "", "usage: tm add <title> [-d description]")
	}

	newTask, err := c.app.validator.ValidateNewTask(domain.NewTask{
		Title:       strings.Join(args, " "),
		Description: c.description,
	})
	if err != nil {
		return c.app.errorHandler.Handle("add task", err)
	}

	task, err := c.app.client.CreateTask(ctx, newTask)
	if err != nil {
		return c.app.errorHandler.Handle("add task", err)
	}

	c.app.printf("Created task %s: %s\n", task.ID, task.Title)
	return nil
}
