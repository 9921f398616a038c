package cli

import (
	"context"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// EditCommand changes the title or description of a task
type EditCommand struct {
	app         *App
	title       *string
	description *string
}

// NewEditCommand creates a new edit command handler. Nil fields are left unchanged.
func NewEditCommand(app *App, title, description *string) *EditCommand {
	return &EditCommand{app: app, title: title, description: description}
}

// Execute updates the task whose id is the single argument
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("id", args, "usage: tm edit <id> [--title t] [--description d]")
	}
	id := args[0]

	if c.title == nil && c.description == nil {
		return errors.NewInvalidInputError("flags", nil, "nothing to change, pass --title or --description")
	}

	if err := c.app.validator.ValidateTaskID(id); err != nil {
		return c.app.errorHandler.Handle("edit task", err)
	}
	patch, err := c.app.validator.ValidatePatch(domain.TaskPatch{
		Title:       c.title,
		Description: c.description,
	})
	if err != nil {
		return c.app.errorHandler.Handle("edit task", err)
	}

	task, err := c.app.client.UpdateTask(ctx, id, patch)
	if err != nil {
		return c.app.errorHandler.Handle("edit task", err)
	}

	c.app.printf("Updated task %s: %s\n", task.ID, task.Title)
	return nil
}
