package cli

import (
	"context"

	"task-manager/internal/errors"
)

// DeleteCommand removes tasks by id
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute deletes every task id given in args
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("id", "", "at least one task id is required")
	}

	for _, id := range args {
		if err := c.app.validator.ValidateTaskID(id); err != nil {
			return c.app.errorHandler.Handle("delete task", err)
		}
		if err := c.app.client.DeleteTask(ctx, id); err != nil {
			return c.app.errorHandler.Handle("delete task", err)
		}
		c.app.printf("Deleted task %s\n", id)
	}
	return nil
}
