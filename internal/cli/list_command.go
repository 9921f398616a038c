package cli

import (
	"context"

	"task-manager/internal/errors"
)

// ListCommand prints all tasks, newest first
type ListCommand struct {
	app    *App
	format string
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App, format string) *ListCommand {
	if format == "" {
		format = FormatTable
	}
	return &ListCommand{app: app, format: format}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("args", args, "list takes no arguments")
	}
	switch c.format {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return errors.NewInvalidInputError("format", c.format, "unsupported format, use table, json or yaml")
	}

	tasks, err := c.app.client.ListTasks(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("list tasks", err)
	}
	return writeTasks(c.app.out, c.format, tasks)
}
