package cli

import (
	"context"
	"sort"
	"strings"

	"task-manager/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages the client commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry registers the client commands with default options
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	registry.Register("list", NewListCommand(app, FormatTable))
	registry.Register("add", NewAddCommand(app, ""))
	registry.Register("edit", NewEditCommand(app, nil, nil))
	registry.Register("done", NewStatusCommand(app, true))
	registry.Register("undone", NewStatusCommand(app, false))
	registry.Register("delete", NewDeleteCommand(app))
	registry.Register("output", NewOutputCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// Names returns the registered command names in order
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	return "usage: tm " + strings.Join(r.Names(), "|") + " [args]"
}
