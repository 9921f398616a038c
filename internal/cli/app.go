package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"task-manager/internal/client"
	"task-manager/internal/domain"
	"task-manager/internal/validation"
)

// TaskClient is the REST API as seen by the command line
type TaskClient interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, id string) (domain.Task, error)
	CreateTask(ctx context.Context, task domain.NewTask) (domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

var _ TaskClient = (*client.Client)(nil)

// App holds what every client command needs
type App struct {
	client       TaskClient
	validator    *validation.TaskValidator
	errorHandler *ErrorHandler
	out          io.Writer
	registry     *CommandRegistry
}

// NewApp creates a CLI application over c writing to stdout
func NewApp(c TaskClient) *App {
	return NewAppWithValidator(c, validation.NewTaskValidator())
}

// NewAppWithValidator creates a CLI application with configured validation limits
func NewAppWithValidator(c TaskClient, v *validation.TaskValidator) *App {
	app := &App{
		client:       c,
		validator:    v,
		errorHandler: NewErrorHandler(),
		out:          os.Stdout,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// SetOutput redirects command output
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// Run executes the named command with its arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
