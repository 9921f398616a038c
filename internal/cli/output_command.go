package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatCSV   = "csv"
)

// OutputCommand exports every task in a machine readable format
type OutputCommand struct {
	app *App
}

// NewOutputCommand creates a new output command handler
func NewOutputCommand(app *App) *OutputCommand {
	return &OutputCommand{app: app}
}

// Execute runs the output command
func (c *OutputCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "output", "usage: tm output format=csv|json|yaml")
	}

	format := args[0]
	if !strings.HasPrefix(format, "format=") {
		return errors.NewInvalidInputError("format", format, "invalid format option")
	}
	format = strings.TrimPrefix(format, "format=")
	if format == FormatTable {
		return errors.NewInvalidInputError("format", format, "unsupported format")
	}

	tasks, err := c.app.client.ListTasks(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("export tasks", err)
	}
	return writeTasks(c.app.out, format, tasks)
}

// writeTasks renders tasks to w in format
func writeTasks(w io.Writer, format string, tasks []domain.Task) error {
	switch format {
	case FormatTable:
		return writeTable(w, tasks)
	case FormatJSON:
		return writeJSON(w, tasks)
	case FormatYAML:
		return writeYAML(w, tasks)
	case FormatCSV:
		return writeCSV(w, tasks)
	default:
		return errors.NewInvalidInputError("format", format, "unsupported format")
	}
}

func writeTable(w io.Writer, tasks []domain.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks found")
		return err
	}

	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		box := "[ ]"
		if task.Completed {
			box = "[x]"
		}
		rows = append(rows, []string{
			box,
			task.ID,
			task.Title,
			task.Status(),
			task.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "ID", "TITLE", "STATUS", "CREATED").
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func writeJSON(w io.Writer, tasks []domain.Task) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, tasks []domain.Task) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("failed to write YAML: %w", err)
	}
	return enc.Close()
}

func writeCSV(w io.Writer, tasks []domain.Task) error {
	writer := csv.NewWriter(w)

	header := []string{"ID", "Title", "Description", "Completed", "Created At", "Updated At"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, task := range tasks {
		row := []string{
			task.ID,
			task.Title,
			task.Description,
			strconv.FormatBool(task.Completed),
			task.CreatedAt.UTC().Format(time.RFC3339),
			task.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
