package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"task-manager/internal/client"
	"task-manager/internal/domain"
)

// mockTaskClient implements TaskClient in memory, newest first
type mockTaskClient struct {
	tasks  []domain.Task
	nextID int
	now    time.Time
	err    error // returned by every call when set

	updates []domain.TaskPatch
}

func newMockTaskClient() *mockTaskClient {
	return &mockTaskClient{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (m *mockTaskClient) seed(titles ...string) []domain.Task {
	var seeded []domain.Task
	for _, title := range titles {
		task, _ := m.CreateTask(context.Background(), domain.NewTask{Title: title})
		seeded = append(seeded, task)
	}
	return seeded
}

func (m *mockTaskClient) ListTasks(context.Context) ([]domain.Task, error) {
	if m.err != nil {
		return nil, fmt.Errorf("%s: %w", client.MsgFetchTasks, m.err)
	}
	return append([]domain.Task{}, m.tasks...), nil
}

func (m *mockTaskClient) GetTask(_ context.Context, id string) (domain.Task, error) {
	if m.err != nil {
		return domain.Task{}, fmt.Errorf("%s: %w", client.MsgFetchTask, m.err)
	}
	if i := m.index(id); i >= 0 {
		return m.tasks[i], nil
	}
	return domain.Task{}, fmt.Errorf("%s: %w", client.MsgFetchTask, notFound(id))
}

func (m *mockTaskClient) CreateTask(_ context.Context, nt domain.NewTask) (domain.Task, error) {
	if m.err != nil {
		return domain.Task{}, fmt.Errorf("%s: %w", client.MsgCreateTask, m.err)
	}
	m.nextID++
	m.now = m.now.Add(time.Minute)
	task := domain.Task{
		ID:          fmt.Sprintf("task-%d", m.nextID),
		Title:       nt.Title,
		Description: nt.Description,
		CreatedAt:   m.now,
		UpdatedAt:   m.now,
	}
	m.tasks = append([]domain.Task{task}, m.tasks...)
	return task, nil
}

func (m *mockTaskClient) UpdateTask(_ context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	if m.err != nil {
		return domain.Task{}, fmt.Errorf("%s: %w", client.MsgUpdateTask, m.err)
	}
	m.updates = append(m.updates, patch)
	i := m.index(id)
	if i < 0 {
		return domain.Task{}, fmt.Errorf("%s: %w", client.MsgUpdateTask, notFound(id))
	}
	m.now = m.now.Add(time.Second)
	m.tasks[i] = patch.Apply(m.tasks[i], m.now)
	return m.tasks[i], nil
}

func (m *mockTaskClient) DeleteTask(_ context.Context, id string) error {
	if m.err != nil {
		return fmt.Errorf("%s: %w", client.MsgDeleteTask, m.err)
	}
	i := m.index(id)
	if i < 0 {
		return fmt.Errorf("%s: %w", client.MsgDeleteTask, notFound(id))
	}
	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	return nil
}

func (m *mockTaskClient) index(id string) int {
	for i, task := range m.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

func notFound(id string) *client.APIError {
	return &client.APIError{
		StatusCode: http.StatusNotFound,
		Message:    "Error",
		Detail:     "task not found: " + id,
	}
}

// setupTestApp returns an app over a mock client with captured output
func setupTestApp(t *testing.T) (*App, *mockTaskClient, *bytes.Buffer) {
	t.Helper()
	mock := newMockTaskClient()
	app := NewApp(mock)
	out := &bytes.Buffer{}
	app.SetOutput(out)
	return app, mock, out
}
