// Package client talks to the task manager REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"task-manager/internal/domain"
)

// DefaultTimeout bounds every request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Operation messages wrapped around every failure
const (
	MsgFetchTasks = "Failed to fetch tasks"
	MsgFetchTask  = "Failed to fetch task"
	MsgCreateTask = "Failed to create task"
	MsgUpdateTask = "Failed to update task"
	MsgDeleteTask = "Failed to delete task"
)

// APIError is a non-2xx response from the service
type APIError struct {
	StatusCode int
	Message    string // the operation message reported by the server
	Detail     string // the server's error detail, if any
}

func (e *APIError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("%d: %s", e.StatusCode, e.Detail)
	case e.Message != "":
		return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Client is a typed client for the tasks resource
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for the tasks collection at baseURL
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the tasks collection URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListTasks returns all tasks, newest first
func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.do(ctx, http.MethodGet, c.baseURL, nil, &tasks); err != nil {
		return nil, fmt.Errorf("%s: %w", MsgFetchTasks, err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// GetTask returns the task with id
func (c *Client) GetTask(ctx context.Context, id string) (domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodGet, c.taskURL(id), nil, &task); err != nil {
		return domain.Task{}, fmt.Errorf("%s: %w", MsgFetchTask, err)
	}
	return task, nil
}

// CreateTask creates a task
func (c *Client) CreateTask(ctx context.Context, newTask domain.NewTask) (domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPost, c.baseURL, newTask, &task); err != nil {
		return domain.Task{}, fmt.Errorf("%s: %w", MsgCreateTask, err)
	}
	return task, nil
}

// UpdateTask sends the fields set in patch
func (c *Client) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPut, c.taskURL(id), patch, &task); err != nil {
		return domain.Task{}, fmt.Errorf("%s: %w", MsgUpdateTask, err)
	}
	return task, nil
}

// DeleteTask deletes the task with id
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, c.taskURL(id), nil, nil); err != nil {
		return fmt.Errorf("%s: %w", MsgDeleteTask, err)
	}
	return nil
}

func (c *Client) taskURL(id string) string {
	return c.baseURL + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, target string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(respBody, &payload) == nil {
			apiErr.Message = payload.Message
			apiErr.Detail = payload.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
