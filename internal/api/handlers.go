package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

const maxBodySize = 1 << 20 // 1MB

// Fixed messages reported with every failure of an operation
const (
	msgFetchTasks  = "Failed to fetch tasks"
	msgFetchTask   = "Error fetching task"
	msgCreateTask  = "Error creating task"
	msgUpdateTask  = "Error updating task"
	msgDeleteTask  = "Error deleting task"
	msgTaskDeleted = "Task deleted successfully"
)

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// decodeBody decodes a JSON body into dst. An empty body leaves dst untouched.
func decodeBody(c *gin.Context, dst any) error {
	if c.Request.Body == nil {
		return nil
	}
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil
		}
		return bodyError(err)
	}
	// exactly one JSON value per body
	if err := dec.Decode(&struct{}{}); !stderrors.Is(err, io.EOF) {
		return bodyError(err)
	}
	return nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return errors.NewInvalidInputError("body", nil, "request body exceeds 1MB")
	}
	return errors.NewInvalidInputError("body", nil, "malformed JSON")
}

// writeError responds with the status mapped from err and the operation's fixed message
func (s *Server) writeError(c *gin.Context, message string, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error(message, "req_id", c.GetString(requestIDKey), "error", err)
	}
	c.JSON(status, errorResponse{
		Message: message,
		Error:   errors.GetUserMessage(err),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(c *gin.Context) {
	if err := s.service.Ready(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  errors.GetUserMessage(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.service.ListTasks(c.Request.Context())
	if err != nil {
		s.writeError(c, msgFetchTasks, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := decodeBody(c, &req); err != nil {
		s.writeError(c, msgCreateTask, err)
		return
	}

	task, err := s.service.CreateTask(c.Request.Context(), domain.NewTask{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		s.writeError(c, msgCreateTask, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleGetTask(c *gin.Context) {
	task, err := s.service.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, msgFetchTask, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var req updateTaskRequest
	if err := decodeBody(c, &req); err != nil {
		s.writeError(c, msgUpdateTask, err)
		return
	}

	task, err := s.service.UpdateTask(c.Request.Context(), c.Param("id"), domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		s.writeError(c, msgUpdateTask, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.service.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, msgDeleteTask, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: msgTaskDeleted})
}
