package cli

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"task-manager/internal/client"
	"task-manager/internal/errors"
	"task-manager/internal/validation"
)

// ErrorHandler turns command failures into messages for the terminal
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// commandError keeps the cause reachable behind a short message
type commandError struct {
	message string
	cause   error
}

func (e *commandError) Error() string { return e.message }

func (e *commandError) Unwrap() error { return e.cause }

// Handle prefixes err with the failed operation, preferring the server's detail
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}

	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return &commandError{
			message: fmt.Sprintf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage()),
			cause:   err,
		}
	}

	var apiErr *client.APIError
	if stderrors.As(err, &apiErr) {
		detail := apiErr.Detail
		if detail == "" {
			detail = apiErr.Error()
		}
		return &commandError{
			message: fmt.Sprintf("failed to %s: %s", operation, detail),
			cause:   err,
		}
	}

	if _, ok := errors.AsAppError(err); ok {
		return &commandError{
			message: fmt.Sprintf("failed to %s: %s", operation, errors.GetUserMessage(err)),
			cause:   err,
		}
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// IsNotFoundError reports whether err means the task does not exist
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	var apiErr *client.APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return errors.IsNotFound(err)
}

// IsValidationError reports whether err was caused by bad input
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	var apiErr *client.APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusBadRequest
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}
