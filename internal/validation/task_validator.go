package validation

import (
	"strings"

	"task-manager/internal/config"
	"task-manager/internal/domain"
)

// Field names reported in FieldErrors
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
)

// TaskValidator validates task payloads at the service boundary
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a task validator with default limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator with configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateTitle validates a title for creation or update
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.Trim(title)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError(FieldTitle)
		return validationError
	}

	if max := tv.validator.TitleMaxLength(); !tv.validator.IsWithinLength(trimmed, max) {
		validationError.AddMaxLengthError(FieldTitle, trimmed, max)
		return validationError
	}
	return nil
}

// ValidateDescription validates an optional description
func (tv *TaskValidator) ValidateDescription(description string) error {
	if max := tv.validator.DescriptionMaxLength(); !tv.validator.IsWithinLength(description, max) {
		validationError := NewValidationError()
		validationError.AddMaxLengthError(FieldDescription, description, max)
		return validationError
	}
	return nil
}

// ValidateNewTask validates a creation payload and returns it trimmed
func (tv *TaskValidator) ValidateNewTask(task domain.NewTask) (domain.NewTask, error) {
	validationError := NewValidationError()
	validationError.Merge(tv.ValidateTitle(task.Title))

	description := tv.validator.Trim(task.Description)
	validationError.Merge(tv.ValidateDescription(description))

	if validationError.HasErrors() {
		return domain.NewTask{}, validationError
	}
	return domain.NewTask{
		Title:       tv.validator.Trim(task.Title),
		Description: description,
	}, nil
}

// ValidatePatch validates the provided fields of a patch and returns it trimmed
func (tv *TaskValidator) ValidatePatch(patch domain.TaskPatch) (domain.TaskPatch, error) {
	validationError := NewValidationError()
	cleaned := domain.TaskPatch{Completed: patch.Completed}

	if patch.Title != nil {
		validationError.Merge(tv.ValidateTitle(*patch.Title))
		cleaned.Title = domain.StringPtr(tv.validator.Trim(*patch.Title))
	}
	if patch.Description != nil {
		description := tv.validator.Trim(*patch.Description)
		validationError.Merge(tv.ValidateDescription(description))
		cleaned.Description = &description
	}

	if validationError.HasErrors() {
		return domain.TaskPatch{}, validationError
	}
	return cleaned, nil
}

// ValidateTaskID validates a task id taken from a path or argument
func (tv *TaskValidator) ValidateTaskID(id string) error {
	validationError := NewValidationError()

	if !tv.validator.IsNonEmptyString(id) {
		validationError.AddRequiredError(FieldID)
		return validationError
	}
	if strings.ContainsAny(id, " /") || tv.validator.HasControlCharacters(id) {
		validationError.AddInvalidFormatError(FieldID, id, "an opaque task id")
		return validationError
	}
	return nil
}
