package validation

import (
	"strings"

	"taskify/internal/domain"
)

const (
	titleMinLength       = 5
	titleMaxLength       = 50
	descriptionMinLength = 5
	descriptionMaxLength = 150
)

// TaskValidator provides validation for task drafts before any network call
type TaskValidator struct{}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{}
}

// ValidateTitle validates a task title
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		validationError.AddRequiredError("title")
		return validationError
	}
	if len(trimmed) < titleMinLength || len(trimmed) > titleMaxLength {
		validationError.AddInvalidLengthError("title", trimmed, titleMinLength, titleMaxLength)
		return validationError
	}
	return nil
}

// ValidateDescription validates a task description
func (tv *TaskValidator) ValidateDescription(description string) error {
	validationError := NewValidationError()

	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		validationError.AddRequiredError("description")
		return validationError
	}
	if len(trimmed) < descriptionMinLength || len(trimmed) > descriptionMaxLength {
		validationError.AddInvalidLengthError("description", trimmed, descriptionMinLength, descriptionMaxLength)
		return validationError
	}
	return nil
}

// ValidateDraft validates all fields of a new task draft
func (tv *TaskValidator) ValidateDraft(title, description, category string, priority domain.Priority) error {
	validationError := NewValidationError()

	if err := tv.ValidateTitle(title); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, ve.Errors...)
		}
	}
	if err := tv.ValidateDescription(description); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, ve.Errors...)
		}
	}
	if strings.TrimSpace(category) == "" {
		validationError.AddRequiredError("category")
	}
	if priority == "" {
		validationError.AddRequiredError("priority")
	} else if !priority.IsValid() {
		validationError.AddInvalidValueError("priority", priority, "must be Low, Medium or High")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateStatus validates a status value for inline editing
func (tv *TaskValidator) ValidateStatus(status domain.Status) error {
	if !status.IsValid() {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("status", status, "must be Pending, In Progress or Completed")
		return validationError
	}
	return nil
}

// ValidatePriority validates a priority value for inline editing
func (tv *TaskValidator) ValidatePriority(priority domain.Priority) error {
	if !priority.IsValid() {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("priority", priority, "must be Low, Medium or High")
		return validationError
	}
	return nil
}

// ValidateTaskID validates a task id from user input
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if id <= 0 {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("id", id, "must be a positive integer")
		return validationError
	}
	return nil
}
