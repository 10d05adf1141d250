package cli

import (
	"context"
	"fmt"

	"taskify/internal/api"
	"taskify/internal/bus"
	"taskify/internal/domain"
	"taskify/internal/validation"
)

// AddCommand handles the add command. It is a mutation origin decoupled
// from the task table: after creating a task it publishes the
// invalidation signal rather than touching any view state directly.
type AddCommand struct {
	app          *App
	errorHandler *ErrorHandler
	validator    *validation.TaskValidator
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		validator:    validation.NewTaskValidator(),
	}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, title, description, category string, priority domain.Priority) error {
	if err := c.validator.ValidateDraft(title, description, category, priority); err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	if err := c.app.requireSession(ctx); err != nil {
		return err
	}

	task, err := c.app.client.CreateTask(ctx, api.TaskDraft{
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    priority,
	})
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}

	c.app.bus.Publish(bus.TasksChanged)

	fmt.Printf("Created task %d: %s\n", task.ID, task.Title)
	return nil
}
