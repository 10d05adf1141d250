package cli

import (
	"context"
	"fmt"
	"strconv"

	"taskify/internal/table"
	"taskify/internal/validation"
)

// ViewCommand handles the view command
type ViewCommand struct {
	app          *App
	errorHandler *ErrorHandler
	validator    *validation.TaskValidator
}

// NewViewCommand creates a new view command handler
func NewViewCommand(app *App) *ViewCommand {
	return &ViewCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		validator:    validation.NewTaskValidator(),
	}
}

// Execute runs the view command
func (c *ViewCommand) Execute(ctx context.Context, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid task id: %s", args[0])
	}
	if err := c.validator.ValidateTaskID(id); err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	if err := c.app.requireSession(ctx); err != nil {
		return err
	}

	controller := table.NewController(c.app.client, c.app.bus, c.app.config.Table.DefaultPageSize)
	task, err := controller.ViewTask(ctx, id)
	if err != nil {
		if c.errorHandler.IsNotFoundError(err) {
			fmt.Printf("Task %d not found\n", id)
			return nil
		}
		return c.errorHandler.Handle("view task", err)
	}

	fmt.Printf("Task %d\n", task.ID)
	fmt.Printf("  Title:       %s\n", task.Title)
	fmt.Printf("  Description: %s\n", task.Description)
	fmt.Printf("  Category:    %s\n", task.Category)
	fmt.Printf("  Priority:    %s\n", task.Priority)
	fmt.Printf("  Status:      %s\n", task.Status)
	fmt.Printf("  Created:     %s\n", task.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}
