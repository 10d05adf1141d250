package cli

import (
	"context"
	"fmt"
	"strconv"

	"taskify/internal/table"
	"taskify/internal/validation"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
	validator    *validation.TaskValidator
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		validator:    validation.NewTaskValidator(),
	}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
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
	if err := controller.DeleteTask(ctx, id); err != nil {
		return c.errorHandler.Handle("delete task", err)
	}

	fmt.Printf("Deleted task %d\n", id)
	return nil
}
