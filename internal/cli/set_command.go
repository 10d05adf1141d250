package cli

import (
	"context"
	"fmt"
	"strconv"

	"taskify/internal/domain"
	"taskify/internal/table"
	"taskify/internal/validation"
)

// SetCommand handles the set command for inline priority/status editing
type SetCommand struct {
	app          *App
	errorHandler *ErrorHandler
	validator    *validation.TaskValidator
}

// NewSetCommand creates a new set command handler
func NewSetCommand(app *App) *SetCommand {
	return &SetCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		validator:    validation.NewTaskValidator(),
	}
}

// Execute runs the set command: set <id> status|priority <value>
func (c *SetCommand) Execute(ctx context.Context, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid task id: %s", args[0])
	}
	if err := c.validator.ValidateTaskID(id); err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	field, value := args[1], args[2]
	switch field {
	case table.ColumnStatus:
		if err := c.validator.ValidateStatus(domain.Status(value)); err != nil {
			return c.errorHandler.HandleSimple(err)
		}
	case table.ColumnPriority:
		if err := c.validator.ValidatePriority(domain.Priority(value)); err != nil {
			return c.errorHandler.HandleSimple(err)
		}
	default:
		return fmt.Errorf("unknown field %q (expected status or priority)", field)
	}

	if err := c.app.requireSession(ctx); err != nil {
		return err
	}

	controller := table.NewController(c.app.client, c.app.bus, c.app.config.Table.DefaultPageSize)
	if err := controller.PatchField(ctx, id, field, value); err != nil {
		return c.errorHandler.Handle("update task", err)
	}

	fmt.Printf("Task %d %s set to %s\n", id, field, value)
	return nil
}
