package cli

import (
	"context"
	"fmt"

	"taskify/internal/validation"
)

// PasswdCommand handles the passwd command
type PasswdCommand struct {
	app          *App
	errorHandler *ErrorHandler
	validator    *validation.CredentialsValidator
}

// NewPasswdCommand creates a new passwd command handler
func NewPasswdCommand(app *App) *PasswdCommand {
	return &PasswdCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		validator:    validation.NewCredentialsValidator(),
	}
}

// Execute runs the passwd command: passwd <old> <new>
func (c *PasswdCommand) Execute(ctx context.Context, args []string) error {
	oldPassword, newPassword := args[0], args[1]

	if err := c.validator.ValidatePassword(newPassword); err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	if err := c.app.requireSession(ctx); err != nil {
		return err
	}

	if err := c.app.session.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return c.errorHandler.Handle("change password", err)
	}

	fmt.Println("Password changed")
	return nil
}
