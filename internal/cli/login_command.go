package cli

import (
	"context"
	"fmt"

	"taskify/internal/validation"
)

// LoginCommand handles the login command
type LoginCommand struct {
	app          *App
	errorHandler *ErrorHandler
	validator    *validation.CredentialsValidator
}

// NewLoginCommand creates a new login command handler
func NewLoginCommand(app *App) *LoginCommand {
	return &LoginCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		validator:    validation.NewCredentialsValidator(),
	}
}

// Execute runs the login command
func (c *LoginCommand) Execute(ctx context.Context, args []string) error {
	email, password := args[0], args[1]

	if err := c.validator.ValidateLogin(email, password); err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	result, err := c.app.session.Login(ctx, email, password)
	if err != nil {
		return c.errorHandler.Handle("sign in", err)
	}

	fmt.Printf("Signed in as %s <%s>\n", result.User.Name, result.User.Email)
	return nil
}
