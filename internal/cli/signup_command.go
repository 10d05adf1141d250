package cli

import (
	"context"
	"fmt"

	"taskify/internal/validation"
)

// SignupCommand handles the signup command
type SignupCommand struct {
	app          *App
	errorHandler *ErrorHandler
	validator    *validation.CredentialsValidator
}

// NewSignupCommand creates a new signup command handler
func NewSignupCommand(app *App) *SignupCommand {
	return &SignupCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		validator:    validation.NewCredentialsValidator(),
	}
}

// Execute runs the signup command. Signing up does not sign the new
// account in; follow with the login command.
func (c *SignupCommand) Execute(ctx context.Context, args []string) error {
	name, email, password := args[0], args[1], args[2]

	if err := c.validator.ValidateSignup(name, email, password); err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	result, err := c.app.session.Signup(ctx, name, email, password)
	if err != nil {
		return c.errorHandler.Handle("sign up", err)
	}

	if result.Message != "" {
		fmt.Println(result.Message)
	} else {
		fmt.Println("Account created. Run: taskify login", email, "<password>")
	}
	return nil
}
