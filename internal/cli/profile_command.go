package cli

import (
	"context"
	"fmt"

	"taskify/internal/validation"
)

// ProfileCommand handles the profile command
type ProfileCommand struct {
	app          *App
	errorHandler *ErrorHandler
	validator    *validation.CredentialsValidator
}

// NewProfileCommand creates a new profile command handler
func NewProfileCommand(app *App) *ProfileCommand {
	return &ProfileCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		validator:    validation.NewCredentialsValidator(),
	}
}

// Execute runs the profile command, updating name and/or email. Fields
// left empty keep their current value.
func (c *ProfileCommand) Execute(ctx context.Context, name, email string) error {
	if err := c.app.requireSession(ctx); err != nil {
		return err
	}

	current := c.app.session.State().User
	if name == "" {
		name = current.Name
	}
	if email == "" {
		email = current.Email
	}
	if err := c.validator.ValidateEmail(email); err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	user, err := c.app.session.UpdateProfile(ctx, name, email)
	if err != nil {
		return c.errorHandler.Handle("update profile", err)
	}

	fmt.Printf("Profile updated: %s <%s>\n", user.Name, user.Email)
	return nil
}
