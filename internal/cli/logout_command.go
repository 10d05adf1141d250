package cli

import (
	"context"
	"fmt"
)

// LogoutCommand handles the logout command
type LogoutCommand struct {
	app *App
}

// NewLogoutCommand creates a new logout command handler
func NewLogoutCommand(app *App) *LogoutCommand {
	return &LogoutCommand{app: app}
}

// Execute runs the logout command. Logout is local only: the stored
// token is discarded without a server round-trip.
func (c *LogoutCommand) Execute(ctx context.Context, args []string) error {
	c.app.session.Logout(ctx)
	fmt.Println("Signed out")
	return nil
}
