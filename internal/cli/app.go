package cli

import (
	"context"
	"fmt"

	"taskify/internal/api"
	"taskify/internal/bus"
	"taskify/internal/config"
	"taskify/internal/gate"
	"taskify/internal/session"
)

// App bundles the dependencies shared by every command handler
type App struct {
	config  *config.Config
	client  api.Client
	session *session.Store
	bus     *bus.Bus
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(cfg *config.Config, client api.Client, sess *session.Store, b *bus.Bus) *App {
	return &App{
		config:  cfg,
		client:  client,
		session: sess,
		bus:     b,
	}
}

// requireSession restores the session from the stored token and applies
// the access gate: commands over protected data run only when the gate
// is authorized.
func (a *App) requireSession(ctx context.Context) error {
	a.session.Restore(ctx)

	switch gate.Evaluate(a.session.State()) {
	case gate.Authorized:
		return nil
	default:
		return fmt.Errorf("not signed in (run: taskify login <email> <password>)")
	}
}
