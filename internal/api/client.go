// Package api defines the backend-agnostic interface for the remote task service.
package api

import (
	"context"

	"taskify/internal/domain"
)

// LoginResult is the backend response to a successful login
type LoginResult struct {
	Token string             `json:"token"`
	User  domain.UserProfile `json:"user"`
}

// SignupResult is the backend response to a signup request.
// Signup does not authenticate; the result is returned to the caller as-is.
type SignupResult struct {
	Message string `json:"message"`
}

// TaskDraft holds the user-provided fields for a new task
type TaskDraft struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Priority    domain.Priority `json:"priority"`
}

// Client defines the interface for remote task service operations.
// All HTTP calls go through this interface; components above it never
// build requests directly.
type Client interface {
	// SetToken sets the bearer token attached to authenticated requests.
	// An empty token detaches the credential.
	SetToken(token string)

	// Me returns the profile of the user the current token belongs to.
	Me(ctx context.Context) (*domain.UserProfile, error)

	// Login exchanges credentials for a token and user profile.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Signup registers a new account. It does not log the account in.
	Signup(ctx context.Context, name, email, password string) (*SignupResult, error)

	// ChangePassword replaces the current user's password.
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error

	// UpdateProfile updates name and email, returning the stored profile.
	UpdateProfile(ctx context.Context, name, email string) (*domain.UserProfile, error)

	// ListTasks returns the full task collection in server order.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// GetTask returns a single task by id.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// CreateTask creates a new task from the draft.
	CreateTask(ctx context.Context, draft TaskDraft) (*domain.Task, error)

	// PatchTask partially updates a task and returns the updated row.
	PatchTask(ctx context.Context, id int64, fields map[string]interface{}) (*domain.Task, error)

	// DeleteTask deletes a task by id.
	DeleteTask(ctx context.Context, id int64) error

	// StatusCounts returns per-status task totals.
	StatusCounts(ctx context.Context) ([]domain.StatusCount, error)
}
