package cli

import (
	"context"
	"fmt"
	"testing"
	"time"

	"taskify/internal/api"
	"taskify/internal/bus"
	"taskify/internal/config"
	"taskify/internal/domain"
	"taskify/internal/errors"
	"taskify/internal/session"
)

// mockClient implements api.Client over an in-memory account and task set
type mockClient struct {
	token string

	user     *domain.UserProfile
	password string
	tasks    map[int64]*domain.Task
	nextID   int64

	loginCalls  int
	signupCalls int
	createCalls int
	patchCalls  int
}

func newMockClient() *mockClient {
	return &mockClient{
		user:     &domain.UserProfile{ID: 1, Name: "Ada", Email: "ada@example.com"},
		password: "secret1",
		tasks:    make(map[int64]*domain.Task),
		nextID:   1,
	}
}

func (m *mockClient) addTask(title, category string, priority domain.Priority, status domain.Status) *domain.Task {
	task := &domain.Task{
		ID:        m.nextID,
		Title:     title,
		Category:  category,
		Priority:  priority,
		Status:    status,
		CreatedAt: time.Date(2026, 1, int(m.nextID), 12, 0, 0, 0, time.UTC),
	}
	m.tasks[task.ID] = task
	m.nextID++
	return task
}

func (m *mockClient) SetToken(token string) { m.token = token }

func (m *mockClient) Me(ctx context.Context) (*domain.UserProfile, error) {
	if m.token != "T" {
		return nil, errors.NewAuthError("token expired", nil)
	}
	return m.user, nil
}

func (m *mockClient) Login(ctx context.Context, email, password string) (*api.LoginResult, error) {
	m.loginCalls++
	if email != m.user.Email || password != m.password {
		return nil, errors.NewAuthError("invalid credentials", nil)
	}
	return &api.LoginResult{Token: "T", User: *m.user}, nil
}

func (m *mockClient) Signup(ctx context.Context, name, email, password string) (*api.SignupResult, error) {
	m.signupCalls++
	return &api.SignupResult{Message: "User created successfully"}, nil
}

func (m *mockClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if oldPassword != m.password {
		return errors.NewAuthError("old password does not match", nil)
	}
	m.password = newPassword
	return nil
}

func (m *mockClient) UpdateProfile(ctx context.Context, name, email string) (*domain.UserProfile, error) {
	m.user.Name = name
	m.user.Email = email
	return m.user, nil
}

func (m *mockClient) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0, len(m.tasks))
	for i := int64(1); i < m.nextID; i++ {
		if task, ok := m.tasks[i]; ok {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (m *mockClient) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, errors.NewNotFoundError("task", fmt.Sprintf("%d", id))
	}
	return task, nil
}

func (m *mockClient) CreateTask(ctx context.Context, draft api.TaskDraft) (*domain.Task, error) {
	m.createCalls++
	task := m.addTask(draft.Title, draft.Category, draft.Priority, domain.StatusPending)
	task.Description = draft.Description
	return task, nil
}

func (m *mockClient) PatchTask(ctx context.Context, id int64, fields map[string]interface{}) (*domain.Task, error) {
	m.patchCalls++
	task, ok := m.tasks[id]
	if !ok {
		return nil, errors.NewNotFoundError("task", fmt.Sprintf("%d", id))
	}
	if status, ok := fields["status"].(string); ok {
		task.Status = domain.Status(status)
	}
	if priority, ok := fields["priority"].(string); ok {
		task.Priority = domain.Priority(priority)
	}
	return task, nil
}

func (m *mockClient) DeleteTask(ctx context.Context, id int64) error {
	if _, ok := m.tasks[id]; !ok {
		return errors.NewNotFoundError("task", fmt.Sprintf("%d", id))
	}
	delete(m.tasks, id)
	return nil
}

func (m *mockClient) StatusCounts(ctx context.Context) ([]domain.StatusCount, error) {
	counts := map[domain.Status]int{}
	for _, task := range m.tasks {
		counts[task.Status]++
	}
	result := []domain.StatusCount{}
	for _, status := range []domain.Status{domain.StatusPending, domain.StatusInProgress, domain.StatusCompleted} {
		if counts[status] > 0 {
			result = append(result, domain.StatusCount{Status: status, Count: counts[status]})
		}
	}
	return result, nil
}

// mockCreds is an in-memory credential store
type mockCreds struct {
	token string
}

func (m *mockCreds) Token(ctx context.Context) (string, error)         { return m.token, nil }
func (m *mockCreds) SaveToken(ctx context.Context, token string) error { m.token = token; return nil }
func (m *mockCreds) DeleteToken(ctx context.Context) error             { m.token = ""; return nil }
func (m *mockCreds) Close() error                                      { return nil }

// setupTestApp creates an app over the mock backend. A stored token "T"
// makes the session restorable.
func setupTestApp(t *testing.T, storedToken string) (*App, *mockClient) {
	client := newMockClient()
	creds := &mockCreds{token: storedToken}
	sess := session.NewStore(client, creds)
	app := NewApp(config.NewConfig(), client, sess, bus.New())
	return app, client
}
