// Package resthttp implements the api.Client interface over the task
// service's HTTP JSON endpoints.
package resthttp

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"taskify/internal/api"
	"taskify/internal/domain"
	"taskify/internal/errors"
)

// Client implements api.Client against an HTTP JSON backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration

	mu    sync.RWMutex
	token string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (used in tests)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a new HTTP backend client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		timeout:    10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken sets the bearer token attached to authenticated requests
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// errorBody is the shape of the backend's error payload
type errorBody struct {
	Message string `json:"message"`
}

// do performs one JSON request and decodes the response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.NewNetworkError(method+" "+path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.NewNetworkError(method+" "+path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return errors.NewTimeoutError(method+" "+path, c.timeout)
		}
		return errors.NewNetworkError(method+" "+path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(method, path, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.NewNetworkError("decode "+method+" "+path, err)
		}
	}
	return nil
}

// statusError maps a non-2xx response to a structured error
func (c *Client) statusError(method, path string, resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)
	message := eb.Message
	if message == "" {
		message = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.NewAuthError(message, nil)
	case http.StatusNotFound:
		return errors.NewNotFoundError("resource", path)
	default:
		return errors.NewNetworkError(method+" "+path, fmt.Errorf("%s: %s", resp.Status, message))
	}
}

// Me returns the profile of the user the current token belongs to
func (c *Client) Me(ctx context.Context) (*domain.UserProfile, error) {
	var user domain.UserProfile
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a token and user profile
func (c *Client) Login(ctx context.Context, email, password string) (*api.LoginResult, error) {
	payload := map[string]string{"email": email, "password": password}
	var result api.LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Signup registers a new account without logging it in
func (c *Client) Signup(ctx context.Context, name, email, password string) (*api.SignupResult, error) {
	payload := map[string]string{"name": name, "email": email, "password": password}
	var result api.SignupResult
	if err := c.do(ctx, http.MethodPost, "/auth/signup", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ChangePassword replaces the current user's password
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	payload := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	return c.do(ctx, http.MethodPatch, "/auth/change-password", payload, nil)
}

// UpdateProfile updates name and email, returning the stored profile
func (c *Client) UpdateProfile(ctx context.Context, name, email string) (*domain.UserProfile, error) {
	payload := map[string]string{"name": name, "email": email}
	var result struct {
		User domain.UserProfile `json:"user"`
	}
	if err := c.do(ctx, http.MethodPatch, "/auth/update", payload, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

// ListTasks returns the full task collection in server order
func (c *Client) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns a single task by id. The backend may answer with either
// a bare task object or a one-element array.
func (c *Client) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	path := fmt.Sprintf("/todos/%d", id)

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}

	if len(raw) > 0 && raw[0] == '[' {
		var tasks []*domain.Task
		if err := json.Unmarshal(raw, &tasks); err != nil {
			return nil, errors.NewNetworkError("decode GET "+path, err)
		}
		if len(tasks) == 0 {
			return nil, errors.NewNotFoundError("task", fmt.Sprintf("%d", id))
		}
		return tasks[0], nil
	}

	var task domain.Task
	if err := json.Unmarshal(raw, &task); err != nil {
		return nil, errors.NewNetworkError("decode GET "+path, err)
	}
	return &task, nil
}

// CreateTask creates a new task from the draft
func (c *Client) CreateTask(ctx context.Context, draft api.TaskDraft) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPost, "/todos", draft, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// PatchTask partially updates a task and returns the updated row
func (c *Client) PatchTask(ctx context.Context, id int64, fields map[string]interface{}) (*domain.Task, error) {
	path := fmt.Sprintf("/todos/%d", id)
	var task domain.Task
	if err := c.do(ctx, http.MethodPatch, path, fields, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask deletes a task by id
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/todos/%d", id), nil, nil)
}

// StatusCounts returns per-status task totals
func (c *Client) StatusCounts(ctx context.Context) ([]domain.StatusCount, error) {
	var counts []domain.StatusCount
	if err := c.do(ctx, http.MethodGet, "/todos/status/count", nil, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
