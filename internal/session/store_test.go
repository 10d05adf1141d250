package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskify/internal/api"
	"taskify/internal/domain"
	"taskify/internal/errors"
)

// mockClient implements api.Client with canned auth responses
type mockClient struct {
	token string

	meUser      *domain.UserProfile
	meErr       error
	loginResult *api.LoginResult
	loginErr    error
	updatedUser *domain.UserProfile
	updateErr   error
	passwdErr   error

	meCalls int
}

func (m *mockClient) SetToken(token string) { m.token = token }

func (m *mockClient) Me(ctx context.Context) (*domain.UserProfile, error) {
	m.meCalls++
	return m.meUser, m.meErr
}

func (m *mockClient) Login(ctx context.Context, email, password string) (*api.LoginResult, error) {
	return m.loginResult, m.loginErr
}

func (m *mockClient) Signup(ctx context.Context, name, email, password string) (*api.SignupResult, error) {
	return &api.SignupResult{Message: "User created successfully"}, nil
}

func (m *mockClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return m.passwdErr
}

func (m *mockClient) UpdateProfile(ctx context.Context, name, email string) (*domain.UserProfile, error) {
	return m.updatedUser, m.updateErr
}

func (m *mockClient) ListTasks(ctx context.Context) ([]*domain.Task, error) { return nil, nil }

func (m *mockClient) GetTask(ctx context.Context, id int64) (*domain.Task, error) { return nil, nil }

func (m *mockClient) CreateTask(ctx context.Context, draft api.TaskDraft) (*domain.Task, error) {
	return nil, nil
}

func (m *mockClient) PatchTask(ctx context.Context, id int64, fields map[string]interface{}) (*domain.Task, error) {
	return nil, nil
}

func (m *mockClient) DeleteTask(ctx context.Context, id int64) error { return nil }

func (m *mockClient) StatusCounts(ctx context.Context) ([]domain.StatusCount, error) {
	return nil, nil
}

// mockCreds is an in-memory credential store
type mockCreds struct {
	token     string
	tokenErr  error
	saveErr   error
	deleteErr error
}

func (m *mockCreds) Token(ctx context.Context) (string, error) { return m.token, m.tokenErr }

func (m *mockCreds) SaveToken(ctx context.Context, token string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = token
	return nil
}

func (m *mockCreds) DeleteToken(ctx context.Context) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.token = ""
	return nil
}

func (m *mockCreds) Close() error { return nil }

func TestStore_Restore(t *testing.T) {
	tests := []struct {
		name       string
		creds      *mockCreds
		client     *mockClient
		expectUser bool
		expectMe   int
	}{
		{
			name:       "should resolve with no user when no token is stored",
			creds:      &mockCreds{},
			client:     &mockClient{},
			expectUser: false,
			expectMe:   0,
		},
		{
			name:  "should restore the token owner when the check succeeds",
			creds: &mockCreds{token: "T"},
			client: &mockClient{
				meUser: &domain.UserProfile{ID: 1, Name: "Ada", Email: "ada@example.com"},
			},
			expectUser: true,
			expectMe:   1,
		},
		{
			name:  "should leave the user absent when the check fails",
			creds: &mockCreds{token: "T"},
			client: &mockClient{
				meErr: errors.NewAuthError("token expired", nil),
			},
			expectUser: false,
			expectMe:   1,
		},
		{
			name:       "should leave the user absent when the token read fails",
			creds:      &mockCreds{tokenErr: errors.NewStorageError("read token", nil)},
			client:     &mockClient{},
			expectUser: false,
			expectMe:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			store := NewStore(tt.client, tt.creds)

			// Act
			store.Restore(context.Background())

			// Assert
			state := store.State()
			assert.False(t, state.Loading)
			if tt.expectUser {
				require.NotNil(t, state.User)
				assert.Equal(t, int64(1), state.User.ID)
			} else {
				assert.Nil(t, state.User)
			}
			assert.Equal(t, tt.expectMe, tt.client.meCalls)
		})
	}

	t.Run("should keep the stored token after a failed restore", func(t *testing.T) {
		// Arrange
		creds := &mockCreds{token: "T"}
		client := &mockClient{meErr: errors.NewNetworkError("backend unreachable", nil)}
		store := NewStore(client, creds)

		// Act
		store.Restore(context.Background())

		// Assert: a dead backend must not destroy the credential
		assert.Equal(t, "T", creds.token)
		assert.Nil(t, store.State().User)
	})

	t.Run("should start loading and end resolved", func(t *testing.T) {
		// Arrange
		store := NewStore(&mockClient{}, &mockCreds{})
		assert.True(t, store.State().Loading)

		// Act
		store.Restore(context.Background())

		// Assert
		assert.False(t, store.State().Loading)
	})
}

func TestStore_Login(t *testing.T) {
	t.Run("should persist the token and set the user on success", func(t *testing.T) {
		// Arrange
		creds := &mockCreds{}
		client := &mockClient{
			loginResult: &api.LoginResult{
				Token: "T",
				User:  domain.UserProfile{ID: 1, Name: "Ada", Email: "ada@example.com"},
			},
		}
		store := NewStore(client, creds)

		// Act
		result, err := store.Login(context.Background(), "ada@example.com", "secret1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "T", result.Token)
		assert.Equal(t, "T", creds.token)
		assert.Equal(t, "T", client.token)
		require.NotNil(t, store.State().User)
		assert.Equal(t, int64(1), store.State().User.ID)
	})

	t.Run("should not touch session state when the backend rejects the credentials", func(t *testing.T) {
		// Arrange
		creds := &mockCreds{}
		client := &mockClient{loginErr: errors.NewAuthError("invalid credentials", nil)}
		store := NewStore(client, creds)

		// Act
		result, err := store.Login(context.Background(), "ada@example.com", "wrong")

		// Assert
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Empty(t, creds.token)
		assert.Nil(t, store.State().User)
	})

	t.Run("should fail when the token cannot be persisted", func(t *testing.T) {
		// Arrange
		creds := &mockCreds{saveErr: errors.NewStorageError("save token", nil)}
		client := &mockClient{
			loginResult: &api.LoginResult{Token: "T", User: domain.UserProfile{ID: 1}},
		}
		store := NewStore(client, creds)

		// Act
		_, err := store.Login(context.Background(), "ada@example.com", "secret1")

		// Assert
		assert.Error(t, err)
		assert.Nil(t, store.State().User)
	})
}

func TestStore_Signup(t *testing.T) {
	t.Run("should not authenticate the session", func(t *testing.T) {
		// Arrange
		creds := &mockCreds{}
		store := NewStore(&mockClient{}, creds)

		// Act
		result, err := store.Signup(context.Background(), "Ada", "ada@example.com", "secret1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "User created successfully", result.Message)
		assert.Empty(t, creds.token)
		assert.Nil(t, store.State().User)
	})
}

func TestStore_Logout(t *testing.T) {
	t.Run("should delete the token and clear the user", func(t *testing.T) {
		// Arrange
		creds := &mockCreds{token: "T"}
		client := &mockClient{meUser: &domain.UserProfile{ID: 1}}
		store := NewStore(client, creds)
		store.Restore(context.Background())
		require.NotNil(t, store.State().User)

		// Act
		store.Logout(context.Background())

		// Assert
		assert.Empty(t, creds.token)
		assert.Empty(t, client.token)
		assert.Nil(t, store.State().User)
	})

	t.Run("should clear the user even when the token delete fails", func(t *testing.T) {
		// Arrange
		creds := &mockCreds{token: "T", deleteErr: errors.NewStorageError("delete token", nil)}
		store := NewStore(&mockClient{}, creds)

		// Act
		store.Logout(context.Background())

		// Assert
		assert.Nil(t, store.State().User)
		assert.False(t, store.State().Loading)
	})
}

func TestStore_UpdateProfile(t *testing.T) {
	t.Run("should refresh the stored user on success", func(t *testing.T) {
		// Arrange
		client := &mockClient{
			updatedUser: &domain.UserProfile{ID: 1, Name: "Ada Lovelace", Email: "ada@example.com"},
		}
		store := NewStore(client, &mockCreds{})

		// Act
		user, err := store.UpdateProfile(context.Background(), "Ada Lovelace", "ada@example.com")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", user.Name)
		require.NotNil(t, store.State().User)
		assert.Equal(t, "Ada Lovelace", store.State().User.Name)
	})

	t.Run("should leave the session untouched on failure", func(t *testing.T) {
		// Arrange
		client := &mockClient{updateErr: errors.NewNetworkError("backend unreachable", nil)}
		store := NewStore(client, &mockCreds{})

		// Act
		_, err := store.UpdateProfile(context.Background(), "Ada", "ada@example.com")

		// Assert
		assert.Error(t, err)
		assert.Nil(t, store.State().User)
	})
}

func TestStore_Subscribe(t *testing.T) {
	t.Run("should notify watchers in registration order on every change", func(t *testing.T) {
		// Arrange
		store := NewStore(&mockClient{}, &mockCreds{})
		var order []string
		store.Subscribe(func(State) { order = append(order, "first") })
		store.Subscribe(func(State) { order = append(order, "second") })

		// Act
		store.Restore(context.Background())

		// Assert: restore with no token flips state twice (loading, resolved)
		assert.Equal(t, []string{"first", "second", "first", "second"}, order)
	})

	t.Run("should stop notifying after unsubscribe", func(t *testing.T) {
		// Arrange
		store := NewStore(&mockClient{}, &mockCreds{})
		count := 0
		sub := store.Subscribe(func(State) { count++ })

		// Act
		sub.Unsubscribe()
		store.Restore(context.Background())

		// Assert
		assert.Equal(t, 0, count)
	})

	t.Run("should pass the snapshot to the watcher", func(t *testing.T) {
		// Arrange
		client := &mockClient{meUser: &domain.UserProfile{ID: 1, Email: "ada@example.com"}}
		store := NewStore(client, &mockCreds{token: "T"})
		var last State
		store.Subscribe(func(s State) { last = s })

		// Act
		store.Restore(context.Background())

		// Assert
		require.NotNil(t, last.User)
		assert.Equal(t, "ada@example.com", last.User.Email)
		assert.False(t, last.Loading)
	})
}
