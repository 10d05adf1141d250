// Package session owns the client's belief about the currently
// authenticated identity. The Store is the single writer of the
// credential token and of the user/loading fields; every other
// component reads them through State or a subscription.
package session

import (
	"context"
	"sync"

	"taskify/internal/api"
	"taskify/internal/credstore"
	"taskify/internal/domain"
	"taskify/internal/logging"
)

// State is a snapshot of the session fields
type State struct {
	// User is the authenticated profile, or nil when no session exists.
	User *domain.UserProfile

	// Loading is true while the startup restoration call is in flight.
	Loading bool
}

// Watcher is invoked with a fresh snapshot after every state change
type Watcher func(State)

// Store is the single source of truth for "who is logged in"
type Store struct {
	client api.Client
	creds  credstore.Store

	mu       sync.Mutex
	user     *domain.UserProfile
	loading  bool
	nextID   int64
	watchers []watcherEntry
}

type watcherEntry struct {
	id int64
	fn Watcher
}

// Subscription is a handle to an active watcher registration
type Subscription struct {
	store *Store
	id    int64
}

// NewStore creates a session store in its initial state: no user, loading.
func NewStore(client api.Client, creds credstore.Store) *Store {
	return &Store{
		client:  client,
		creds:   creds,
		loading: true,
	}
}

// State returns a snapshot of the current session state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{User: s.user, Loading: s.loading}
}

// Subscribe registers a watcher notified on every state change.
// Watchers run synchronously in registration order.
func (s *Store) Subscribe(fn Watcher) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.watchers = append(s.watchers, watcherEntry{id: s.nextID, fn: fn})
	return &Subscription{store: s, id: s.nextID}
}

// Unsubscribe removes the watcher. Safe to call more than once.
func (sub *Subscription) Unsubscribe() {
	s := sub.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.watchers {
		if w.id == sub.id {
			s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
			return
		}
	}
}

// setState mutates the session fields and notifies watchers with the
// resulting snapshot. Watchers are invoked outside the lock.
func (s *Store) setState(user *domain.UserProfile, loading bool) {
	s.mu.Lock()
	s.user = user
	s.loading = loading
	snapshot := State{User: s.user, Loading: s.loading}
	current := make([]watcherEntry, len(s.watchers))
	copy(current, s.watchers)
	s.mu.Unlock()

	for _, w := range current {
		w.fn(snapshot)
	}
}

// Restore attempts to re-establish the session from the stored token.
// With no stored token it resolves immediately with no user. With a token
// it asks the backend who the token belongs to; on any failure the user
// stays absent and the stored token is NOT deleted, leaving it for a
// later logout or retry. Restore always ends with loading = false.
func (s *Store) Restore(ctx context.Context) {
	s.setState(nil, true)

	token, err := s.creds.Token(ctx)
	if err != nil {
		logging.Errorf("session: reading stored token failed: %v\n", err)
		s.setState(nil, false)
		return
	}
	if token == "" {
		s.setState(nil, false)
		return
	}

	s.client.SetToken(token)
	user, err := s.client.Me(ctx)
	if err != nil {
		logging.Debugf("session: restore check failed: %v\n", err)
		s.setState(nil, false)
		return
	}

	logging.Debugf("session: restored user %d (%s)\n", user.ID, user.Email)
	s.setState(user, false)
}

// Login exchanges credentials for a session. On success the returned token
// is persisted and the user is set from the response; the full result,
// including the raw token, is returned to the caller. Backend errors are
// propagated untouched.
func (s *Store) Login(ctx context.Context, email, password string) (*api.LoginResult, error) {
	result, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if result.Token != "" {
		if err := s.creds.SaveToken(ctx, result.Token); err != nil {
			return nil, err
		}
		s.client.SetToken(result.Token)
		user := result.User
		s.setState(&user, false)
	}

	return result, nil
}

// Signup registers a new account. It intentionally does not authenticate
// the session: no token is stored and no user is set.
func (s *Store) Signup(ctx context.Context, name, email, password string) (*api.SignupResult, error) {
	return s.client.Signup(ctx, name, email, password)
}

// Logout deletes the stored token and clears the user. No server round-trip.
func (s *Store) Logout(ctx context.Context) {
	if err := s.creds.DeleteToken(ctx); err != nil {
		logging.Errorf("session: deleting stored token failed: %v\n", err)
	}
	s.client.SetToken("")
	s.setState(nil, false)
}

// ChangePassword replaces the current user's password. Session state is
// unaffected; the existing token stays valid.
func (s *Store) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return s.client.ChangePassword(ctx, oldPassword, newPassword)
}

// UpdateProfile updates name and email and refreshes the stored user on
// success.
func (s *Store) UpdateProfile(ctx context.Context, name, email string) (*domain.UserProfile, error) {
	user, err := s.client.UpdateProfile(ctx, name, email)
	if err != nil {
		return nil, err
	}
	s.setState(user, false)
	return user, nil
}
