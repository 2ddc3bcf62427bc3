// Package session owns the dashboard's client-side session: the single
// current user, the loading flag, and the boolean success contract the
// presentation layer consumes. It never re-raises gateway errors; every
// failure is logged and reported as a false return.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tabwave/userdash/pkg/usersdk"
)

// Gateway is the slice of the API client the session store depends on.
// *usersdk.Client satisfies it; tests substitute a fake.
type Gateway interface {
	Login(ctx context.Context, req usersdk.LoginRequest) (*usersdk.Envelope[usersdk.LoginData], error)
	Register(ctx context.Context, req usersdk.CreateUserRequest) (*usersdk.Envelope[usersdk.User], error)
	GetUser(ctx context.Context, id string) (*usersdk.Envelope[usersdk.User], error)
	Logout(ctx context.Context) error
	IsAuthenticated() bool
	UserID() string
}

// Store holds the authenticated user for the lifetime of a session.
// Exactly one user may be held at a time; IsAuthenticated is defined
// solely by that user's presence.
//
// Overlapping calls to Login/Register are not serialized: whichever
// completes last determines the final state. That is acceptable for a
// single-operator client and matches the behavior consumers see today.
type Store struct {
	gw     Gateway
	logger *slog.Logger

	mu      sync.RWMutex
	user    *usersdk.User
	loading bool
}

// New creates a session store over the given gateway. The store starts
// in the loading state until Start completes.
func New(gw Gateway, logger *slog.Logger) *Store {
	return &Store{
		gw:      gw,
		logger:  logger,
		loading: true,
	}
}

// Start resumes a persisted session, if any. When the gateway holds
// credentials it fetches the persisted user and adopts it, so a held
// token always comes with a held user. Any failure clears the
// credentials and leaves the store unauthenticated. The loading flag is
// cleared in all paths.
func (s *Store) Start(ctx context.Context) {
	defer s.setLoading(false)

	if !s.gw.IsAuthenticated() {
		return
	}

	id := s.gw.UserID()
	if id == "" {
		// A token without a subject cannot be resumed.
		s.logger.Warn("persisted token has no user id, discarding session")
		s.clearCredentials(ctx)
		return
	}

	env, err := s.gw.GetUser(ctx, id)
	if err != nil {
		s.logger.Error("session resume failed", "user_id", id, "error", err)
		s.clearCredentials(ctx)
		return
	}
	if !env.Success || env.Data == nil {
		s.logger.Warn("session resume rejected", "user_id", id, "message", env.Message)
		s.clearCredentials(ctx)
		return
	}

	s.setUser(env.Data)
	s.logger.Info("session resumed", "user_id", id)
}

// Login authenticates with the given credentials and, on success,
// adopts the returned user. Failures of any kind (transport, HTTP
// status, unsuccessful envelope) leave the held user unchanged and
// report false.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.gw.Login(ctx, usersdk.LoginRequest{Email: email, Password: password})
	if err != nil {
		s.logger.Error("login failed", "email", email, "error", err)
		return false
	}
	if !env.Success || env.Data == nil {
		s.logger.Warn("login rejected", "email", email, "message", env.Message)
		return false
	}

	user := env.Data.User
	s.setUser(&user)
	return true
}

// Register creates an account and, on success, adopts the returned
// user as the current session. Same boolean contract as Login.
func (s *Store) Register(ctx context.Context, req usersdk.CreateUserRequest) bool {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.gw.Register(ctx, req)
	if err != nil {
		s.logger.Error("registration failed", "email", req.Email, "error", err)
		return false
	}
	if !env.Success || env.Data == nil {
		s.logger.Warn("registration rejected", "email", req.Email, "message", env.Message)
		return false
	}

	s.setUser(env.Data)
	return true
}

// Logout clears the held user and the gateway's credentials. The
// gateway call is local-only, so there is no network failure path; a
// persistence error is logged and the in-memory session still ends.
func (s *Store) Logout(ctx context.Context) {
	if err := s.gw.Logout(ctx); err != nil {
		s.logger.Warn("failed to clear persisted credentials", "error", err)
	}
	s.setUser(nil)
}

// UpdateUser merges the given fields into the held user. Purely local:
// the backend is not called. A no-op when no user is held.
func (s *Store) UpdateUser(fields usersdk.UpdateUserRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return
	}

	updated := *s.user
	if fields.FirstName != nil {
		updated.FirstName = *fields.FirstName
	}
	if fields.LastName != nil {
		updated.LastName = *fields.LastName
	}
	if fields.IsActive != nil {
		updated.IsActive = *fields.IsActive
	}
	s.user = &updated
}

// User returns the currently held user, or nil. The returned value is
// a copy; mutating it does not affect the session.
func (s *Store) User() *usersdk.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// IsAuthenticated reports whether a user is currently held. This is
// the sole definition of session validity exposed to consumers.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// IsLoading reports whether an operation (or the startup check) is in
// flight.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) setUser(user *usersdk.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

func (s *Store) clearCredentials(ctx context.Context) {
	if err := s.gw.Logout(ctx); err != nil {
		s.logger.Warn("failed to clear persisted credentials", "error", err)
	}
}
