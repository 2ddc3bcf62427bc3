package session_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tabwave/userdash/internal/dashboard/session"
	"github.com/tabwave/userdash/pkg/usersdk"
)

// fakeGateway implements session.Gateway for unit tests.
type fakeGateway struct {
	LoginEnv    *usersdk.Envelope[usersdk.LoginData]
	LoginErr    error
	RegisterEnv *usersdk.Envelope[usersdk.User]
	RegisterErr error
	GetUserEnv  *usersdk.Envelope[usersdk.User]
	GetUserErr  error
	LogoutErr   error

	Authenticated bool
	StoredUserID  string

	// recorded calls
	LogoutCalls  int
	GetUserCalls []string
	LastLoginReq usersdk.LoginRequest
}

func (f *fakeGateway) Login(_ context.Context, req usersdk.LoginRequest) (*usersdk.Envelope[usersdk.LoginData], error) {
	f.LastLoginReq = req
	return f.LoginEnv, f.LoginErr
}

func (f *fakeGateway) Register(_ context.Context, _ usersdk.CreateUserRequest) (*usersdk.Envelope[usersdk.User], error) {
	return f.RegisterEnv, f.RegisterErr
}

func (f *fakeGateway) GetUser(_ context.Context, id string) (*usersdk.Envelope[usersdk.User], error) {
	f.GetUserCalls = append(f.GetUserCalls, id)
	return f.GetUserEnv, f.GetUserErr
}

func (f *fakeGateway) Logout(_ context.Context) error {
	f.LogoutCalls++
	f.Authenticated = false
	return f.LogoutErr
}

func (f *fakeGateway) IsAuthenticated() bool { return f.Authenticated }
func (f *fakeGateway) UserID() string        { return f.StoredUserID }

func testUser() usersdk.User {
	return usersdk.User{
		ID:        "1",
		Email:     "a@b.com",
		Username:  "a",
		FirstName: "Alice",
		IsActive:  true,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newStore(gw session.Gateway) *session.Store {
	return session.New(gw, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func successLogin(user usersdk.User) *usersdk.Envelope[usersdk.LoginData] {
	return &usersdk.Envelope[usersdk.LoginData]{
		Success: true,
		Data:    &usersdk.LoginData{User: user, Token: "tok"},
	}
}

// ---- startup ----

func TestStartWithoutCredentials(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{}
	store := newStore(gw)
	require.True(t, store.IsLoading(), "store loads until Start completes")

	store.Start(context.Background())

	require.False(t, store.IsLoading())
	require.False(t, store.IsAuthenticated())
	require.Empty(t, gw.GetUserCalls)
}

func TestStartResumesPersistedSession(t *testing.T) {
	t.Parallel()

	user := testUser()
	gw := &fakeGateway{
		Authenticated: true,
		StoredUserID:  "1",
		GetUserEnv:    &usersdk.Envelope[usersdk.User]{Success: true, Data: &user},
	}
	store := newStore(gw)

	store.Start(context.Background())

	require.False(t, store.IsLoading())
	require.True(t, store.IsAuthenticated())
	require.Equal(t, "1", store.User().ID)
	require.Equal(t, []string{"1"}, gw.GetUserCalls)
	require.Zero(t, gw.LogoutCalls)
}

func TestStartClearsCredentialsOnFetchFailure(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{
		Authenticated: true,
		StoredUserID:  "1",
		GetUserErr:    errors.New("backend unreachable"),
	}
	store := newStore(gw)

	store.Start(context.Background())

	require.False(t, store.IsLoading())
	require.False(t, store.IsAuthenticated())
	require.Equal(t, 1, gw.LogoutCalls)
}

func TestStartClearsCredentialsWithoutUserID(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{Authenticated: true}
	store := newStore(gw)

	store.Start(context.Background())

	require.False(t, store.IsAuthenticated())
	require.Equal(t, 1, gw.LogoutCalls)
	require.Empty(t, gw.GetUserCalls)
}

// ---- login ----

func TestLoginSuccessAdoptsUser(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{LoginEnv: successLogin(testUser())}
	store := newStore(gw)

	ok := store.Login(context.Background(), "a@b.com", "pw")

	require.True(t, ok)
	require.True(t, store.IsAuthenticated())
	require.Equal(t, "1", store.User().ID)
	require.Equal(t, "a@b.com", gw.LastLoginReq.Email)
	require.False(t, store.IsLoading(), "loading cleared on the success path")
}

func TestLoginFailureLeavesUserUnchanged(t *testing.T) {
	t.Parallel()

	t.Run("unsuccessful envelope", func(t *testing.T) {
		gw := &fakeGateway{LoginEnv: &usersdk.Envelope[usersdk.LoginData]{Success: false, Message: "nope"}}
		store := newStore(gw)

		require.False(t, store.Login(context.Background(), "a@b.com", "pw"))
		require.False(t, store.IsAuthenticated())
		require.Nil(t, store.User())
		require.False(t, store.IsLoading())
	})

	t.Run("gateway error", func(t *testing.T) {
		gw := &fakeGateway{LoginErr: errors.New("connection refused")}
		store := newStore(gw)

		require.False(t, store.Login(context.Background(), "a@b.com", "pw"))
		require.False(t, store.IsAuthenticated())
		require.False(t, store.IsLoading(), "loading cleared on the failure path")
	})

	t.Run("previous user survives a failed re-login", func(t *testing.T) {
		gw := &fakeGateway{LoginEnv: successLogin(testUser())}
		store := newStore(gw)
		require.True(t, store.Login(context.Background(), "a@b.com", "pw"))

		gw.LoginEnv = nil
		gw.LoginErr = errors.New("boom")
		require.False(t, store.Login(context.Background(), "a@b.com", "pw"))
		require.True(t, store.IsAuthenticated())
		require.Equal(t, "1", store.User().ID)
	})
}

// ---- register ----

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("success adopts user", func(t *testing.T) {
		user := testUser()
		gw := &fakeGateway{RegisterEnv: &usersdk.Envelope[usersdk.User]{Success: true, Data: &user}}
		store := newStore(gw)

		require.True(t, store.Register(context.Background(), usersdk.CreateUserRequest{Email: "a@b.com"}))
		require.True(t, store.IsAuthenticated())
		require.Equal(t, "a@b.com", store.User().Email)
	})

	t.Run("failure reports false", func(t *testing.T) {
		gw := &fakeGateway{RegisterErr: errors.New("boom")}
		store := newStore(gw)

		require.False(t, store.Register(context.Background(), usersdk.CreateUserRequest{Email: "a@b.com"}))
		require.False(t, store.IsAuthenticated())
	})
}

// ---- logout ----

func TestLogout(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{LoginEnv: successLogin(testUser())}
	store := newStore(gw)
	require.True(t, store.Login(context.Background(), "a@b.com", "pw"))

	store.Logout(context.Background())

	require.False(t, store.IsAuthenticated())
	require.Nil(t, store.User())
	require.Equal(t, 1, gw.LogoutCalls)
}

func TestLogoutEndsSessionDespitePersistenceError(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{LoginEnv: successLogin(testUser()), LogoutErr: errors.New("disk broke")}
	store := newStore(gw)
	require.True(t, store.Login(context.Background(), "a@b.com", "pw"))

	store.Logout(context.Background())

	require.False(t, store.IsAuthenticated())
}

// ---- local update ----

func TestUpdateUserMergesFields(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{LoginEnv: successLogin(testUser())}
	store := newStore(gw)
	require.True(t, store.Login(context.Background(), "a@b.com", "pw"))

	active := false
	store.UpdateUser(usersdk.UpdateUserRequest{IsActive: &active})

	got := store.User()
	require.False(t, got.IsActive)

	// Everything else is untouched.
	require.Equal(t, "1", got.ID)
	require.Equal(t, "a@b.com", got.Email)
	require.Equal(t, "Alice", got.FirstName)
}

func TestUpdateUserNoopWithoutUser(t *testing.T) {
	t.Parallel()

	store := newStore(&fakeGateway{})

	name := "Bob"
	store.UpdateUser(usersdk.UpdateUserRequest{FirstName: &name})

	require.Nil(t, store.User())
	require.False(t, store.IsAuthenticated())
}

func TestUserReturnsCopy(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{LoginEnv: successLogin(testUser())}
	store := newStore(gw)
	require.True(t, store.Login(context.Background(), "a@b.com", "pw"))

	got := store.User()
	got.Email = "tampered@b.com"

	require.Equal(t, "a@b.com", store.User().Email)
}
