package usersdk

import (
	"context"
	"net/http"
)

// Authentication operations.

// Register creates a new account. Registration does not establish a
// session; callers log in afterwards to obtain a token.
func (c *Client) Register(ctx context.Context, req CreateUserRequest) (*Envelope[User], error) {
	resp, err := c.do(ctx, http.MethodPost, "/users/register", nil, req)
	if err != nil {
		return nil, err
	}
	return decode[User](c, resp)
}

// Login authenticates with the given credentials. On a successful
// envelope the server-issued token and the user's ID are stored and
// persisted, so subsequent requests carry the Authorization header and
// the session survives restarts.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Envelope[LoginData], error) {
	resp, err := c.do(ctx, http.MethodPost, "/users/login", nil, req)
	if err != nil {
		return nil, err
	}

	env, err := decode[LoginData](c, resp)
	if err != nil {
		return nil, err
	}

	if env.Success && env.Data != nil && env.Data.Token != "" {
		if err := c.setCredentials(ctx, env.Data.Token, env.Data.User.ID); err != nil {
			// The session is usable in-memory even if persistence failed.
			c.logger.Warn("failed to persist credentials", "error", err)
		}
	}

	return env, nil
}

// Logout ends the session client-side by clearing the held token and
// its persisted copy. No network call is made; the backend has no
// logout endpoint and bearer tokens are simply forgotten.
func (c *Client) Logout(ctx context.Context) error {
	return c.ClearToken(ctx)
}
