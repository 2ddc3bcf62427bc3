package usersdk

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token management. The token's presence in memory is what decides
// whether requests carry an Authorization header; persistence only
// matters across process restarts.

// SetToken stores the token in memory and persists it.
func (c *Client) SetToken(ctx context.Context, token string) error {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if c.creds == nil {
		return nil
	}
	return c.creds.Set(ctx, credKeyToken, token)
}

// ClearToken removes the token and user ID from memory and erases the
// persisted copies.
func (c *Client) ClearToken(ctx context.Context) error {
	c.mu.Lock()
	c.token = ""
	c.userID = ""
	c.mu.Unlock()

	if c.creds == nil {
		return nil
	}
	if err := c.creds.Delete(ctx, credKeyToken); err != nil {
		return err
	}
	return c.creds.Delete(ctx, credKeyUserID)
}

// Token returns the in-memory token, or "" when none is held.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// UserID returns the ID of the user the held token was issued for, or
// "" when unknown.
func (c *Client) UserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

// IsAuthenticated reports whether a token is currently held. The token
// is not validated against the backend; a held token can still be
// rejected server-side.
func (c *Client) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// setCredentials stores a token/user pair in memory and persists both.
func (c *Client) setCredentials(ctx context.Context, token, userID string) error {
	c.mu.Lock()
	c.token = token
	c.userID = userID
	c.mu.Unlock()

	if c.creds == nil {
		return nil
	}
	if err := c.creds.Set(ctx, credKeyToken, token); err != nil {
		return err
	}
	return c.creds.Set(ctx, credKeyUserID, userID)
}

// tokenExpired reports whether token is a JWT whose exp claim has
// passed. The claims are read without signature verification, which is
// fine here: this is a liveness hint for the local cache, not an
// authentication decision. Opaque (non-JWT) tokens and JWTs without an
// exp claim are never considered expired.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
