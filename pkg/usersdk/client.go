package usersdk

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// CredentialStore is the persistence capability the client uses to keep
// the bearer token (and the ID of the user it belongs to) across
// process restarts. Implementations must return ErrCredentialNotFound
// from Get when no value exists for the key, and Delete must be a no-op
// for absent keys.
type CredentialStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Well-known credential store keys.
const (
	credKeyToken  = "auth_token"
	credKeyUserID = "auth_user_id"
)

// Client is a client for the user-management service. It translates
// typed operation calls into JSON HTTP requests against the configured
// base URL, attaching the bearer token when one is held. At most one
// token is held at a time; setting a new one overwrites and persists
// it, clearing removes it from memory and from the credential store.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	creds   CredentialStore
	limiter *rate.Limiter
	logger  *slog.Logger

	mu     sync.RWMutex
	token  string
	userID string
}

// Option customises a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (10 second timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithCredentials injects the store used to persist the bearer token.
// Without one the client keeps the token in memory only.
func WithCredentials(store CredentialStore) Option {
	return func(c *Client) { c.creds = store }
}

// WithRateLimit overrides the client-side request throttle. A zero or
// negative perSecond disables throttling entirely.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithLogger replaces the logger used for request failure diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for the user-management service at baseURL.
// The base URL is resolved once by the caller and never re-resolved.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(20), 40),
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// LoadCredentials loads a previously persisted token (and user ID) into
// memory. A stored token that is a JWT whose expiry has passed is
// treated as absent and erased from the store; opaque tokens always
// load. Missing credentials are not an error.
func (c *Client) LoadCredentials(ctx context.Context) error {
	if c.creds == nil {
		return nil
	}

	token, err := c.creds.Get(ctx, credKeyToken)
	if err != nil {
		if errors.Is(err, ErrCredentialNotFound) {
			return nil
		}
		return err
	}

	if tokenExpired(token) {
		c.logger.Info("discarding expired persisted token")
		return c.ClearToken(ctx)
	}

	// Missing user ID is tolerated: older persisted sessions stored only
	// the token.
	userID, err := c.creds.Get(ctx, credKeyUserID)
	if err != nil && !errors.Is(err, ErrCredentialNotFound) {
		return err
	}

	c.mu.Lock()
	c.token = token
	c.userID = userID
	c.mu.Unlock()

	return nil
}
