// Package app wires the dashboard's dependencies together: config,
// logging, credential storage, the API client, and the session store.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tabwave/userdash/internal/dashboard/credstore"
	"github.com/tabwave/userdash/internal/dashboard/session"
	"github.com/tabwave/userdash/pkg/slogx"
	"github.com/tabwave/userdash/pkg/usersdk"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the dashboard with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	creds   *credstore.SQLite // nil when persistence is disabled
	Client  *usersdk.Client
	Session *session.Store
}

// New creates an Application with all dependencies initialized and the
// persisted session (if any) loaded into the client. The session store
// itself is not started; callers run Session.Start when they are ready
// to hit the network.
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "userdash",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	var store usersdk.CredentialStore
	if cfg.CredentialsFile != "" {
		sqliteStore, err := credstore.OpenSQLite(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open credential store: %w", err)
		}
		app.creds = sqliteStore
		store = sqliteStore
	} else {
		store = credstore.NewMemory()
	}

	app.Client = usersdk.New(cfg.APIBaseURL,
		usersdk.WithCredentials(store),
		usersdk.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		usersdk.WithRateLimit(cfg.RequestsPerSec, cfg.Burst),
		usersdk.WithLogger(app.logger),
	)

	if err := app.Client.LoadCredentials(ctx); err != nil {
		// A broken credential row should not keep the dashboard from
		// starting; the user just has to log in again.
		app.logger.Warn("failed to load persisted credentials", "error", err)
	}

	app.Session = session.New(app.Client, app.logger)

	return app, nil
}

// Logger exposes the application logger.
func (app *Application) Logger() *slog.Logger { return app.logger }

// Close releases the credential store.
func (app *Application) Close() error {
	if app.creds == nil {
		return nil
	}
	return app.creds.Close()
}
