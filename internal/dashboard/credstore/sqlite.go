package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tabwave/userdash/pkg/usersdk"
)

// SQLite is a CredentialStore backed by a local SQLite database, so a
// session survives process restarts. A single credentials table maps
// well-known keys to opaque string values.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) the credential database at
// path and applies any pending schema migrations. The parent directory
// is created with owner-only permissions since the file holds a live
// bearer token.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create credentials directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open credentials database: %w", err)
	}

	// Serialize writers instead of failing fast on a locked file.
	if _, err := db.ExecContext(context.Background(), `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLite{db: db}
	if err := s.applyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate credentials database: %w", err)
	}

	return s, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

// Get returns the value stored under key, or
// usersdk.ErrCredentialNotFound when absent.
func (s *SQLite) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM credentials WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", usersdk.ErrCredentialNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores value under key, overwriting any previous value.
func (s *SQLite) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Delete removes the value stored under key. Deleting an absent key is
// not an error.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, key)
	return err
}

var _ usersdk.CredentialStore = (*SQLite)(nil)
var _ usersdk.CredentialStore = (*Memory)(nil)
