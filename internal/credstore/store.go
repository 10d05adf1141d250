// Package credstore provides durable client-side storage for the
// credential token, backed by SQLite. The session store is the only
// permitted writer; everything else reads through it.
package credstore

import (
	"context"
	"database/sql"

	"taskify/internal/errors"

	_ "modernc.org/sqlite"
)

// TokenKey is the fixed storage key under which the credential token lives
const TokenKey = "token"

// Store defines the interface for credential storage operations
type Store interface {
	// Token returns the stored credential token, or "" when none is stored.
	Token(ctx context.Context) (string, error)

	// SaveToken persists the credential token under the fixed key.
	SaveToken(ctx context.Context, token string) error

	// DeleteToken removes the stored token. Deleting an absent token is not an error.
	DeleteToken(ctx context.Context) error

	// Close releases the underlying database.
	Close() error
}

// SQLiteStore implements the Store interface
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLite credential store at the given path.
// Use ":memory:" for tests.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open storage", err)
	}

	// One connection keeps writes serialized and makes ":memory:" share
	// a single database across queries.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// initSchema creates the settings table if it does not exist
func initSchema(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS settings (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`

	if _, err := db.Exec(query); err != nil {
		return errors.NewStorageError("create schema", err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Token returns the stored credential token, or "" when none is stored
func (s *SQLiteStore) Token(ctx context.Context) (string, error) {
	query := `SELECT value FROM settings WHERE name = ?`

	var value string
	err := s.db.QueryRowContext(ctx, query, TokenKey).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.NewStorageError("read token", err)
	}
	return value, nil
}

// SaveToken persists the credential token under the fixed key
func (s *SQLiteStore) SaveToken(ctx context.Context, token string) error {
	query := `
	INSERT INTO settings (name, value) VALUES (?, ?)
	ON CONFLICT(name) DO UPDATE SET value = excluded.value`

	if _, err := s.db.ExecContext(ctx, query, TokenKey, token); err != nil {
		return errors.NewStorageError("save token", err)
	}
	return nil
}

// DeleteToken removes the stored token
func (s *SQLiteStore) DeleteToken(ctx context.Context) error {
	query := `DELETE FROM settings WHERE name = ?`

	if _, err := s.db.ExecContext(ctx, query, TokenKey); err != nil {
		return errors.NewStorageError("delete token", err)
	}
	return nil
}
