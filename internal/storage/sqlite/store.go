// Package sqlite persists scout view counts and profile claim requests in a
// local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/glebarez/go-sqlite"
)

const driverName = "sqlite"

// Fixed-width timestamps so text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS athlete_views (
	athlete_id TEXT PRIMARY KEY,
	count      INTEGER NOT NULL DEFAULT 0,
	last_viewed_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS view_sessions (
	athlete_id TEXT NOT NULL,
	session_id TEXT NOT NULL,
	viewed_at  TEXT NOT NULL,
	PRIMARY KEY (athlete_id, session_id)
);

CREATE TABLE IF NOT EXISTS claims (
	id           TEXT PRIMARY KEY,
	athlete_id   TEXT NOT NULL,
	athlete_name TEXT NOT NULL DEFAULT '',
	full_name    TEXT NOT NULL,
	email        TEXT NOT NULL,
	social_media TEXT NOT NULL DEFAULT '',
	explanation  TEXT NOT NULL,
	submitted_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS claims_submitted_at ON claims (submitted_at);
`

// Store wraps a SQLite handle.
type Store struct {
	db *sql.DB
}

// Open creates the parent directory when needed, opens the database at path
// and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create dir: %w", err)
		}
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
