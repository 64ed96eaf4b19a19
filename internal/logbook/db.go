// Package logbook persists user-curated record stores in SQLite. Each
// logbook is one table whose schema is declared at import time; the engine
// appends and queries rows, never alters schemas mid-session.
package logbook

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens the logbook database at path, creating parent directories as
// needed. ":memory:" opens an in-memory database for tests.
// Sets WAL mode and creates the registry table.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS logbook_registry (
		name       TEXT PRIMARY KEY,
		columns    TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating registry: %w", err)
	}

	return db, nil
}
