package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteGateway keeps the document in an embedded SQLite database, as a
// single row of a key/value table under StorageKey. Same contract as
// FileGateway; the database buys durable in-place updates on filesystems
// where rename is not atomic.
type SQLiteGateway struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLiteGateway opens (and if needed initializes) the database at path.
func OpenSQLiteGateway(path string) (*SQLiteGateway, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// The document store is single-writer; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS documents (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize documents table: %w", err)
	}
	return &SQLiteGateway{db: db}, nil
}

// Close releases the underlying database handle.
func (g *SQLiteGateway) Close() error { return g.db.Close() }

// Ping verifies the database is reachable.
func (g *SQLiteGateway) Ping() error { return g.db.Ping() }

// WithClock sets the clock used for default-state fallbacks. Test hook.
func (g *SQLiteGateway) WithClock(now func() time.Time) *SQLiteGateway {
	g.now = now
	return g
}

func (g *SQLiteGateway) clock() time.Time {
	if g.now != nil {
		return g.now()
	}
	return time.Now()
}

// Load reads the document row. Any failure yields the default state.
func (g *SQLiteGateway) Load() PersistedState {
	var raw string
	err := g.db.QueryRow(`SELECT value FROM documents WHERE key = ?`, StorageKey).Scan(&raw)
	if err != nil {
		return DefaultState(g.clock())
	}
	return loadRaw([]byte(raw), g.clock())
}

// Save upserts the document row, overwriting unconditionally.
func (g *SQLiteGateway) Save(state PersistedState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	_, err = g.db.Exec(`INSERT INTO documents (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, StorageKey, string(raw))
	if err != nil {
		return fmt.Errorf("write document row: %w", err)
	}
	return nil
}
