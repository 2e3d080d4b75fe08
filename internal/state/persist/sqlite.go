package persist

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps all namespace envelopes in a single SQLite database.
// Useful when the data directory sits on storage where many small file
// rewrites are costly.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the snapshot database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, errors.New("persist: sqlite db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		namespace      TEXT PRIMARY KEY,
		data           TEXT NOT NULL,
		schema_version INTEGER NOT NULL DEFAULT 0,
		updated_at     TEXT NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load reads the envelope for a namespace.
func (s *SQLiteStore) Load(namespace string) (Envelope, error) {
	var (
		data    string
		version int
	)
	row := s.db.QueryRow(`SELECT data, schema_version FROM snapshots WHERE namespace = ?`, namespace)
	if err := row.Scan(&data, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Envelope{}, ErrNoSnapshot
		}
		return Envelope{}, fmt.Errorf("load snapshot %s: %w", namespace, err)
	}
	return Envelope{Data: []byte(data), SchemaVersion: version}, nil
}

// Save upserts the envelope for a namespace.
func (s *SQLiteStore) Save(namespace string, env Envelope) error {
	_, err := s.db.Exec(`
		INSERT INTO snapshots (namespace, data, schema_version, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(namespace) DO UPDATE SET
			data = excluded.data,
			schema_version = excluded.schema_version,
			updated_at = excluded.updated_at`,
		namespace, string(env.Data), env.SchemaVersion, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", namespace, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
