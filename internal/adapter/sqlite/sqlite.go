// Package sqlite implements the entry storage as a single named record in a
// local SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"momentum/internal/domain"
)

// DB wraps a *sql.DB and implements domain.EntryStorage.
type DB struct {
	sql  *sql.DB
	path string
	key  string
}

// Ensure interfaces are met.
var _ domain.EntryStorage = (*DB)(nil)

// record is the persisted value: the collection wrapped in the envelope the
// browser version of the app wrote to localStorage.
type record struct {
	State   recordState `json:"state"`
	Version int         `json:"version"`
}

type recordState struct {
	Entries []domain.Entry `json:"entries"`
}

// Open opens or creates the database at path and prepares the storage table.
func Open(path string) (*DB, error) {
	if path == "" {
		path = "momentum.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	s, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection serialises writers and keeps :memory: databases shared.
	s.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s, path: path, key: domain.StorageKey}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Path returns the database file path.
func (d *DB) Path() string { return d.path }

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"CREATE TABLE IF NOT EXISTS storage (key TEXT PRIMARY KEY, value BLOB NOT NULL, updated_at TIMESTAMP NOT NULL);",
	}
	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Record returns the raw persisted value, or nil when nothing was saved.
func (d *DB) Record(ctx context.Context) ([]byte, error) {
	var b []byte
	err := d.sql.QueryRowContext(ctx, "SELECT value FROM storage WHERE key = ?;", d.key).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", d.key, err)
	}
	return b, nil
}

// Load decodes the persisted collection. A missing record is an empty
// collection.
func (d *DB) Load(ctx context.Context) ([]domain.Entry, error) {
	b, err := d.Record(ctx)
	if err != nil || b == nil {
		return nil, err
	}
	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", d.key, err)
	}
	return rec.State.Entries, nil
}

// Save replaces the persisted collection in a single transaction.
func (d *DB) Save(ctx context.Context, entries []domain.Entry) (retErr error) {
	if entries == nil {
		entries = []domain.Entry{}
	}
	data, err := json.Marshal(record{State: recordState{Entries: entries}})
	if err != nil {
		return fmt.Errorf("encode %s: %w", d.key, err)
	}

	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO storage(key, value, updated_at) VALUES(?, ?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at;",
		d.key, data, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("upsert %s: %w", d.key, err)
	}
	return tx.Commit()
}
