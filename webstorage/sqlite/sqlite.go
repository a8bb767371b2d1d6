// Package sqlite implements a webstorage.Backend on a SQLite database using
// the pure Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/nagisham/syren/webstorage"
)

const schema = `
CREATE TABLE IF NOT EXISTS items (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// Backend stores items in the "items" table. Insertion order is the rowid
// order, which an upsert preserves.
type Backend struct {
	mu sync.Mutex
	db *sql.DB
}

var _ webstorage.Backend = (*Backend)(nil)

// Open creates or opens the database at path. ":memory:" opens a private
// in-memory database.
//
// The database is configured with:
//   - a single connection, since SQLite allows one writer at a time
//   - a 5-second busy timeout for lock contention
func Open(path string) (*Backend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: connect %s: %w", path, err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: apply pragma: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Backend{db: db}, nil
}

// Close closes the database connection.
func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// GetItem implements webstorage.Backend.
func (b *Backend) GetItem(key string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var value string
	err := b.db.QueryRowContext(context.Background(), "SELECT value FROM items WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", webstorage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("sqlite: get %q: %w", key, err)
	}
	return value, nil
}

// SetItem implements webstorage.Backend.
func (b *Backend) SetItem(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.db.ExecContext(context.Background(),
		"INSERT INTO items (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		return fmt.Errorf("sqlite: set %q: %w", key, err)
	}
	return nil
}

// RemoveItem implements webstorage.Backend.
func (b *Backend) RemoveItem(key string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	res, err := b.db.ExecContext(context.Background(), "DELETE FROM items WHERE key = ?", key)
	if err != nil {
		return false, fmt.Errorf("sqlite: remove %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: remove %q: %w", key, err)
	}
	return n > 0, nil
}

// Key implements webstorage.Backend.
func (b *Backend) Key(i int) (string, error) {
	if i < 0 {
		return "", webstorage.ErrNotFound
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var key string
	err := b.db.QueryRowContext(context.Background(), "SELECT key FROM items ORDER BY rowid LIMIT 1 OFFSET ?", i).Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", webstorage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("sqlite: key %d: %w", i, err)
	}
	return key, nil
}

// Keys implements webstorage.Backend.
func (b *Backend) Keys() ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rows, err := b.db.QueryContext(context.Background(), "SELECT key FROM items ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("sqlite: keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("sqlite: keys: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Length implements webstorage.Backend.
func (b *Backend) Length() (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var n int
	if err := b.db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM items").Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: length: %w", err)
	}
	return n, nil
}

// Clear implements webstorage.Backend.
func (b *Backend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.db.ExecContext(context.Background(), "DELETE FROM items"); err != nil {
		return fmt.Errorf("sqlite: clear: %w", err)
	}
	return nil
}
