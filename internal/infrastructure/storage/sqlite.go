// Package storage persists menu records and subscriptions in sqlite.
// One row per (url, date) menu entry and one row per (url, target)
// subscription, both enforced by UNIQUE constraints so the database, not
// the application layer, is the arbiter of key identity.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/lunchradar/backend/internal/domain"
)

// DB implements domain.MenuRepository and domain.SubscriptionRepository
// over a single sqlite database file.
type DB struct {
	sql *sql.DB
}

// Open opens (creating if needed) the sqlite database at path and ensures
// the schema exists. WAL mode plus a busy timeout serializes conflicting
// writers at the key level.
func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS menu_cache (
  id         INTEGER PRIMARY KEY,
  url        TEXT NOT NULL,
  date       TEXT NOT NULL,
  menu_json  TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(url, date)
);
CREATE INDEX IF NOT EXISTS idx_menu_cache_url ON menu_cache(url);
CREATE TABLE IF NOT EXISTS subscriptions (
  id         INTEGER PRIMARY KEY,
  url        TEXT NOT NULL,
  target     TEXT NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(url, target)
);
CREATE INDEX IF NOT EXISTS idx_subscriptions_url ON subscriptions(url);
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &DB{sql: db}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// Get returns the cached record for the exact (url, date) pair.
func (d *DB) Get(ctx context.Context, url, date string) (*domain.MenuRecord, error) {
	var menuJSON string
	err := d.sql.QueryRowContext(ctx,
		"SELECT menu_json FROM menu_cache WHERE url = ? AND date = ?", url, date,
	).Scan(&menuJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var record domain.MenuRecord
	if err := json.Unmarshal([]byte(menuJSON), &record); err != nil {
		return nil, fmt.Errorf("decoding cached menu for %s/%s: %w", url, date, err)
	}
	return &record, nil
}

// Upsert inserts or wholesale-replaces the record stored under
// (record.SourceURL, record.Date). Last write wins.
func (d *DB) Upsert(ctx context.Context, record *domain.MenuRecord) error {
	if record == nil || record.SourceURL == "" || record.Date == "" {
		return domain.ErrInvalidRequest
	}

	menuJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding menu for %s: %w", record.SourceURL, err)
	}

	_, err = d.sql.ExecContext(ctx, `
INSERT INTO menu_cache (url, date, menu_json) VALUES (?, ?, ?)
ON CONFLICT(url, date) DO UPDATE SET menu_json = excluded.menu_json, updated_at = CURRENT_TIMESTAMP`,
		record.SourceURL, record.Date, string(menuJSON))
	return err
}

// ListSources returns the distinct source URLs ever cached.
func (d *DB) ListSources(ctx context.Context) ([]string, error) {
	return d.distinctURLs(ctx, "SELECT DISTINCT url FROM menu_cache ORDER BY url")
}

// Register stores a new (url, target) pair.
func (d *DB) Register(ctx context.Context, url, target string) error {
	if url == "" || target == "" {
		return domain.ErrInvalidRequest
	}
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO subscriptions (url, target) VALUES (?, ?)", url, target)
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrDuplicateSubscription, url, target)
	}
	return err
}

// Unregister removes the pair; removing an absent pair is a no-op.
func (d *DB) Unregister(ctx context.Context, url, target string) error {
	_, err := d.sql.ExecContext(ctx,
		"DELETE FROM subscriptions WHERE url = ? AND target = ?", url, target)
	return err
}

// Subscribers returns all targets registered for the source.
func (d *DB) Subscribers(ctx context.Context, url string) ([]string, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT target FROM subscriptions WHERE url = ? ORDER BY target", url)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var targets []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

// SubscribedSources returns the distinct sources with at least one subscriber.
func (d *DB) SubscribedSources(ctx context.Context) ([]string, error) {
	return d.distinctURLs(ctx, "SELECT DISTINCT url FROM subscriptions ORDER BY url")
}

func (d *DB) distinctURLs(ctx context.Context, query string) ([]string, error) {
	rows, err := d.sql.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
