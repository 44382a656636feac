// Package store caches fetched datasheet text in SQLite so repeated
// enrichment runs skip the network.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

// Store is a URL-keyed cache of extracted PDF text.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at path and applies the
// recommended pragmas for WAL mode and foreign keys.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	// SQLite performs best with a single write connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS pdf_text (
			url        TEXT PRIMARY KEY,
			text       TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create pdf_text table: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the cached text for url and whether an entry exists.
func (s *Store) Get(ctx context.Context, url string) (string, bool, error) {
	var text string
	err := s.db.QueryRowContext(ctx,
		`SELECT text FROM pdf_text WHERE url = ?`, url).Scan(&text)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get cached text for %q: %w", url, err)
	}
	return text, true, nil
}

// Put stores (or replaces) the extracted text for url.
func (s *Store) Put(ctx context.Context, url, text string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pdf_text (url, text, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET text = excluded.text, fetched_at = excluded.fetched_at`,
		url, text, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("cache text for %q: %w", url, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
