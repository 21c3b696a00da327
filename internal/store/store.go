// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists the article catalog in SQLite: articles,
// journals, contributors, file attachments, and the append-only usage
// log. It exposes the filtered search query, the enriched one-article
// projection, ordered batch fetches, and event inserts consumed by the
// search and recommendation engines.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/article-catalog/pkg/types"
)

// ErrNotFound reports that an article identifier is absent from the catalog.
var ErrNotFound = errors.New("article not found")

// Store manages the catalog SQLite database. The underlying pool hands
// each in-flight operation its own connection; checked-out connections
// are liveness-verified lazily by database/sql.
type Store struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// New opens or creates the catalog database at cfg.Path and creates the
// schema if it does not exist.
func New(cfg types.StoreConfig) (*Store, error) {
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxConns := cfg.MaxOpenConns
	if maxConns <= 0 {
		maxConns = 8
	}
	db.SetMaxOpenConns(maxConns)

	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	s := &Store{db: db, queryTimeout: timeout}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	return s.db.PingContext(ctx)
}

// opContext bounds a store operation with the configured query timeout.
// A timeout surfaces as the same failure class as a connection error.
func (s *Store) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.queryTimeout)
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS journals (
			journal_id TEXT PRIMARY KEY,
			journal TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS articles (
			article_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT NOT NULL DEFAULT '',
			keyword TEXT NOT NULL DEFAULT '',
			publication_date TEXT NOT NULL DEFAULT '',
			date_added TEXT NOT NULL DEFAULT '',
			status INTEGER NOT NULL DEFAULT 0,
			journal_id TEXT REFERENCES journals(journal_id)
		)`,
		`CREATE TABLE IF NOT EXISTS article_files (
			article_id TEXT PRIMARY KEY REFERENCES articles(article_id),
			file_name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS contributors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			article_id TEXT NOT NULL REFERENCES articles(article_id),
			firstname TEXT NOT NULL,
			lastname TEXT NOT NULL,
			orcid TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_contributors_article_id ON contributors(article_id)`,
		`CREATE TABLE IF NOT EXISTS logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			article_id TEXT NOT NULL REFERENCES articles(article_id),
			actor_id TEXT NOT NULL DEFAULT '',
			kind TEXT NOT NULL DEFAULT 'read',
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_logs_article_id ON logs(article_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}
