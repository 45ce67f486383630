// Package sqlstore is the relational source of truth: crawled webpages
// plus chat sessions and their append-only message logs, on SQLite.
package sqlstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" //SQLite driver

	"github.com/akolanti/GovStackAPI/pkg/logger_i"
)

const schema = `
CREATE TABLE IF NOT EXISTS webpages (
	id            TEXT PRIMARY KEY,
	collection_id TEXT NOT NULL,
	url           TEXT NOT NULL,
	title         TEXT NOT NULL DEFAULT '',
	content_markdown TEXT NOT NULL DEFAULT '',
	first_crawled TEXT NOT NULL,
	last_crawled  TEXT NOT NULL,
	is_indexed    INTEGER NOT NULL DEFAULT 0,
	indexed_at    TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_webpages_collection_url ON webpages(collection_id, url);
CREATE INDEX IF NOT EXISTS idx_webpages_unindexed ON webpages(collection_id, is_indexed);

CREATE TABLE IF NOT EXISTS chat_sessions (
	session_id TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL DEFAULT '',
	seeded     INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS chat_messages (
	session_id   TEXT NOT NULL REFERENCES chat_sessions(session_id) ON DELETE CASCADE,
	message_idx  INTEGER NOT NULL,
	message_id   TEXT NOT NULL DEFAULT '',
	message_type TEXT NOT NULL,
	content      TEXT NOT NULL,
	timestamp    TEXT NOT NULL,
	metadata     TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (session_id, message_idx)
);
`

type Store struct {
	db     *sql.DB
	logger *logger_i.Logger
}

// Open creates (or opens) the database under dataDir and applies the
// schema. An empty dataDir opens an in-memory database, used by tests.
func Open(dataDir string) (*Store, error) {
	dsn := ":memory:"
	if dataDir != "" {
		if err := os.MkdirAll(dataDir, 0750); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "govstack.db") + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if dataDir == "" {
		// each pooled connection would otherwise get its own empty
		// in-memory database
		db.SetMaxOpenConns(1)
	}

	//cascade deletes depend on this
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger_i.NewLogger("SQLStore"),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) RecordStore() *RecordStore {
	return &RecordStore{store: s, logger: logger_i.NewLogger("RecordStore")}
}

func (s *Store) SessionStore() *SessionStore {
	return &SessionStore{store: s, logger: logger_i.NewLogger("SessionStore")}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
