// Package database opens the attribution catalog. The catalog is a single
// sqlite file that a populate run and the preview server may hold at the
// same time, so every connection waits on a lock instead of failing fast.
package database

import (
	"database/sql"
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const DefaultBusyTimeout = 5 * time.Second

//go:embed schema.sql
var schema string

type Config struct {
	Path        string
	BusyTimeout time.Duration // zero means DefaultBusyTimeout
}

// DefaultConfig reads PUZZLEASSETS_DB_PATH, falling back to
// ~/.puzzleassets/catalog.db.
func DefaultConfig() Config {
	if p := os.Getenv("PUZZLEASSETS_DB_PATH"); p != "" {
		return Config{Path: p}
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return Config{Path: filepath.Join(home, ".puzzleassets", "catalog.db")}
}

// dsn carries the pragmas as connection parameters so every pooled
// connection gets them, not only the first one.
func (c Config) dsn() string {
	timeout := c.BusyTimeout
	if timeout <= 0 {
		timeout = DefaultBusyTimeout
	}
	q := url.Values{}
	q.Set("_busy_timeout", strconv.FormatInt(timeout.Milliseconds(), 10))
	q.Set("_foreign_keys", "1")
	q.Set("_journal_mode", "WAL")
	return "file:" + c.Path + "?" + q.Encode()
}

// Open creates the parent directory, connects and applies the embedded
// schema. The schema only uses IF NOT EXISTS, so reopening is safe.
func Open(cfg Config) (*sql.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("open catalog: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
