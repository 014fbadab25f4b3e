package store

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	sqliteFileName = "planner.sqlite"

	// CollectionKey names the serialized workshop collection in backups.
	CollectionKey = "workshop-planner-workshops"
)

var ErrNotFound = errors.New("workshop not found")

// DocStore keeps one JSON document per workshop in SQLite.
//
// All methods are synchronous; the database is local.
type DocStore struct {
	db        *sql.DB
	path      string
	ephemeral bool

	now func() time.Time
	log *slog.Logger
}

type Option func(*DocStore)

func WithClock(now func() time.Time) Option {
	return func(s *DocStore) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *DocStore) {
		if l != nil {
			s.log = l
		}
	}
}

func newDocStore(db *sql.DB, path string, opts ...Option) *DocStore {
	s := &DocStore{
		db:   db,
		path: path,
		now:  func() time.Time { return time.Now().UTC() },
		log:  slog.New(slog.NewTextHandler(discard{}, nil)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewDocStore wraps an already opened database. The schema is assumed to exist.
func NewDocStore(db *sql.DB, opts ...Option) *DocStore {
	return newDocStore(db, "", opts...)
}

// Open opens (and migrates) the workshop database under dir.
func Open(ctx context.Context, dir string, opts ...Option) (*DocStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, sqliteFileName)
	db, err := openSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	return newDocStore(db, path, opts...), nil
}

// OpenBestEffort opens the on-disk store and falls back to an in-memory one when
// the directory or database is unusable, so callers always get a working (empty)
// collection.
func OpenBestEffort(ctx context.Context, dir string, opts ...Option) *DocStore {
	s, err := Open(ctx, dir, opts...)
	if err == nil {
		return s
	}
	mem := newDocStore(nil, "", opts...)
	mem.log.Error("storage unavailable, changes will not be kept", "dir", dir, "err", err)
	db, merr := openSQLite(ctx, ":memory:")
	if merr != nil {
		mem.log.Error("in-memory storage unavailable", "err", merr)
		return mem
	}
	mem.db = db
	mem.ephemeral = true
	return mem
}

// Ephemeral reports whether the store only lives in memory.
func (s *DocStore) Ephemeral() bool { return s.ephemeral || s.db == nil }

// Path is the database file, or "" for non-file stores.
func (s *DocStore) Path() string { return s.path }

func (s *DocStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// Each connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS workshops (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			position INTEGER NOT NULL,
			json TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_workshops_position ON workshops(position);`,
		`INSERT OR IGNORE INTO meta(k, v) VALUES('schema_version', '1');`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
