// Package storage persists level progress and scores.
// SQLite (pure-Go modernc.org/sqlite) is the default backend; a postgres://
// DSN selects PostgreSQL through lib/pq.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Dialect identifies the SQL backend.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// DefaultPath is the SQLite database used when no DSN is given.
const DefaultPath = "~/.lode/lode.db"

// Store wraps the database connection.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// DialectOf returns the backend a DSN selects.
func DialectOf(dsn string) Dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return Postgres
	}
	return SQLite
}

// Open connects to dsn and runs migrations. A DSN that is not a postgres
// URL is a SQLite file path; ~ is expanded and parent directories are created.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = DefaultPath
	}
	dialect := DialectOf(dsn)

	source := dsn
	if dialect == SQLite {
		path, err := expandHome(dsn)
		if err != nil {
			return nil, err
		}
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
		source = path
	}

	db, err := sql.Open(string(dialect), source)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if dialect == SQLite {
		// one writer; avoids SQLITE_BUSY between SSH sessions
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, dialect: dialect}
	if err := store.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Dialect returns the backend in use.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schema(s.dialect) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func schema(d Dialect) []string {
	id, blob, stamp := "INTEGER PRIMARY KEY AUTOINCREMENT", "BLOB", "DATETIME DEFAULT CURRENT_TIMESTAMP"
	if d == Postgres {
		id, blob, stamp = "BIGSERIAL PRIMARY KEY", "BYTEA", "TIMESTAMPTZ DEFAULT now()"
	}
	return []string{
		`CREATE TABLE IF NOT EXISTS scores (
			id ` + id + `,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			created_at ` + stamp + `
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC)`,
		`CREATE TABLE IF NOT EXISTS progress (
			player TEXT PRIMARY KEY,
			level INTEGER NOT NULL,
			lives INTEGER NOT NULL,
			statuses ` + blob + `,
			updated_at BIGINT NOT NULL
		)`,
	}
}

// rebind rewrites ? placeholders as $1, $2... for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// parseTime normalizes a timestamp column, which SQLite may return as text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	case []byte:
		return parseTime(string(t))
	}
	return time.Time{}
}
