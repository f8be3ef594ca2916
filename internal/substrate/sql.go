package substrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver
)

// SQL stores values in a key/value table through database/sql.
// It backs both the sqlite and postgres drivers; only the placeholders differ.
type SQL struct {
	db     *sql.DB
	driver Driver
	get    string
	set    string
	del    string
}

var _ Substrate = (*SQL)(nil)

// NewSQLite opens (creating if needed) a SQLite database file.
func NewSQLite(path string) (*SQL, error) {
	if path == "" {
		path = "storefront.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection serializes writers, which sqlite needs anyway
	sqlDB.SetMaxOpenConns(1)
	return newSQL(sqlDB, DriverSQLite,
		`SELECT value FROM kv WHERE key = ?`,
		`INSERT INTO kv(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		`DELETE FROM kv WHERE key = ?`,
		`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value BLOB NOT NULL)`,
	)
}

// NewPostgres connects to Postgres through pgx.
func NewPostgres(ctx context.Context, dsn string) (*SQL, error) {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return newSQL(sqlDB, DriverPostgres,
		`SELECT value FROM kv WHERE key = $1`,
		`INSERT INTO kv(key, value) VALUES($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		`DELETE FROM kv WHERE key = $1`,
		`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value BYTEA NOT NULL)`,
	)
}

func newSQL(sqlDB *sql.DB, driver Driver, get, set, del, ddl string) (*SQL, error) {
	if _, err := sqlDB.Exec(ddl); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &SQL{db: sqlDB, driver: driver, get: get, set: set, del: del}, nil
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return value, nil
}

func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.set, key, value); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.del, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Driver() Driver { return s.driver }

func (s *SQL) Close() error { return s.db.Close() }
