package storage

import (
	"context"
	"database/sql"
	"strings"
	"time"

	// Database drivers: Postgres for deployments, SQLite for local use and tests.
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	pingTimeout     = 5 * time.Second
	connMaxIdleTime = 2 * time.Minute
	connMaxLifetime = 30 * time.Minute
	maxIdleConns    = 5
	maxOpenConns    = 25
)

// DB wraps a sql.DB connection to either Postgres or SQLite.
type DB struct {
	conn     *sql.DB
	postgres bool
}

// Open connects to the store named by databaseURL and runs migrations.
// A postgres:// (or postgresql://) URL selects the Postgres driver; any other
// value is treated as a SQLite database path (":memory:" included).
func Open(databaseURL string) (*DB, error) {
	postgres := strings.HasPrefix(databaseURL, "postgres://") ||
		strings.HasPrefix(databaseURL, "postgresql://")

	driver := "sqlite"
	if postgres {
		driver = "postgres"
	}

	conn, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, err
	}

	if postgres {
		conn.SetConnMaxIdleTime(connMaxIdleTime)
		conn.SetConnMaxLifetime(connMaxLifetime)
		conn.SetMaxIdleConns(maxIdleConns)
		conn.SetMaxOpenConns(maxOpenConns)
	} else {
		// A single connection keeps ":memory:" databases coherent and
		// serializes writers, which SQLite requires anyway.
		conn.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn, postgres: postgres}
	if err := db.migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (db *DB) migrate(ctx context.Context) error {
	migrations := sqliteSchema
	if db.postgres {
		migrations = postgresSchema
	} else {
		if _, err := db.conn.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			return err
		}
	}

	for _, m := range migrations {
		if _, err := db.conn.ExecContext(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		amount NUMERIC(10,2) NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		note TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		expires_at TIMESTAMPTZ NOT NULL,
		last_activity TIMESTAMPTZ NOT NULL
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		amount TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		note TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		expires_at DATETIME NOT NULL,
		last_activity DATETIME NOT NULL
	)`,
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
