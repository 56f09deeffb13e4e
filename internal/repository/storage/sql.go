package storage

import (
	"context"
	"database/sql"
	"fmt"

	// register the PostgreSQL and SQLite drivers with the database/sql package.
	_ "github.com/lib/pq"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Storage struct {
	Connection *sql.DB
	Driver     string
}

func NewSQLStorage(ctx context.Context, driver, dsn string) (*Storage, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &Storage{Connection: conn, Driver: driver}, nil
}

func NewSQLiteStorage(ctx context.Context, path string) (*Storage, error) {
	return NewSQLStorage(ctx, DriverSQLite, path)
}

// Init creates the tables when they are missing. The statements are valid for
// both SQLite and PostgreSQL.
func (that *Storage) Init(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS boards (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL UNIQUE,
			squares TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS user_lists (
			user_id TEXT PRIMARY KEY,
			standard_resolutions TEXT NOT NULL,
			boss_resolutions TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	}

	for _, statement := range statements {
		if _, err := that.Connection.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("can't create table: %w", err)
		}
	}

	return nil
}

func (that *Storage) Close() error {
	return that.Connection.Close()
}
