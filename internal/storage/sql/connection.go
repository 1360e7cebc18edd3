// Package sql opens the relational task store. SQLite is the default for a
// single-device install; Postgres serves setups that share one database
// between machines. Both run the same embedded migrations.
package sql

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // cgo-free sqlite driver

	"daylight/internal/storage/sql/repository"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Driver selects the database backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Config holds database connection configuration. DSN is a file path (or
// ":memory:") for sqlite and a connection URL for postgres.
type Config struct {
	Driver Driver
	DSN    string
}

// Open connects, runs migrations, and returns the repository store.
func Open(ctx context.Context, cfg Config) (*repository.Store, error) {
	var driverName, gooseDialect string
	switch cfg.Driver {
	case DriverSQLite:
		driverName, gooseDialect = "sqlite", "sqlite3"
	case DriverPostgres:
		driverName, gooseDialect = "pgx", "postgres"
	default:
		return nil, fmt.Errorf("unknown sql driver: %q", cfg.Driver)
	}

	db, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect(gooseDialect); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repository.NewStore(db), nil
}
