// Package migrations embeds the versioned schema scripts and runs them with
// goose. Each supported database has its own directory of scripts.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/vaughan-dsouza/userapi/internal/db"
	"github.com/vaughan-dsouza/userapi/internal/logging"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// target maps a driver name to the goose dialect and script directory.
func target(driver string) (dialect, dir string, err error) {
	switch driver {
	case db.DriverPostgres:
		return "postgres", "postgres", nil
	case db.DriverSQLite:
		return "sqlite3", "sqlite", nil
	}
	return "", "", fmt.Errorf("migrations: unsupported driver %q", driver)
}

func setup(conn *sqlx.DB, log zerolog.Logger) (string, error) {
	dialect, dir, err := target(conn.DriverName())
	if err != nil {
		return "", err
	}
	goose.SetBaseFS(Migrations)
	goose.SetLogger(logging.GooseLogger{L: log.With().Str("component", "goose").Logger()})
	if err := goose.SetDialect(dialect); err != nil {
		return "", err
	}
	return dir, nil
}

// Up applies every pending migration.
func Up(ctx context.Context, conn *sqlx.DB, log zerolog.Logger) error {
	dir, err := setup(conn, log)
	if err != nil {
		return err
	}
	if err := gooseUpContext(ctx, conn.DB, dir); err != nil {
		return fmt.Errorf("migrations: up: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, conn *sqlx.DB, log zerolog.Logger) error {
	dir, err := setup(conn, log)
	if err != nil {
		return err
	}
	if err := goose.DownContext(ctx, conn.DB, dir); err != nil {
		return fmt.Errorf("migrations: down: %w", err)
	}
	return nil
}

// Status logs the applied state of every migration.
func Status(ctx context.Context, conn *sqlx.DB, log zerolog.Logger) error {
	dir, err := setup(conn, log)
	if err != nil {
		return err
	}
	return goose.StatusContext(ctx, conn.DB, dir)
}

// Version returns the current schema version.
func Version(ctx context.Context, conn *sqlx.DB, log zerolog.Logger) (int64, error) {
	if _, err := setup(conn, log); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, conn.DB)
}
