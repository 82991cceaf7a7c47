package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Driver names as reported by (*sqlx.DB).DriverName.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

const sqlitePrefix = "sqlite:///"

// Pool holds connection pool settings.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

// NormalizeURL rewrites the legacy postgres:// scheme to postgresql://.
func NormalizeURL(url string) string {
	return strings.ReplaceAll(url, "postgres://", "postgresql://")
}

// IsSQLite reports whether url selects the sqlite backend.
func IsSQLite(url string) bool {
	return strings.HasPrefix(url, sqlitePrefix)
}

// sqlitePath turns sqlite:////tmp/test.db into /tmp/test.db and
// sqlite:///file:x?mode=memory into file:x?mode=memory.
func sqlitePath(url string) string {
	return strings.TrimPrefix(url, sqlitePrefix)
}

// Connect opens the database named by url, applies pool settings and
// verifies connectivity.
func Connect(ctx context.Context, url string, pool Pool) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	if IsSQLite(url) {
		db, err = openSQLite(sqlitePath(url))
	} else {
		db, err = openPostgres(NormalizeURL(url), pool)
	}
	if err != nil {
		return nil, err
	}

	// ---- Connectivity Check ----
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db: failed to connect: %w", err)
	}

	if err := HealthCheck(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func openPostgres(dsn string, pool Pool) (*sqlx.DB, error) {
	// Parse DSN → pgx config struct
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("db: failed to parse DSN: %w", err)
	}

	// Fail fast on startup if PG is unreachable
	cfg.ConnectTimeout = 5 * time.Second

	sqlDB := stdlib.OpenDB(*cfg)
	db := sqlx.NewDb(sqlDB, DriverPostgres)

	db.SetMaxOpenConns(pool.MaxOpen)
	db.SetMaxIdleConns(pool.MaxIdle)
	db.SetConnMaxLifetime(pool.MaxLifetime)

	return db, nil
}

// A single long-lived connection keeps in-memory databases alive and
// serialises writers.
func openSQLite(path string) (*sqlx.DB, error) {
	sqlDB, err := sql.Open(DriverSQLite, path)
	if err != nil {
		return nil, fmt.Errorf("db: failed to open sqlite %q: %w", path, err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return sqlx.NewDb(sqlDB, DriverSQLite), nil
}

// HealthCheck runs a trivial query through the pool.
func HealthCheck(ctx context.Context, db *sqlx.DB) error {
	var tmp int
	if err := db.GetContext(ctx, &tmp, "SELECT 1"); err != nil {
		return fmt.Errorf("db: health check failed: %w", err)
	}
	return nil
}
