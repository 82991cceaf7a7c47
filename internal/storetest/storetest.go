// Package storetest provides migrated in-memory sqlite databases for tests.
package storetest

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vaughan-dsouza/userapi/internal/db"
	"github.com/vaughan-dsouza/userapi/internal/migrations"
	"github.com/vaughan-dsouza/userapi/internal/store"
)

// DB bundles the handles tests usually need.
type DB struct {
	SQL   *sqlx.DB
	Gorm  *gorm.DB
	Users *store.GormUserStore
}

// New opens a private in-memory database with every migration applied.
// The database is closed when the test ends.
func New(t testing.TB) *DB {
	t.Helper()
	ctx := context.Background()
	log := zerolog.New(io.Discard)

	url := "sqlite:///file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := db.Connect(ctx, url, db.Pool{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, migrations.Up(ctx, conn, log))

	gdb, err := db.OpenGorm(conn, log, false)
	require.NoError(t, err)

	return &DB{SQL: conn, Gorm: gdb, Users: store.NewGormUserStore(gdb)}
}

// CountByEmail returns how many rows carry email.
func (d *DB) CountByEmail(t testing.TB, email string) int {
	t.Helper()
	var n int
	require.NoError(t, d.SQL.Get(&n, `SELECT COUNT(*) FROM users WHERE email = ?`, email))
	return n
}
