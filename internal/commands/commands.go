// Package commands implements the management tasks behind cmd/manage.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/vaughan-dsouza/userapi/internal/migrations"
	"github.com/vaughan-dsouza/userapi/internal/models"
	"github.com/vaughan-dsouza/userapi/internal/store"
)

// TestUserPassword is the password given to every generated test user.
const TestUserPassword = "123456"

var ErrUsage = errors.New("usage")

// TestUserEmail returns the address of the i-th generated test user.
func TestUserEmail(i int) string {
	return fmt.Sprintf("test_user%d@test.com", i)
}

// InsertTestUsers creates count users named test_user1@test.com onwards in
// a single transaction.
func InsertTestUsers(ctx context.Context, users store.UserStore, count int, log zerolog.Logger) error {
	if count < 0 {
		return fmt.Errorf("%w: count must not be negative", ErrUsage)
	}
	log.Info().Int("count", count).Msg("adding test users")

	err := users.WithTx(ctx, func(tx store.UserStore) error {
		for i := 1; i <= count; i++ {
			u := &models.User{Email: TestUserEmail(i), Password: TestUserPassword}
			if err := tx.Create(ctx, u); err != nil {
				return err
			}
			log.Info().Str("email", u.Email).Msg("user created")
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert test users: %w", err)
	}

	log.Info().Msg("all test users created")
	return nil
}

// Migrate runs one of up, down, status or version. The version is written
// to out.
func Migrate(ctx context.Context, conn *sqlx.DB, action string, out io.Writer, log zerolog.Logger) error {
	switch action {
	case "up":
		return migrations.Up(ctx, conn, log)
	case "down":
		return migrations.Down(ctx, conn, log)
	case "status":
		return migrations.Status(ctx, conn, log)
	case "version":
		v, err := migrations.Version(ctx, conn, log)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, v)
		return err
	}
	return fmt.Errorf("%w: unknown migrate action %q", ErrUsage, action)
}

// ParseCount parses the argument of insert-test-users.
func ParseCount(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: insert-test-users <count>", ErrUsage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: count must be a non-negative integer, got %q", ErrUsage, args[0])
	}
	return n, nil
}
