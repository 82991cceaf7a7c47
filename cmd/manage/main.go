package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/vaughan-dsouza/userapi/internal/commands"
	"github.com/vaughan-dsouza/userapi/internal/config"
	"github.com/vaughan-dsouza/userapi/internal/db"
	"github.com/vaughan-dsouza/userapi/internal/logging"
	"github.com/vaughan-dsouza/userapi/internal/store"
)

const usage = `usage: manage [-d database-url] <command> [args]

commands:
  migrate up|down|status|version
  insert-test-users <count>
`

func main() {
	cfg, err := config.Load(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	fs := flag.NewFlagSet("manage", flag.ContinueOnError)
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "database URL")
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	log := logging.New(cfg.Development())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, fs.Args(), log); err != nil {
		if errors.Is(err, commands.ErrUsage) {
			fmt.Fprintf(os.Stderr, "%v\n\n%s", err, usage)
			os.Exit(2)
		}
		log.Fatal().Err(err).Msg("command failed")
	}
}

func run(ctx context.Context, cfg *config.Config, args []string, log zerolog.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", commands.ErrUsage)
	}

	conn, err := db.Connect(ctx, cfg.DatabaseURL, db.Pool{
		MaxOpen:     cfg.DBMaxOpen,
		MaxIdle:     cfg.DBMaxIdle,
		MaxLifetime: cfg.DBMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer conn.Close()

	switch args[0] {
	case "migrate":
		if len(args) != 2 {
			return fmt.Errorf("%w: migrate up|down|status|version", commands.ErrUsage)
		}
		return commands.Migrate(ctx, conn, args[1], os.Stdout, log)

	case "insert-test-users":
		n, err := commands.ParseCount(args[1:])
		if err != nil {
			return err
		}
		gdb, err := db.OpenGorm(conn, log, cfg.Development())
		if err != nil {
			return err
		}
		return commands.InsertTestUsers(ctx, store.NewGormUserStore(gdb), n, log)
	}

	return fmt.Errorf("%w: unknown command %q", commands.ErrUsage, args[0])
}
