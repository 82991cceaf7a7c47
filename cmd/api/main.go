package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vaughan-dsouza/userapi/internal/config"
	"github.com/vaughan-dsouza/userapi/internal/db"
	"github.com/vaughan-dsouza/userapi/internal/handlers"
	"github.com/vaughan-dsouza/userapi/internal/logging"
	"github.com/vaughan-dsouza/userapi/internal/migrations"
	"github.com/vaughan-dsouza/userapi/internal/store"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		l := logging.New(false)
		l.Fatal().Err(err).Msg("config")
	}

	log := logging.New(cfg.Development())
	ctx := context.Background()

	dbConn, err := db.Connect(ctx, cfg.DatabaseURL, db.Pool{
		MaxOpen:     cfg.DBMaxOpen,
		MaxIdle:     cfg.DBMaxIdle,
		MaxLifetime: cfg.DBMaxLifetime,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	defer dbConn.Close()

	if err := migrations.Up(ctx, dbConn, log); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	gdb, err := db.OpenGorm(dbConn, log, cfg.Development())
	if err != nil {
		log.Fatal().Err(err).Msg("gorm")
	}

	h := handlers.NewHandler(dbConn, store.NewGormUserStore(gdb), cfg)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handlers.NewRouter(h, cfg, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Bool("debug", cfg.Debug).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server exited")
}
