package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenGorm layers a GORM session over the already-open pool so the ORM,
// migrations and health checks share one set of connections.
func OpenGorm(db *sqlx.DB, log zerolog.Logger, dev bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch db.DriverName() {
	case DriverPostgres:
		dialector = postgres.New(postgres.Config{Conn: db.DB})
	case DriverSQLite:
		dialector = sqlite.Dialector{DriverName: DriverSQLite, Conn: db.DB}
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", db.DriverName())
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(log, dev),
		// transactions are opened explicitly by the store
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("db: failed to open gorm session: %w", err)
	}
	return gdb, nil
}

func newGormLogger(log zerolog.Logger, dev bool) logger.Interface {
	level := logger.Warn
	if dev {
		level = logger.Info
	}
	w := gormWriter{
		l:     log.With().Str("component", "gorm").Logger(),
		level: zerolog.WarnLevel,
	}
	if dev {
		w.level = zerolog.InfoLevel
	}
	return logger.New(w, logger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// gormWriter emits GORM's preformatted lines at a fixed level.
type gormWriter struct {
	l     zerolog.Logger
	level zerolog.Level
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.l.WithLevel(w.level).Msgf(format, args...)
}
