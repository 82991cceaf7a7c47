// Package logging builds the zerolog logger shared by the server, the GORM
// session and the migration runner.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a timestamped logger writing to stdout. Development mode
// switches to a human-readable console writer at debug level.
func New(dev bool) zerolog.Logger {
	return NewWithWriter(os.Stdout, dev)
}

func NewWithWriter(w io.Writer, dev bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if dev {
		level = zerolog.DebugLevel
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// GooseLogger adapts a zerolog.Logger to goose.Logger.
type GooseLogger struct {
	L zerolog.Logger
}

func (g GooseLogger) Printf(format string, v ...interface{}) {
	g.L.Info().Msgf(format, v...)
}

func (g GooseLogger) Fatalf(format string, v ...interface{}) {
	g.L.Fatal().Msgf(format, v...)
}
