// Package logging builds the process logger.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a JSON logger on stdout, or a console logger in development.
// Unknown levels fall back to info.
func New(env, level string) zerolog.Logger {
	return NewWithWriter(os.Stdout, env, level)
}

func NewWithWriter(w io.Writer, env, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("service", "hmis").Logger()
}
