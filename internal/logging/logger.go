// Package logging builds component-scoped zerolog loggers. Output is a
// console writer when ASVSIM_ENV=dev and JSON lines otherwise.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to stderr tagged with component.
func New(component, level string) zerolog.Logger {
	return NewWithWriter(os.Stderr, component, level)
}

func NewWithWriter(w io.Writer, component, level string) zerolog.Logger {
	if strings.ToLower(os.Getenv("ASVSIM_ENV")) == "dev" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().Timestamp().Str("component", component).
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func Nop() zerolog.Logger { return zerolog.Nop() }
