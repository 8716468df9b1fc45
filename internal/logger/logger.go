// Package logger wraps zerolog.Logger with the constructors used by the
// tableschema CLI.
//
// Logger embeds zerolog.Logger, so the usual level methods (Debug, Info,
// Warn, Error) are available directly.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// NewLogger returns a JSON logger writing to w with a "role" field and
// timestamps. level is a zerolog level name; unknown names fall back to info.
func NewLogger(w io.Writer, role, level string) *Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	l := zerolog.New(w).Level(lvl).With().
		Str("role", role).
		Timestamp().
		Logger()
	return &Logger{l}
}

// NewConsoleLogger returns a human-readable logger on stderr.
func NewConsoleLogger(role, level string) *Logger {
	return NewLogger(zerolog.ConsoleWriter{Out: os.Stderr}, role, level)
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// With returns a child logger carrying an extra string field.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{l.Logger.With().Str(key, value).Logger()}
}
