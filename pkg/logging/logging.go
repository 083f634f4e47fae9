// Package logging builds the zerolog loggers used by the CLI.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// AppName is attached to every log line.
const AppName = "weldgroove"

// New returns a console logger writing to w at the named level. Unknown
// level names fall back to info.
func New(w io.Writer, level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    w != os.Stderr && w != os.Stdout,
	}
	return zerolog.New(output).Level(ParseLevel(level)).
		With().Timestamp().Str("app", AppName).Logger()
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}
