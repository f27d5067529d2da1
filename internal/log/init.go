package log

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sends the global logger to w (stderr when nil) in console format
// and sets the global level from a name such as "debug" or "warn".
func Init(w io.Writer, level string) {
	if w == nil {
		w = os.Stderr
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, NoColor: true})
	zerolog.SetGlobalLevel(ParseLevel(level))
}

// ParseLevel defaults to info for empty or unknown names.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
