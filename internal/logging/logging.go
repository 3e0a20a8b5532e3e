// Package logging wires up the engine's structured logger, following
// Azure-containerization-assist's convention of parsing LOG_LEVEL with
// zerolog.ParseLevel.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process-wide logger from a LOG_LEVEL string, defaulting to
// info on an unrecognized value.
func New(component, level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		Level(parsed).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}
