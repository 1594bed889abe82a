package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger for the given environment.
// Development gets a human-readable console writer at debug level,
// everything else JSON at info level. Logs go to stderr so command
// output on stdout stays clean.
func Setup(environment string) {
	log.Logger = New(environment, os.Stderr)
}

// New builds a logger writing to w
func New(environment string, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if environment == "development" {
		cw := zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
			cw.Out = w
			cw.TimeFormat = time.RFC3339
		})
		return zerolog.New(cw).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}

	return zerolog.New(w).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}
