// Package logger configures zerolog for the running environment.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Constants for different environment types.
const (
	EnvLocal = "local"
	EnvDev   = "development"
	EnvProd  = "production"
)

// Setup builds a logger for env, installs it as the global zerolog logger
// and returns it.
func Setup(env string) zerolog.Logger {
	return setup(env, os.Stdout)
}

func setup(env string, out io.Writer) zerolog.Logger {
	var logger zerolog.Logger

	switch env {
	case EnvLocal:
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Caller().Logger()
	case EnvDev:
		logger = zerolog.New(out).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	case EnvProd:
		logger = zerolog.New(out).Level(zerolog.WarnLevel).With().Timestamp().Logger()
	default:
		logger = zerolog.New(out).Level(zerolog.ErrorLevel).With().Timestamp().Logger()
		logger.Error().
			Str("available_envs", "local, development, production").
			Msg("The env parameter was not specified or was invalid. Logging will be minimal, by default.")
	}

	log.Logger = logger
	return logger
}
