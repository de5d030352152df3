package logger

import (
	"hotelbooker/config"
	"hotelbooker/shared/constant"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a console logger so startup can log before the
// configuration is loaded.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	log.Logger = log.Output(output)
	log.Trace().Msg("Zerolog initialized.")
}

// Configure applies the configured level. Outside development the console
// writer is replaced by JSON lines on out, tagged with the service and
// environment so booking and payment events can be filtered downstream.
func Configure(out io.Writer, config *config.Config) {
	zerolog.SetGlobalLevel(level(config.Server.LogLevel))

	if config.Server.Env == constant.Empty || config.Server.Env == constant.ServerEnvDevelopment {
		return
	}

	log.Logger = zerolog.New(out).
		With().
		Timestamp().
		Str("service", config.App.Name).
		Str("env", config.Server.Env).
		Logger()
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func level(name string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(name)
	if err != nil {
		log.Trace().Str("loglevel", name).Msg("Unknown log level, using trace.")

		return zerolog.TraceLevel
	}

	return parsed
}
