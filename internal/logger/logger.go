package logger

import (
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// New builds the root logger. Verbosity starts unrestricted; the configured
// level is applied once configuration has loaded (config loading itself
// wants a logger).
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Logger()
}

// ApplyLevel sets the global zerolog level from its configured name.
// Unknown names keep the current level rather than failing startup.
func ApplyLevel(logger zerolog.Logger, level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		logger.Warn().Str("level", level).Msg("unknown log level, keeping default")
		return
	}
	zerolog.SetGlobalLevel(parsed)
}

var Module = fx.Provide(New)
