// Package trace centralizes structured logging for the interpreter: the
// CLI sets its level, the loader warns through it when a compiled chunk
// cannot be written, and the VM logs each executed instruction at debug
// level.
package trace

import (
	"os"

	"github.com/rs/zerolog"
)

var Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
	Level(zerolog.InfoLevel).
	With().Timestamp().Logger()

func SetLevel(lvl zerolog.Level) {
	Log = Log.Level(lvl)
}

func Warn(format string, args ...any) {
	Log.Warn().Msgf(format, args...)
}

func Info(format string, args ...any) {
	Log.Info().Msgf(format, args...)
}

func Error(format string, args ...any) {
	Log.Error().Msgf(format, args...)
}
