package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

var (
	// Log is the global logger instance
	Log zerolog.Logger
)

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	// Default to console output with color
	Log = newLogger(consoleWriter(), zerolog.InfoLevel)
}

func consoleWriter() io.Writer {
	return zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
}

// Setup configures the global loggers for a server mode. Release mode writes
// JSON lines; any other mode keeps the console writer.
func Setup(mode, level string) {
	if mode == "release" {
		Log = newLogger(os.Stdout, Log.GetLevel())
	}
	SetLevel(level)
	log.Logger = Log
}

// SetLevel sets the log level
func SetLevel(levelStr string) {
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil || levelStr == "" {
		Log.Warn().Str("level", levelStr).Msg("invalid log level, defaulting to info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	Log = Log.Level(level)
}

// SetOutput sends console-formatted logs to w, keeping the current level.
// Command line tools use it to keep stdout free for their results.
func SetOutput(w io.Writer) {
	Log = newLogger(zerolog.ConsoleWriter{Out: w, TimeFormat: "2006-01-02 15:04:05"}, Log.GetLevel())
	log.Logger = Log
}
