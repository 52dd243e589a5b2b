package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. Services receive it via their WithLogger
// option so tests can inject silent loggers.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
