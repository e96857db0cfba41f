package bootstrap

import (
	"io"
	"log/slog"

	"github.com/abgdnv/gocommerce-admin/pkg/logger"
)

// NewLogger creates a new slog.Logger instance with the specified log level writing JSON to w.
// Records are passed through logger.ContextHandler so request IDs on the context are attached.
func NewLogger(level string, w io.Writer) *slog.Logger {
	logLevel := ToLevel(level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	logHandler := slog.NewJSONHandler(w, loggerOpts)
	return slog.New(logger.NewContextHandler(logHandler))
}

// ToLevel converts a string representation of a log level to slog.Level.
func ToLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
