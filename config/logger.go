package config

import (
	"log/slog"
	"os"
)

// serviceName is attached to every log record so aggregated logs can be
// filtered by service.
const serviceName = "volunteerhub"

// NewLogger returns the application logger, configured from GO_ENV and
// LOG_LEVEL. Production uses a JSON handler; everything else uses text.
func NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(os.Getenv("LOG_LEVEL"))}
	var handler slog.Handler
	if os.Getenv("GO_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With("service", serviceName)
}

// parseLogLevel maps a LOG_LEVEL value (debug, info, warn, error) to a
// slog.Level. Unknown or empty values default to info.
func parseLogLevel(s string) slog.Level {
	switch s {
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
