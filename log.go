package vflow

import (
	"log/slog"
	"os"
)

// flowLogLevel controls the log level for engine debug logging.
// Set VFLOW_DEBUG=1 to enable debug output at startup.
var flowLogLevel = new(slog.LevelVar)

func init() {
	if os.Getenv("VFLOW_DEBUG") == "1" {
		flowLogLevel.Set(slog.LevelDebug)
	} else {
		flowLogLevel.Set(slog.LevelInfo)
	}
}

// SetDebug toggles debug logging for every engine using the default logger.
func SetDebug(enabled bool) {
	if enabled {
		flowLogLevel.Set(slog.LevelDebug)
	} else {
		flowLogLevel.Set(slog.LevelInfo)
	}
}

// IsDebug reports whether debug logging is enabled.
func IsDebug() bool {
	return flowLogLevel.Level() <= slog.LevelDebug
}

// flowLogger is the default logger for engines that were not given one.
var flowLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: flowLogLevel}))
