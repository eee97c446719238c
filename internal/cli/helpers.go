package cli

import (
	"log/slog"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/logging"
)

// createLogger configures the application logger.
// It writes to Stderr (to separate from Stdout chat UI and JSON-RPC).
func createLogger(level slog.Level, debug bool) *slog.Logger {
	if debug {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

