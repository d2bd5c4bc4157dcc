/*
PURPOSE:
  Provides a structured logger for precip-analyzer.
  Wraps slog for consistent output.

REQUIREMENTS:
  User-specified:
  - "Sane" CLI output. Not spammy. --verbose flips on debug detail.

  Implementation-discovered:
  - Needs to support Debug/Info/Warn/Error levels.

ARCHITECTURE INTEGRATION:
  - Used everywhere.

ERROR HANDLING:
  - N/A

IMPLEMENTATION RULES:
  - Use `log/slog` (Go 1.21+).

USAGE:
  output.Logger.Info("message", "key", "value")

RELATED FILES:
  - All.

MAINTENANCE:
  - Configurable log formats (JSON handler for non-interactive)?
*/

package output

import (
	"log/slog"
	"os"
)

var Logger *slog.Logger

var level = new(slog.LevelVar)

func init() {
	Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// SetVerbose lowers the log level to Debug for detailed tracing.
func SetVerbose(verbose bool) {
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// SetLogger allows overriding the default logger (e.g. for testing)
func SetLogger(l *slog.Logger) {
	Logger = l
}
