/*
PURPOSE:
  Colored console helpers for the human-facing report: section banners,
  progress lines, and per-source status marks.

REQUIREMENTS:
  User-specified:
  - Report sections must be visually separated per data source.

  Implementation-discovered:
  - fatih/color degrades to plain text when stdout is not a TTY, so no
    extra guard is needed.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go

ERROR HANDLING:
  - N/A (best-effort printing).

USAGE:
  output.Banner(os.Stdout, "HISTORICAL ARCHIVE - PRECIPITATION BY MODEL AND MEASURE")

RELATED FILES:
  - internal/output/logger.go

MAINTENANCE:
  - Keep the palette small; this is a report, not a christmas tree.
*/

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const bannerWidth = 100

var (
	bannerColor  = color.New(color.FgHiBlue, color.Bold)
	stepColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgGreen)
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgHiYellow)
)

// Banner prints a full-width section header.
func Banner(w io.Writer, title string) {
	rule := strings.Repeat("═", bannerWidth)
	bannerColor.Fprintln(w, rule)
	bannerColor.Fprintln(w, title)
	bannerColor.Fprintln(w, rule)
	fmt.Fprintln(w)
}

// Step prints a yellow progress line, e.g. "Fetching historical data...".
func Step(w io.Writer, format string, args ...any) {
	stepColor.Fprintf(w, format+"\n", args...)
}

// Info prints a green status line, e.g. the resolved location.
func Info(w io.Writer, format string, args ...any) {
	infoColor.Fprintf(w, format+"\n", args...)
}

// Success prints a bold green completion line.
func Success(w io.Writer, format string, args ...any) {
	successColor.Fprintf(w, format+"\n", args...)
}

// Warn prints a non-fatal problem, e.g. a source that returned an error.
func Warn(w io.Writer, format string, args ...any) {
	warnColor.Fprintf(w, format+"\n", args...)
}
