package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor maps err to a process exit status. A joined error exits with the
// code of its dominant failure; unclassified errors exit 1.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	classified, ok := Dominant(err)
	if !ok {
		return 1
	}
	return classified.Category().ExitCode()
}

// FormatError formats an error for user-friendly display. Quiet output names
// the dominant failure and how many others there were.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	classified, ok := Dominant(err)
	if !ok || a.verbose {
		return fmt.Sprintf("Error: %v", err)
	}
	if more := len(All(err)) - 1; more > 0 {
		return fmt.Sprintf("Error: %s (and %d more)", classified.Message(), more)
	}
	return fmt.Sprintf("Error: %s", classified.Message())
}

// Report logs the error at a level matching its category, writes the user-facing
// message to w and returns the exit code. The caller decides when to exit.
func (a *CLIErrorAdapter) Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if a.verbose {
		a.logError(err)
	}
	_, _ = fmt.Fprintln(w, a.FormatError(err))
	return a.ExitCodeFor(err)
}

func (a *CLIErrorAdapter) logError(err error) {
	all := All(err)
	if len(all) == 0 {
		a.logger.Error("Unclassified error", "error", err)
		return
	}
	for _, classified := range all {
		attrs := []slog.Attr{slog.String("category", string(classified.Category()))}
		for _, k := range classified.Context().Keys() {
			attrs = append(attrs, slog.Any(k, classified.Context()[k]))
		}
		a.logger.LogAttrs(context.Background(), classified.Category().traits().level, classified.Message(), attrs...)
	}
}
